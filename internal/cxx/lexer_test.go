package cxx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func tokenValues(src string) []string {
	tokens := NewLexer(src).Tokenize()
	var values []string
	for _, tok := range tokens {
		if tok.Type == TokenEOF {
			break
		}
		values = append(values, tok.Value)
	}
	return values
}

func TestLexerBasicDeclaration(t *testing.T) {
	got := tokenValues("virtual void bar(int x, std::string s) = 0;")
	want := []string{
		"virtual", "void", "bar", "(", "int", "x", ",",
		"std", "::", "string", "s", ")", "=", "0", ";",
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestLexerAngleCloseRuns(tt *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "single close",
			src:  "std::vector<int>",
			want: []string{"std", "::", "vector", "<", "int", ">"},
		},
		{
			name: "double close is one token",
			src:  "std::vector<std::pair<int, int>>",
			want: []string{
				"std", "::", "vector", "<",
				"std", "::", "pair", "<", "int", ",", "int", ">>",
			},
		},
		{
			name: "triple close is one token",
			src:  "map<int, vector<pair<int, int>>>",
			want: []string{
				"map", "<", "int", ",",
				"vector", "<", "pair", "<", "int", ",", "int", ">>>",
			},
		},
		{
			name: "greater-or-equal stays comparison",
			src:  "a >= b",
			want: []string{"a", ">=", "b"},
		},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			require.Empty(t, cmp.Diff(tc.want, tokenValues(tc.src)))
		})
	}
}

func TestLexerOperators(tt *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "scope resolution",
			src:  "a::b::c",
			want: []string{"a", "::", "b", "::", "c"},
		},
		{
			name: "operator declaration",
			src:  "virtual bool operator==(const Foo& other) const",
			want: []string{"virtual", "bool", "operator", "==", "(", "const", "Foo", "&", "other", ")", "const"},
		},
		{
			name: "three character operator",
			src:  "operator->*",
			want: []string{"operator", "->*"},
		},
		{
			name: "left shift assign",
			src:  "operator<<=",
			want: []string{"operator", "<<="},
		},
		{
			name: "increment and arrow",
			src:  "++p->q",
			want: []string{"++", "p", "->", "q"},
		},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			require.Empty(t, cmp.Diff(tc.want, tokenValues(tc.src)))
		})
	}
}

func TestLexerSkipsCommentsAndPreprocessor(t *testing.T) {
	src := `#include <string>
// line comment
/* block
   comment */
#define GUARD \
    continued
class IFoo;`
	require.Empty(t, cmp.Diff([]string{"class", "IFoo", ";"}, tokenValues(src)))
}

func TestLexerStringLiterals(t *testing.T) {
	got := tokenValues(`f("a \"quoted\" string", 'c')`)
	want := []string{"f", "(", `"a \"quoted\" string"`, ",", "'c'", ")"}
	require.Empty(t, cmp.Diff(want, got))
}

func TestLexerKeywordClassification(t *testing.T) {
	tokens := NewLexer("class Foo virtual bar").Tokenize()
	require.Equal(t, TokenKeyword, tokens[0].Type)
	require.Equal(t, TokenIdent, tokens[1].Type)
	require.Equal(t, TokenKeyword, tokens[2].Type)
	require.Equal(t, TokenIdent, tokens[3].Type)
}

func TestLexerPositions(t *testing.T) {
	tokens := NewLexer("class\n  Foo").Tokenize()
	require.Equal(t, 1, tokens[0].Line)
	require.Equal(t, 1, tokens[0].Column)
	require.Equal(t, 2, tokens[1].Line)
	require.Equal(t, 3, tokens[1].Column)
}
