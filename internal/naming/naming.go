package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// marker is a conventional interface-name affix ("string_intf", "intf-logger")
// that is stripped from the word list so it never leaks into generated names.
const marker = "intf"

// delimiters, in detection order. An identifier is assumed to use at most one
// of these.
var delimiters = []string{"-", "_", " "}

// ErrUnsupportedDelimiter reports an identifier that yields no usable word
// segments (empty, delimiters only, or just the marker word).
type ErrUnsupportedDelimiter struct {
	Identifier string
}

func (e *ErrUnsupportedDelimiter) Error() string {
	return fmt.Sprintf("naming: unsupported delimiter in identifier %q", e.Identifier)
}

// Ident holds one identifier split into lower-cased word segments and derives
// the naming conventions used across generated mock artifacts.
type Ident struct {
	parts []string
}

// New splits identifier on whichever supported delimiter appears first in it.
// Identifiers without any supported delimiter are split on camel-case
// boundaries instead, so "IFoo" becomes ["i", "foo"].
func New(identifier string) (*Ident, error) {
	var parts []string
	for _, delim := range delimiters {
		if strings.Contains(identifier, delim) {
			parts = strings.Split(strings.ToLower(identifier), delim)
			break
		}
	}
	if parts == nil {
		parts = camelSplit(identifier)
	}

	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == marker {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, &ErrUnsupportedDelimiter{Identifier: identifier}
	}
	return &Ident{parts: kept}, nil
}

// camelSplit starts a new lower-cased segment at every upper-case rune.
func camelSplit(s string) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	for _, r := range s {
		if unicode.IsUpper(r) && cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
		cur.WriteRune(unicode.ToLower(r))
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// Parts returns the ordered word segments.
func (n *Ident) Parts() []string {
	out := make([]string, len(n.parts))
	copy(out, n.parts)
	return out
}

func (n *Ident) SnakeCase() string {
	return strings.Join(n.parts, "_")
}

func (n *Ident) KebabCase() string {
	return strings.Join(n.parts, "-")
}

func (n *Ident) SpaceSeparated() string {
	return strings.Join(n.parts, " ")
}

func (n *Ident) PascalCase() string {
	var b strings.Builder
	for _, p := range n.parts {
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func (n *Ident) CamelCase() string {
	p := n.PascalCase()
	return strings.ToLower(p[:1]) + p[1:]
}

// HeaderFileName is the generated mock header file name, e.g. "i-foo-gmock.h".
func (n *Ident) HeaderFileName() string {
	return n.KebabCase() + "-gmock.h"
}

// SourceFileName is the generated mock source file name, e.g. "i-foo-gmock.cpp".
func (n *Ident) SourceFileName() string {
	return n.KebabCase() + "-gmock.cpp"
}

// MockClassName is the generated mock class name, e.g. "I_FOO_GMOCK".
func (n *Ident) MockClassName() string {
	return strings.ToUpper(n.SnakeCase()) + "_GMOCK"
}

// HeaderGuardName is the include guard for the generated header.
func (n *Ident) HeaderGuardName() string {
	return n.MockClassName() + "_H_"
}
