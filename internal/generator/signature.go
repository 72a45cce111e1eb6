package generator

import (
	"errors"
	"strings"
)

// ErrMalformedSignature reports a method token stream with unbalanced
// parentheses or a truncated parameter list. Such streams violate the
// front-end contract; the reconstructor fails instead of reading past the
// end of the stream.
var ErrMalformedSignature = errors.New("generator: malformed method signature tokens")

// resultType extracts the return-type text from a method's token stream.
// The scan stops at the token equal to the method's spelling or at the
// literal "operator", whichever comes first. The virtual, inline, and
// volatile qualifiers are not part of the result; const and volatile keep a
// trailing space so "const Foo&" reads naturally. Everything else is
// concatenated verbatim, which preserves "std::vector<int>&" spellings
// without inserted whitespace.
func resultType(tokens []string, spelling string) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok == spelling || tok == "operator" {
			break
		}
		if tok != "virtual" && tok != "inline" && tok != "volatile" {
			b.WriteString(tok)
		}
		if tok == "const" || tok == "volatile" {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// arguments reconstructs the parameter-list text from a method's token
// stream and counts its top-level arguments.
//
// Tokens between the list's '(' and its matching ')' are copied verbatim
// with a single separating space, suppressed around '::' and '<' and before
// separators and closing angle-bracket runs, so "std::map<int, int>" never
// becomes "std :: map < int , int >". A comma counts as an argument
// separator only while not nested inside angle brackets; the count is
// separators+1 when any text was produced, else zero.
func arguments(tokens []string) (int, string, error) {
	var (
		b      strings.Builder
		commas int
		found  bool
	)

	for i := 1; i < len(tokens); i++ {
		// The call/cast operator is spelled "operator()"; skip past that
		// inner "()" so it is not mistaken for the parameter-list opener.
		if tokens[i-1] == "operator" && i+1 < len(tokens) &&
			tokens[i] == "(" && tokens[i+1] == ")" {
			i += 3
			if i > len(tokens) {
				return 0, "", ErrMalformedSignature
			}
		}

		if i-1 < len(tokens) && i <= len(tokens) && tokens[i-1] == "(" {
			inTemplate := false
			for i < len(tokens) && tokens[i] != ")" {
				b.WriteString(tokens[i])

				if i+1 >= len(tokens) {
					return 0, "", ErrMalformedSignature
				}
				next := tokens[i+1]
				if !(next == "::" || next == "," || next == ")" || next == "<" || next == ">" ||
					tokens[i] == "::" || tokens[i] == "<" || isClosingAngleRun(next)) {
					b.WriteString(" ")
				}

				switch {
				case tokens[i] == "<":
					inTemplate = true
				case isClosingAngleRun(next):
					inTemplate = false
				case tokens[i] == "," && !inTemplate:
					commas++
				}

				i++
			}
			if i >= len(tokens) {
				return 0, "", ErrMalformedSignature
			}
			found = true
		}

		if found {
			break
		}
	}

	text := b.String()
	if text == "" {
		return 0, text, nil
	}
	return commas + 1, text, nil
}

// isClosingAngleRun reports tokens like ">", ">>", ">>>" whose first and
// last characters are both '>'. Nested template closers arrive as single
// tokens in that form.
func isClosingAngleRun(tok string) bool {
	return tok != "" && tok[0] == '>' && tok[len(tok)-1] == '>'
}
