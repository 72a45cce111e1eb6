package cxx

import (
	"os"
	"path/filepath"
	"strings"
)

// NodeKind distinguishes the declaration-tree node kinds the generator
// consumes.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindNamespace
	KindClass
	KindStruct
	KindClassTemplate
	KindMethod
)

// Node is one node of the declaration tree built from a header file.
//
// Container nodes (namespaces, classes, structs, class templates) carry Name;
// a class template's Name keeps its parameter suffix ("IFoo<T1, T2>").
// Method nodes are terminal and carry the flat token spellings of their
// declaration. Parameter names present in source are stripped from Tokens,
// so the spellings describe types only; DisplayName keeps the "name(types)"
// form for diagnostics.
type Node struct {
	Kind        NodeKind
	Name        string
	Spelling    string
	DisplayName string
	Tokens      []string
	IsConst     bool
	File        string
	Children    []*Node
}

// Parser builds a declaration tree from lexed C++ tokens.
type Parser struct {
	tokens []Token
	pos    int
	file   string
}

// ParseFile parses a single C++ header file into a declaration tree.
func ParseFile(filename string) (*Node, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	return Parse(string(content), abs), nil
}

// Parse parses C++ header source. file is recorded on method nodes as their
// origin.
func Parse(src, file string) *Node {
	lexer := NewLexer(src)
	p := &Parser{
		tokens: lexer.Tokenize(),
		file:   file,
	}
	root := &Node{Kind: KindOther, File: file}
	p.parseScope(root, false)
	return root
}

// parseScope consumes declarations until EOF, or until the matching '}' when
// nested is true.
func (p *Parser) parseScope(parent *Node, nested bool) {
	for !p.isAtEnd() {
		if nested && p.checkValue("}") {
			p.advance()
			return
		}

		switch {
		case p.matchKeyword("namespace"):
			p.parseNamespace(parent)
		case p.checkKeyword("template"):
			p.parseTemplate(parent)
		case p.checkKeyword("class") || p.checkKeyword("struct"):
			p.parseClass(parent, "")
		default:
			p.advance()
		}
	}
}

func (p *Parser) parseNamespace(parent *Node) {
	node := &Node{Kind: KindNamespace, File: p.file}
	if p.check(TokenIdent) {
		node.Name = p.current().Value
		p.advance()
	}
	if !p.matchValue("{") {
		// "namespace a = b;" and other forms carry no declarations
		p.skipStatement()
		return
	}
	parent.Children = append(parent.Children, node)
	p.parseScope(node, true)
}

// parseTemplate handles "template<...>" clauses. A following class or struct
// becomes a class-template node whose name carries the parameter suffix;
// template member functions and free function templates are skipped.
func (p *Parser) parseTemplate(parent *Node) {
	p.advance() // template
	params := p.parseTemplateParams()
	if p.checkKeyword("class") || p.checkKeyword("struct") {
		suffix := ""
		if len(params) > 0 {
			suffix = "<" + strings.Join(params, ", ") + ">"
		}
		p.parseClass(parent, suffix)
		return
	}
	p.skipStatement()
}

// parseTemplateParams consumes "<...>" and returns the declared parameter
// names ("typename T1, class T2, int N" yields T1, T2, N).
func (p *Parser) parseTemplateParams() []string {
	if !p.matchValue("<") {
		return nil
	}
	var (
		params []string
		group  []Token
		depth  = 1
	)
	flush := func() {
		if len(group) > 0 {
			params = append(params, group[len(group)-1].Value)
			group = nil
		}
	}
	for !p.isAtEnd() && depth > 0 {
		tok := p.current()
		switch {
		case tok.Value == "<":
			depth++
			group = append(group, tok)
		case isAngleCloseRun(tok.Value):
			depth -= len(tok.Value)
			if depth <= 0 {
				p.advance()
				flush()
				return params
			}
			group = append(group, tok)
		case tok.Value == "," && depth == 1:
			flush()
		default:
			group = append(group, tok)
		}
		p.advance()
	}
	flush()
	return params
}

func (p *Parser) parseClass(parent *Node, templateSuffix string) {
	kind := KindClass
	if p.checkKeyword("struct") {
		kind = KindStruct
	}
	if templateSuffix != "" {
		kind = KindClassTemplate
	}
	p.advance() // class | struct

	node := &Node{Kind: kind, File: p.file}
	name := ""
	if p.check(TokenIdent) {
		name = p.current().Value
		p.advance()
	}
	node.Name = name + templateSuffix

	// forward declaration
	if p.matchValue(";") {
		return
	}
	// base-class clause
	if p.checkValue(":") {
		for !p.isAtEnd() && !p.checkValue("{") && !p.checkValue(";") {
			p.advance()
		}
	}
	if !p.matchValue("{") {
		p.skipStatement()
		return
	}

	parent.Children = append(parent.Children, node)
	p.parseMembers(node, name)
	p.matchValue(";")
}

// parseMembers consumes a class body up to and including its closing '}'.
func (p *Parser) parseMembers(class *Node, className string) {
	for !p.isAtEnd() {
		switch {
		case p.checkValue("}"):
			p.advance()
			return
		case p.checkKeyword("public") || p.checkKeyword("private") || p.checkKeyword("protected"):
			p.advance()
			p.matchValue(":")
		case p.checkKeyword("template"):
			p.parseTemplate(class)
		case p.checkKeyword("class") || p.checkKeyword("struct"):
			p.parseClass(class, "")
		case p.checkKeyword("using") || p.checkKeyword("typedef") ||
			p.checkKeyword("friend") || p.checkKeyword("enum"):
			p.skipStatement()
		default:
			decl := p.collectMemberDecl()
			if method := p.buildMethod(decl, className); method != nil {
				class.Children = append(class.Children, method)
			}
		}
	}
}

// collectMemberDecl gathers one member declaration's tokens up to its
// terminating ';' or inline body, which is skipped.
func (p *Parser) collectMemberDecl() []Token {
	var decl []Token
	depth := 0
	for !p.isAtEnd() {
		tok := p.current()
		switch tok.Value {
		case ";":
			p.advance()
			if depth == 0 {
				return decl
			}
		case "{":
			if depth == 0 {
				p.skipBalanced("{", "}")
				return decl
			}
			p.advance()
			decl = append(decl, tok)
		case "(", "[":
			depth++
			p.advance()
			decl = append(decl, tok)
		case ")", "]":
			depth--
			p.advance()
			decl = append(decl, tok)
		case "}":
			// malformed member; leave the brace for parseMembers
			return decl
		default:
			p.advance()
			decl = append(decl, tok)
		}
	}
	return decl
}

// buildMethod turns a member declaration into a method node. Constructors,
// destructors, and members without a parameter list yield nil.
func (p *Parser) buildMethod(decl []Token, className string) *Node {
	spelling, nameIdx, parenIdx := methodSpelling(decl)
	if spelling == "" || parenIdx < 0 {
		return nil
	}
	if spelling == className {
		return nil // constructor
	}
	if nameIdx > 0 && decl[nameIdx-1].Value == "~" {
		return nil // destructor
	}

	closeIdx := matchParen(decl, parenIdx)
	if closeIdx < 0 {
		return nil
	}

	params := stripParamNames(decl[parenIdx+1 : closeIdx])

	isConst := false
	for i := closeIdx + 1; i < len(decl); i++ {
		if decl[i].Value == "const" {
			isConst = true
			break
		}
	}

	tokens := make([]string, 0, len(decl))
	for _, t := range decl[:parenIdx+1] {
		tokens = append(tokens, t.Value)
	}
	for _, t := range params {
		tokens = append(tokens, t.Value)
	}
	for _, t := range decl[closeIdx:] {
		tokens = append(tokens, t.Value)
	}

	return &Node{
		Kind:        KindMethod,
		Name:        spelling,
		Spelling:    spelling,
		DisplayName: spelling + "(" + paramsDisplay(params) + ")",
		Tokens:      tokens,
		IsConst:     isConst,
		File:        p.file,
	}
}

// methodSpelling locates the method name and the opening parenthesis of its
// parameter list. Operator methods get their full spelling ("operator==",
// "operator()", "operator[]") assembled from the tokens after the operator
// keyword.
func methodSpelling(decl []Token) (spelling string, nameIdx, parenIdx int) {
	for i, tok := range decl {
		if tok.Value == "operator" {
			j := i + 1
			// call/cast operator: the "()" spelling precedes the real
			// parameter list
			if j+1 < len(decl) && decl[j].Value == "(" && decl[j+1].Value == ")" {
				if j+2 < len(decl) && decl[j+2].Value == "(" {
					return "operator()", i, j + 2
				}
				return "", -1, -1
			}
			var sym strings.Builder
			for ; j < len(decl) && decl[j].Value != "("; j++ {
				sym.WriteString(decl[j].Value)
			}
			if j >= len(decl) || sym.Len() == 0 {
				return "", -1, -1
			}
			return "operator" + sym.String(), i, j
		}
		if tok.Value == "(" {
			if i == 0 || decl[i-1].Type != TokenIdent {
				return "", -1, -1
			}
			return decl[i-1].Value, i - 1, i
		}
	}
	return "", -1, -1
}

// matchParen returns the index of the ')' matching the '(' at open.
func matchParen(decl []Token, open int) int {
	depth := 0
	for i := open; i < len(decl); i++ {
		switch decl[i].Value {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// stripParamNames removes source-level parameter names from a parameter
// list's tokens, leaving type spellings (and any default-argument text)
// only. A trailing identifier is treated as a name when the token before it
// could end a type: another identifier, a built-in type keyword, '&', '*',
// ']' or a closing angle run. "std::string s" loses "s" while a bare
// "std::string" is untouched.
func stripParamNames(params []Token) []Token {
	var (
		out   []Token
		group []Token
		depth int
	)
	flush := func() {
		if len(out) > 0 {
			out = append(out, Token{Type: TokenPunctuation, Value: ","})
		}
		out = append(out, stripOneParamName(group)...)
		group = nil
	}
	for _, tok := range params {
		switch {
		case tok.Value == "<" || tok.Value == "(" || tok.Value == "[":
			depth++
			group = append(group, tok)
		case tok.Value == ")" || tok.Value == "]":
			depth--
			group = append(group, tok)
		case isAngleCloseRun(tok.Value):
			depth -= len(tok.Value)
			group = append(group, tok)
		case tok.Value == "," && depth == 0:
			flush()
		default:
			group = append(group, tok)
		}
	}
	if len(group) > 0 || len(out) > 0 {
		flush()
	}
	return out
}

func stripOneParamName(group []Token) []Token {
	// default-argument text stays untouched
	typePart := group
	var defaultPart []Token
	for i, tok := range group {
		if tok.Value == "=" {
			typePart = group[:i]
			defaultPart = group[i:]
			break
		}
	}

	if n := len(typePart); n >= 2 {
		last, prev := typePart[n-1], typePart[n-2]
		if last.Type == TokenIdent && canEndType(prev) {
			typePart = typePart[:n-1]
		}
	}

	return append(append([]Token{}, typePart...), defaultPart...)
}

func canEndType(tok Token) bool {
	if tok.Type == TokenIdent || typeKeywords[tok.Value] {
		return true
	}
	switch tok.Value {
	case "&", "*", "]":
		return true
	}
	return isAngleCloseRun(tok.Value)
}

func paramsDisplay(params []Token) string {
	var b strings.Builder
	for i, tok := range params {
		if tok.Value == "," {
			b.WriteString(", ")
			continue
		}
		if i > 0 && params[i-1].Value != "," && params[i-1].Value != "::" && tok.Value != "::" {
			b.WriteString(" ")
		}
		b.WriteString(tok.Value)
	}
	return b.String()
}

// isAngleCloseRun reports tokens made entirely of '>' characters, which the
// lexer emits as single tokens the way libclang does.
func isAngleCloseRun(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] != '>' {
			return false
		}
	}
	return true
}

// skipBalanced consumes from the current open token through its matching
// close token.
func (p *Parser) skipBalanced(open, close string) {
	depth := 0
	for !p.isAtEnd() {
		switch p.current().Value {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// skipStatement consumes through the next top-level ';', skipping any braced
// block on the way (covers "enum E { ... };" and skipped function bodies).
func (p *Parser) skipStatement() {
	for !p.isAtEnd() {
		switch p.current().Value {
		case ";":
			p.advance()
			return
		case "{":
			p.skipBalanced("{", "}")
			p.matchValue(";")
			return
		case "}":
			return
		default:
			p.advance()
		}
	}
}

// token helpers

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == TokenEOF
}

func (p *Parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Type: TokenEOF}
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) check(t TokenType) bool {
	return p.current().Type == t
}

func (p *Parser) checkValue(v string) bool {
	return p.current().Value == v
}

func (p *Parser) checkKeyword(v string) bool {
	c := p.current()
	return c.Type == TokenKeyword && c.Value == v
}

func (p *Parser) matchValue(v string) bool {
	if p.checkValue(v) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(v string) bool {
	if p.checkKeyword(v) {
		p.advance()
		return true
	}
	return false
}
