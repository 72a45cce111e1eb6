package model

import (
	"strconv"
	"strings"
)

// DefaultArgsPrefix names synthesized parameters arg0, arg1, ... when no
// other prefix is configured.
const DefaultArgsPrefix = "arg"

// MockMethod is the renderable form of one reconstructed method declaration.
// Instances are immutable after construction.
type MockMethod struct {
	ResultType string // reconstructed return type text
	Name       string // un-qualified spelling, e.g. "bar" or "operator=="
	IsConst    bool
	IsTemplate bool   // true when the enclosing interface is a class template
	ArgsSize   int    // top-level argument count
	Args       string // reconstructed comma-separated argument types
	ArgsPrefix string // synthesized parameter-name prefix; empty means DefaultArgsPrefix
}

func (m *MockMethod) prefix() string {
	if m.ArgsPrefix == "" {
		return DefaultArgsPrefix
	}
	return m.ArgsPrefix
}

// NamedArgs renders the synthesized parameter names only: "arg0, arg1".
func (m *MockMethod) NamedArgs() string {
	var b strings.Builder
	for i := 0; i < m.ArgsSize; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.prefix())
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// NamedArgsWithTypes appends a synthesized name to every top-level argument
// in Args: "int, std::string" becomes "int arg0, std::string arg1". Commas
// nested inside angle brackets or parentheses never receive a name.
func (m *MockMethod) NamedArgsWithTypes() string {
	if m.Args == "" {
		return ""
	}
	var (
		b      strings.Builder
		inType bool
		i      int
	)
	for _, c := range m.Args {
		switch c {
		case '<', '(':
			inType = true
		case '>', ')':
			inType = false
		}
		if !inType && c == ',' {
			b.WriteString(" " + m.prefix() + strconv.Itoa(i))
			i++
		}
		b.WriteRune(c)
	}
	b.WriteString(" " + m.prefix() + strconv.Itoa(i))
	return b.String()
}

// Render produces the gmock declaration text for this method, indented by
// gap. Operator methods additionally get a forwarding wrapper, since gmock
// cannot mock operator-syntax names: the wrapper keeps the operator's
// original signature and delegates to the descriptive-named mock.
func (m *MockMethod) Render(gap string) string {
	var b strings.Builder
	name := m.Name
	if descriptive, ok := OperatorName(m.Name); ok {
		b.WriteString(gap)
		b.WriteString("virtual ")
		b.WriteString(m.ResultType)
		b.WriteString(" ")
		b.WriteString(m.Name)
		b.WriteString("(")
		b.WriteString(m.NamedArgsWithTypes())
		b.WriteString(") ")
		if m.IsConst {
			b.WriteString("const ")
		}
		b.WriteString("{ ")
		if strings.TrimSpace(m.ResultType) != "void" {
			b.WriteString("return ")
		}
		b.WriteString(descriptive)
		b.WriteString("(")
		b.WriteString(m.NamedArgs())
		b.WriteString("); }\n")
		name = descriptive
	}

	b.WriteString(gap)
	b.WriteString("MOCK_")
	if m.IsConst {
		b.WriteString("CONST_")
	}
	b.WriteString("METHOD")
	b.WriteString(strconv.Itoa(m.ArgsSize))
	if m.IsTemplate {
		b.WriteString("_T")
	}
	b.WriteString("(")
	b.WriteString(name)
	b.WriteString(", ")
	b.WriteString(m.ResultType)
	b.WriteString("(")
	b.WriteString(m.NamedArgsWithTypes())
	b.WriteString("));")

	return b.String()
}

// Interface is one discovered interface: its qualified-name path and the
// mock methods collected beneath it, in declaration order. The last path
// segment keeps any template-argument suffix ("IFoo<T1, T2>").
type Interface struct {
	Path    []string
	File    string // originating source file of the first discovered method
	Methods []*MockMethod
}

// QualifiedName joins the path with "::".
func (it *Interface) QualifiedName() string {
	return strings.Join(it.Path, "::")
}

// LastSegment is the interface's own (possibly templated) name.
func (it *Interface) LastSegment() string {
	if len(it.Path) == 0 {
		return ""
	}
	return it.Path[len(it.Path)-1]
}

// Name is the interface name with any template-argument suffix removed.
func (it *Interface) Name() string {
	seg := it.LastSegment()
	if i := strings.Index(seg, "<"); i >= 0 {
		return seg[:i]
	}
	return seg
}

// Namespaces lists the enclosing scope segments, outermost first.
func (it *Interface) Namespaces() []string {
	if len(it.Path) < 2 {
		return nil
	}
	return it.Path[:len(it.Path)-1]
}

// IsTemplate reports whether the interface itself is a class template.
func (it *Interface) IsTemplate() bool {
	return strings.Contains(it.LastSegment(), "<")
}

// TemplateParams extracts the template parameter names from the last path
// segment: "IFoo<T1, T2>" yields ["T1", "T2"].
func (it *Interface) TemplateParams() []string {
	seg := it.LastSegment()
	open := strings.Index(seg, "<")
	end := strings.LastIndex(seg, ">")
	if open < 0 || end <= open {
		return nil
	}
	raw := strings.Split(seg[open+1:end], ",")
	params := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}
