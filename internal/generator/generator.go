package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mustafa-siddiqui/gmockgen/internal/cxx"
	"github.com/mustafa-siddiqui/gmockgen/internal/model"
	"github.com/mustafa-siddiqui/gmockgen/internal/naming"
)

// ErrNoInterface reports a traversal that discovered no interface methods:
// there is nothing to render.
var ErrNoInterface = errors.New("generator: no interface methods found")

// methodGap indents rendered method declarations inside the mock class body.
const methodGap = "    "

// Aggregator walks a declaration tree, collects mock methods per qualified
// interface name, and assembles the replacement mappings consumed by the
// template renderer. Interfaces are kept in discovery order.
type Aggregator struct {
	scope      []string // scope-restriction segments; empty means unrestricted
	argsPrefix string
	interfaces []*model.Interface
	index      map[string]*model.Interface
}

func NewAggregator(scopeExpr, argsPrefix string) *Aggregator {
	var scope []string
	if scopeExpr != "" {
		scope = strings.Split(scopeExpr, "::")
	}
	return &Aggregator{
		scope:      scope,
		argsPrefix: argsPrefix,
		index:      make(map[string]*model.Interface),
	}
}

// Collect traverses the tree and returns every discovered interface in
// discovery order. Zero discovered interfaces is fatal.
func (a *Aggregator) Collect(root *cxx.Node) ([]*model.Interface, error) {
	if err := a.walk(root, nil); err != nil {
		return nil, err
	}
	if len(a.interfaces) == 0 {
		return nil, ErrNoInterface
	}
	return a.interfaces, nil
}

func (a *Aggregator) walk(n *cxx.Node, path []string) error {
	switch n.Kind {
	case cxx.KindMethod:
		// methods at file or namespace scope are not mockable members
		if len(path) == 0 {
			return nil
		}
		return a.record(n, path)

	case cxx.KindNamespace, cxx.KindClass, cxx.KindStruct, cxx.KindClassTemplate:
		next := path
		if n.Name != "" {
			next = make([]string, 0, len(path)+1)
			next = append(append(next, path...), n.Name)
		}
		if !a.inScope(next) {
			return nil
		}
		for _, c := range n.Children {
			if err := a.walk(c, next); err != nil {
				return err
			}
		}

	default:
		for _, c := range n.Children {
			if err := a.walk(c, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Aggregator) record(n *cxx.Node, path []string) error {
	count, args, err := arguments(n.Tokens)
	if err != nil {
		return fmt.Errorf("%s::%s: %w", strings.Join(path, "::"), n.Spelling, err)
	}

	key := strings.Join(path, "::")
	rec, ok := a.index[key]
	if !ok {
		rec = &model.Interface{
			Path: append([]string(nil), path...),
			File: n.File,
		}
		a.index[key] = rec
		a.interfaces = append(a.interfaces, rec)
	}

	rec.Methods = append(rec.Methods, &model.MockMethod{
		ResultType: resultType(n.Tokens, n.Spelling),
		Name:       n.Spelling,
		IsConst:    n.IsConst,
		IsTemplate: strings.Contains(path[len(path)-1], "<"),
		ArgsSize:   count,
		Args:       args,
		ArgsPrefix: a.argsPrefix,
	})
	return nil
}

// inScope prunes traversal outside the scope-restriction expression. The
// qualified path and the restriction are compared segment by segment, so
// "ns::Foo" never admits "ns::FooBar"; traversal continues while one is a
// prefix of the other (descending toward the target, then inside it).
func (a *Aggregator) inScope(path []string) bool {
	if len(a.scope) == 0 {
		return true
	}
	n := len(path)
	if len(a.scope) < n {
		n = len(a.scope)
	}
	for i := 0; i < n; i++ {
		if segmentBase(path[i]) != segmentBase(a.scope[i]) {
			return false
		}
	}
	return true
}

// segmentBase strips a template-argument suffix from a path segment, so a
// restriction "ns::IFoo" matches the discovered "ns::IFoo<T1, T2>".
func segmentBase(seg string) string {
	if i := strings.Index(seg, "<"); i >= 0 {
		return seg[:i]
	}
	return seg
}

// Replacements assembles the flat mapping the template renderer consumes
// for one interface. All naming derives from the interface's own name; the
// structured path, namespace, and template-parameter values are formatted
// to text only here, at the rendering boundary.
func Replacements(it *model.Interface, outDir string) (map[string]string, error) {
	ident, err := naming.New(it.Name())
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"mock_file_hpp":       ident.HeaderFileName(),
		"mock_file_cpp":       ident.SourceFileName(),
		"generated_dir":       outDir,
		"guard":               ident.HeaderGuardName(),
		"file":                filepath.Base(it.File),
		"namespaces_begin":    namespacesBegin(it.Namespaces()),
		"interface":           strings.ToUpper(ident.SnakeCase()),
		"class_name":          ident.MockClassName(),
		"template_class_name": templateClassName(ident.MockClassName(), it),
		"template_interface":  it.LastSegment(),
		"template":            templateLine(it.TemplateParams()),
		"mock_methods":        renderMethods(it.Methods),
		"namespaces_end":      namespacesEnd(it.Namespaces()),
	}, nil
}

func namespacesBegin(namespaces []string) string {
	lines := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		lines = append(lines, "namespace "+ns+" {")
	}
	return strings.Join(lines, "\n")
}

func namespacesEnd(namespaces []string) string {
	lines := make([]string, 0, len(namespaces))
	for i := len(namespaces) - 1; i >= 0; i-- {
		lines = append(lines, "} // namespace "+namespaces[i])
	}
	return strings.Join(lines, "\n")
}

// templateLine renders the "template<typename T1, typename T2>" prefix line
// for templated interfaces, empty otherwise.
func templateLine(params []string) string {
	if len(params) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("template<")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("typename ")
		b.WriteString(p)
	}
	b.WriteString(">\n")
	return b.String()
}

// templateClassName appends the interface's template-argument suffix to the
// mock class name when the interface itself is a template.
func templateClassName(className string, it *model.Interface) string {
	if !it.IsTemplate() {
		return className
	}
	return className + "<" + strings.Join(it.TemplateParams(), ", ") + ">"
}

func renderMethods(methods []*model.MockMethod) string {
	rendered := make([]string, 0, len(methods))
	for _, m := range methods {
		rendered = append(rendered, m.Render(methodGap))
	}
	return strings.Join(rendered, "\n")
}
