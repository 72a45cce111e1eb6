package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mustafa-siddiqui/gmockgen/internal/cxx"
)

const fooHeader = `#ifndef I_FOO_H_
#define I_FOO_H_

#include <string>

namespace ns {

class IFoo {
public:
    virtual ~IFoo() {}
    virtual void bar(int x, std::string s) = 0;
};

} // namespace ns

#endif
`

func TestCollectSingleInterface(t *testing.T) {
	root := cxx.Parse(fooHeader, "i-foo.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)
	require.Len(t, interfaces, 1)

	it := interfaces[0]
	require.Equal(t, "ns::IFoo", it.QualifiedName())
	require.Len(t, it.Methods, 1)

	m := it.Methods[0]
	require.Equal(t, "bar", m.Name)
	require.Equal(t, "void", m.ResultType)
	require.Equal(t, 2, m.ArgsSize)
	require.Equal(t, "int, std::string", m.Args)
	require.False(t, m.IsConst)
	require.False(t, m.IsTemplate)
}

func TestReplacementsPlainInterface(t *testing.T) {
	root := cxx.Parse(fooHeader, "i-foo.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)

	got, err := Replacements(interfaces[0], "out")
	require.NoError(t, err)

	want := map[string]string{
		"mock_file_hpp":       "i-foo-gmock.h",
		"mock_file_cpp":       "i-foo-gmock.cpp",
		"generated_dir":       "out",
		"guard":               "I_FOO_GMOCK_H_",
		"file":                "i-foo.h",
		"namespaces_begin":    "namespace ns {",
		"interface":           "I_FOO",
		"class_name":          "I_FOO_GMOCK",
		"template_class_name": "I_FOO_GMOCK",
		"template_interface":  "IFoo",
		"template":            "",
		"mock_methods":        "    MOCK_METHOD2(bar, void(int arg0, std::string arg1));",
		"namespaces_end":      "} // namespace ns",
	}
	require.Emptyf(t, cmp.Diff(want, got), "replacement mismatch:\n%s", cmp.Diff(want, got))
}

func TestReplacementsOperatorMethod(t *testing.T) {
	src := `
class IComparable {
public:
    virtual bool operator==(const IComparable& other) const = 0;
};
`
	root := cxx.Parse(src, "i-comparable.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)
	require.Len(t, interfaces, 1)

	got, err := Replacements(interfaces[0], "out")
	require.NoError(t, err)

	wantMethods := "    virtual bool operator==(const IComparable & arg0) const { return equality_operator(arg0); }\n" +
		"    MOCK_CONST_METHOD1(equality_operator, bool(const IComparable & arg0));"
	require.Equal(t, wantMethods, got["mock_methods"])
	require.Equal(t, "", got["namespaces_begin"])
	require.Equal(t, "", got["namespaces_end"])
}

func TestReplacementsTemplatedInterface(t *testing.T) {
	src := `
template <typename T1, typename T2>
class IContainer {
public:
    virtual T1 get(T2 key) const = 0;
    virtual void put(T2 key, T1 value) = 0;
};
`
	root := cxx.Parse(src, "i-container.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)
	require.Len(t, interfaces, 1)
	require.True(t, interfaces[0].IsTemplate())

	got, err := Replacements(interfaces[0], "gen")
	require.NoError(t, err)

	require.Equal(t, "template<typename T1, typename T2>\n", got["template"])
	require.Equal(t, "I_CONTAINER_GMOCK", got["class_name"])
	require.Equal(t, "I_CONTAINER_GMOCK<T1, T2>", got["template_class_name"])
	require.Equal(t, "IContainer<T1, T2>", got["template_interface"])

	wantMethods := "    MOCK_CONST_METHOD1_T(get, T1(T2 arg0));\n" +
		"    MOCK_METHOD2_T(put, void(T2 arg0, T1 arg1));"
	require.Equal(t, wantMethods, got["mock_methods"])
}

func TestCollectAllInterfacesInDiscoveryOrder(t *testing.T) {
	src := `
namespace ns {

class IFirst {
public:
    virtual void a() = 0;
};

class ISecond {
public:
    virtual void b() = 0;
    virtual void c() = 0;
};

} // namespace ns
`
	root := cxx.Parse(src, "pair.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)
	require.Len(t, interfaces, 2)
	require.Equal(t, "ns::IFirst", interfaces[0].QualifiedName())
	require.Equal(t, "ns::ISecond", interfaces[1].QualifiedName())
	require.Len(t, interfaces[0].Methods, 1)
	require.Len(t, interfaces[1].Methods, 2)
}

func TestScopeRestriction(tt *testing.T) {
	src := `
namespace ns {

class IFoo {
public:
    virtual void a() = 0;
};

class IFooBar {
public:
    virtual void b() = 0;
};

} // namespace ns

namespace other {

class IFoo {
public:
    virtual void c() = 0;
};

} // namespace other
`

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "exact qualified name",
			expr: "ns::IFoo",
			want: []string{"ns::IFoo"},
		},
		{
			name: "prefix segment is not a match",
			expr: "ns::IFooBar",
			want: []string{"ns::IFooBar"},
		},
		{
			name: "namespace admits every member",
			expr: "ns",
			want: []string{"ns::IFoo", "ns::IFooBar"},
		},
		{
			name: "unrestricted",
			expr: "",
			want: []string{"ns::IFoo", "ns::IFooBar", "other::IFoo"},
		},
	}
	for _, tc := range tests {
		tt.Run(tc.name, func(t *testing.T) {
			root := cxx.Parse(src, "scoped.h")
			interfaces, err := NewAggregator(tc.expr, "arg").Collect(root)
			require.NoError(t, err)

			var got []string
			for _, it := range interfaces {
				got = append(got, it.QualifiedName())
			}
			require.Empty(t, cmp.Diff(tc.want, got))
		})
	}
}

// A restriction without the template suffix still matches a templated
// interface.
func TestScopeRestrictionIgnoresTemplateSuffix(t *testing.T) {
	src := `
template <typename T>
class ICache {
public:
    virtual T load(int key) = 0;
};
`
	root := cxx.Parse(src, "i-cache.h")

	interfaces, err := NewAggregator("ICache", "arg").Collect(root)
	require.NoError(t, err)
	require.Len(t, interfaces, 1)
	require.Equal(t, "ICache<T>", interfaces[0].QualifiedName())
}

func TestCollectNoInterface(t *testing.T) {
	src := `
#include <string>

class Plain {
public:
    Plain();
    ~Plain();
};

void freeFunction(int x);
`
	root := cxx.Parse(src, "plain.h")

	_, err := NewAggregator("", "arg").Collect(root)
	require.ErrorIs(t, err, ErrNoInterface)
}

func TestCollectScopedOutIsNoInterface(t *testing.T) {
	root := cxx.Parse(fooHeader, "i-foo.h")

	_, err := NewAggregator("ns::IMissing", "arg").Collect(root)
	require.ErrorIs(t, err, ErrNoInterface)
}

func TestCustomArgumentPrefix(t *testing.T) {
	root := cxx.Parse(fooHeader, "i-foo.h")

	interfaces, err := NewAggregator("", "param").Collect(root)
	require.NoError(t, err)

	got, err := Replacements(interfaces[0], "out")
	require.NoError(t, err)
	require.Equal(t, "    MOCK_METHOD2(bar, void(int param0, std::string param1));", got["mock_methods"])
}

func TestRenderHeaderAndSource(t *testing.T) {
	root := cxx.Parse(fooHeader, "i-foo.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)

	replacements, err := Replacements(interfaces[0], "out")
	require.NoError(t, err)

	header, err := RenderHeader(replacements)
	require.NoError(t, err)
	require.Contains(t, header, "#ifndef I_FOO_GMOCK_H_")
	require.Contains(t, header, "#define I_FOO_GMOCK_H_")
	require.Contains(t, header, "#include <gmock/gmock.h>")
	require.Contains(t, header, `#include "i-foo.h"`)
	require.Contains(t, header, "namespace ns {")
	require.Contains(t, header, "class I_FOO_GMOCK : public IFoo {")
	require.Contains(t, header, "MOCK_METHOD2(bar, void(int arg0, std::string arg1));")
	require.Contains(t, header, "} // namespace ns")
	require.NotContains(t, header, "{{")

	source, err := RenderSource(replacements)
	require.NoError(t, err)
	require.Contains(t, source, `#include "i-foo-gmock.h"`)
	require.NotContains(t, source, "{{")
}

func TestNamespaceCloseOrderMirrorsOpenOrder(t *testing.T) {
	src := `
namespace a {
namespace b {

class IDeep {
public:
    virtual void f() = 0;
};

}
}
`
	root := cxx.Parse(src, "deep.h")

	interfaces, err := NewAggregator("", "arg").Collect(root)
	require.NoError(t, err)

	got, err := Replacements(interfaces[0], "out")
	require.NoError(t, err)
	require.Equal(t, "namespace a {\nnamespace b {", got["namespaces_begin"])
	require.Equal(t, "} // namespace b\n} // namespace a", got["namespaces_end"])
}
