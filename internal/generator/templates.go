package generator

import (
	"embed"
	"fmt"
	"sync"

	"github.com/cbroglie/mustache"
)

const (
	tmplHeader = "templates/gmock-h.mustache"
	tmplSource = "templates/gmock-cpp.mustache"
)

//go:embed templates/*.mustache
var templatesFS embed.FS

var (
	headerTmpl   *mustache.Template
	sourceTmpl   *mustache.Template
	tmplInitOnce sync.Once
	tmplInitErr  error
)

// ensureTemplates parses both embedded templates exactly once.
func ensureTemplates() error {
	tmplInitOnce.Do(func() {
		headerTmpl, tmplInitErr = parseTemplate(tmplHeader)
		if tmplInitErr != nil {
			return
		}
		sourceTmpl, tmplInitErr = parseTemplate(tmplSource)
	})
	return tmplInitErr
}

func parseTemplate(name string) (*mustache.Template, error) {
	raw, err := templatesFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read template %q: %w", name, err)
	}
	t, err := mustache.ParseString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}
	return t, nil
}

// RenderHeader renders the mock header file from a replacement mapping.
func RenderHeader(replacements map[string]string) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	return headerTmpl.Render(replacements)
}

// RenderSource renders the mock source file from a replacement mapping.
func RenderSource(replacements map[string]string) (string, error) {
	if err := ensureTemplates(); err != nil {
		return "", err
	}
	return sourceTmpl.Render(replacements)
}
