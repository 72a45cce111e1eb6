package verify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/mustafa-siddiqui/gmockgen/internal/cxx"
	igenerator "github.com/mustafa-siddiqui/gmockgen/internal/generator"
	"github.com/mustafa-siddiqui/gmockgen/pkg/generator"
	"github.com/mustafa-siddiqui/gmockgen/pkg/manifest"
)

// Verify re-renders the mocks for an interface header in memory and compares
// them with the artifacts on disk. Missing or out-of-date artifacts make the
// run fail; nothing is written.
func Verify(o *generator.Options) error {
	o.Normalize()

	root, err := cxx.ParseFile(o.File)
	if err != nil {
		return fmt.Errorf("parse %s: %w", o.File, err)
	}

	interfaces, err := igenerator.NewAggregator(o.Expr, o.ArgPrefix).Collect(root)
	if err != nil {
		return err
	}

	var stale []string
	for _, it := range interfaces {
		rep, err := igenerator.Replacements(it, o.OutDir)
		if err != nil {
			return fmt.Errorf("interface %s: %w", it.QualifiedName(), err)
		}
		header, err := igenerator.RenderHeader(rep)
		if err != nil {
			return fmt.Errorf("render header for %s: %w", it.QualifiedName(), err)
		}
		source, err := igenerator.RenderSource(rep)
		if err != nil {
			return fmt.Errorf("render source for %s: %w", it.QualifiedName(), err)
		}

		stale = append(stale, compareArtifact(filepath.Join(o.OutDir, rep["mock_file_hpp"]), header)...)
		stale = append(stale, compareArtifact(filepath.Join(o.OutDir, rep["mock_file_cpp"]), source)...)
	}

	if len(stale) > 0 {
		return fmt.Errorf("stale mock artifacts: %s", strings.Join(stale, ", "))
	}
	return nil
}

func compareArtifact(path, want string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.With("file", path, "error", err).Warn("mock artifact missing")
		return []string{path}
	}
	if diff := cmp.Diff(want, string(data)); diff != "" {
		slog.With("file", path, "diff", diff).Warn("mock artifact out of date")
		return []string{path}
	}
	return nil
}

// List returns the manifest recorded for an output directory.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}
