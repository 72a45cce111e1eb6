package generate

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mustafa-siddiqui/gmockgen/internal/cxx"
	igenerator "github.com/mustafa-siddiqui/gmockgen/internal/generator"
	"github.com/mustafa-siddiqui/gmockgen/pkg/generator"
	"github.com/mustafa-siddiqui/gmockgen/pkg/manifest"
)

type artifact struct {
	entry   manifest.Entry
	header  string
	source  string
	hdrPath string
	cppPath string
}

// Generate runs one end-to-end generation pass: parse the interface header,
// collect mock methods per interface, render a header/source pair for every
// discovered interface, and write them under OutDir. Rendering happens
// before any file is touched, so a failing run writes nothing.
func Generate(o *generator.Options) error {
	o.Normalize()

	root, err := cxx.ParseFile(o.File)
	if err != nil {
		return fmt.Errorf("parse %s: %w", o.File, err)
	}

	agg := igenerator.NewAggregator(o.Expr, o.ArgPrefix)
	interfaces, err := agg.Collect(root)
	if err != nil {
		return err
	}

	artifacts := make([]artifact, 0, len(interfaces))
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
		artifacts = append(artifacts, artifact{
			entry: manifest.Entry{
				Interface: it.QualifiedName(),
				Source:    rep["file"],
				Header:    rep["mock_file_hpp"],
				Cpp:       rep["mock_file_cpp"],
			},
			header:  header,
			source:  source,
			hdrPath: filepath.Join(o.OutDir, rep["mock_file_hpp"]),
			cppPath: filepath.Join(o.OutDir, rep["mock_file_cpp"]),
		})
	}

	if err = os.MkdirAll(o.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, a := range artifacts {
		if err = os.WriteFile(a.hdrPath, []byte(a.header), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.hdrPath, err)
		}
		if err = os.WriteFile(a.cppPath, []byte(a.source), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.cppPath, err)
		}
		slog.With("interface", a.entry.Interface, "header", a.hdrPath, "cpp", a.cppPath).
			Info("generated mock files")

		if o.Format {
			formatFile(a.hdrPath)
			formatFile(a.cppPath)
		}
	}

	if o.Manifest != "" {
		path := filepath.Join(o.OutDir, o.Manifest)
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		for _, a := range artifacts {
			m.Add(a.entry)
		}
		if err = m.Save(path); err != nil {
			return err
		}
	}

	return nil
}

// formatFile runs clang-format in place. Formatting is a best-effort
// post-generation pass; a missing binary is logged and ignored.
func formatFile(path string) {
	if err := exec.Command("clang-format", path, "-i").Run(); err != nil {
		slog.With("error", err, "file", path).Warn("clang-format failed")
	}
}
