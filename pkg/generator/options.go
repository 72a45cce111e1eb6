package generator

import (
	"path/filepath"
	"strings"
)

// Options control parsing and mock generation.
//
// File      – interface header file to parse
// OutDir    – directory to place generated mock files in
// Expr      – limit generation to interfaces within this qualified-name
//             expression ("" means no restriction)
// ArgPrefix – prefix for synthesized parameter names (default "arg")
// Format    – run clang-format over the generated files
// Manifest  – manifest file name written into OutDir ("" disables)
type Options struct {
	File      string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty" mapstructure:"file,omitempty"`
	OutDir    string `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Expr      string `json:"expr,omitempty" yaml:"expr,omitempty" toml:"expr,omitempty" mapstructure:"expr,omitempty"`
	ArgPrefix string `json:"arg_prefix,omitempty" yaml:"arg_prefix,omitempty" toml:"arg_prefix,omitempty" mapstructure:"arg_prefix,omitempty"`
	Format    bool   `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format,omitempty"`
	Manifest  string `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
}

func NewOptions(opts ...Option) *Options {
	o := &Options{
		OutDir:    ".",
		ArgPrefix: "arg",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Options) Normalize() {
	if len(o.OutDir) == 0 {
		o.OutDir = "."
	}
	if strings.Contains(o.OutDir, "..") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.ArgPrefix) == 0 {
		o.ArgPrefix = "arg"
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithFile(f string) Option      { return func(o *Options) { o.File = f } }
func WithOutDir(d string) Option    { return func(o *Options) { o.OutDir = d } }
func WithExpr(e string) Option      { return func(o *Options) { o.Expr = e } }
func WithArgPrefix(p string) Option { return func(o *Options) { o.ArgPrefix = p } }
func WithFormat() Option            { return func(o *Options) { o.Format = true } }
func WithManifest(name string) Option {
	return func(o *Options) { o.Manifest = name }
}
