package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mustafa-siddiqui/gmockgen/pkg/action/generate"
	"github.com/mustafa-siddiqui/gmockgen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	options := generator.NewOptions()

	// generateCmd represents the gmockgen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate mock classes",
		Long:  "Generate Google Mock class files from the virtual methods of a C++ interface header",
		RunE: func(c *cobra.Command, args []string) error {
			return generate.Generate(options)
		},
	}
	generateCmd.PersistentFlags().StringVarP(&options.File, "file", "f", "", "path to the interface file from which the mock files are generated")
	generateCmd.PersistentFlags().StringVarP(&options.OutDir, "dir", "d", ".", "directory to store generated mock files in")
	generateCmd.PersistentFlags().StringVarP(&options.Expr, "expr", "e", "", "limit generation to interfaces within expression, e.g. ns::IFoo")
	generateCmd.PersistentFlags().StringVar(&options.ArgPrefix, "arg-prefix", "arg", "prefix for synthesized parameter names")
	generateCmd.PersistentFlags().BoolVar(&options.Format, "format", false, "run clang-format over the generated files")
	generateCmd.PersistentFlags().StringVar(&options.Manifest, "manifest", "", "manifest file name written into the output directory")
	_ = generateCmd.MarkPersistentFlagRequired("file")

	return generateCmd
}
