package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mustafa-siddiqui/gmockgen/pkg/action/verify"
	"github.com/mustafa-siddiqui/gmockgen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewVerifyCommand())
	rootCmd.AddCommand(NewListCommand())
}

func NewVerifyCommand() *cobra.Command {
	options := generator.NewOptions()

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "verify generated mocks are up to date",
		Long:  "Re-render the mocks for an interface header in memory and fail if the artifacts on disk are missing or out of date",
		RunE: func(c *cobra.Command, args []string) error {
			return verify.Verify(options)
		},
	}
	verifyCmd.PersistentFlags().StringVarP(&options.File, "file", "f", "", "path to the interface file the mocks were generated from")
	verifyCmd.PersistentFlags().StringVarP(&options.OutDir, "dir", "d", ".", "directory holding the generated mock files")
	verifyCmd.PersistentFlags().StringVarP(&options.Expr, "expr", "e", "", "limit verification to interfaces within expression, e.g. ns::IFoo")
	verifyCmd.PersistentFlags().StringVar(&options.ArgPrefix, "arg-prefix", "arg", "prefix for synthesized parameter names")
	_ = verifyCmd.MarkPersistentFlagRequired("file")

	return verifyCmd
}

// NewListCommand prints the manifest recorded for an output directory.
func NewListCommand() *cobra.Command {
	var (
		dir      string
		manifest string
	)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "list generated mocks recorded in the manifest",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := verify.List(filepath.Join(dir, manifest))
			if err != nil {
				return err
			}
			for _, e := range m.Entries {
				fmt.Fprintf(c.OutOrStdout(), "%s\t%s\t%s\n", e.Interface, e.Header, e.Cpp)
			}
			return nil
		},
	}
	listCmd.PersistentFlags().StringVarP(&dir, "dir", "d", ".", "directory holding the generated mock files")
	listCmd.PersistentFlags().StringVar(&manifest, "manifest", "gmockgen.yaml", "manifest file name within the output directory")

	return listCmd
}
