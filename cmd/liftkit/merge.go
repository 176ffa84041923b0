package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liftkit-dev/liftkit/pkg/dom"
	"github.com/liftkit-dev/liftkit/pkg/merge"
	"github.com/liftkit-dev/liftkit/pkg/validate"
)

func mergeCmd() *cobra.Command {
	var dev bool
	var stripComments bool

	cmd := &cobra.Command{
		Use:   "merge <template.html>",
		Short: "Merge a template file and print the resulting document",
		Long: `Runs a stateless merge over a template file and prints the result,
useful for inspecting what the merge phase does to a template without
starting a server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			nodes, err := dom.ParseTemplate(string(src))
			if err != nil {
				return err
			}

			cfg := merge.Config{
				DevMode:       dev,
				StripComments: stripComments,
			}
			if dev {
				cfg.Validators = validate.Defaults()
			}

			result := merge.Merge(nodes, cfg)
			out := cmd.OutOrStdout()
			if result.IsElement("html") {
				if err := dom.RenderDocument(out, result); err != nil {
					return err
				}
			} else if err := dom.Render(out, result); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "run in development mode (validation, no minification)")
	cmd.Flags().BoolVar(&stripComments, "strip-comments", false, "drop HTML comments from output")
	return cmd
}
