package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/membrane/controller"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the demo component tree as DOT",
	Long: `Build the demo component tree and print its containment structure
in Graphviz DOT format. Pipe through dot -Tpng to render an image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := buildDemoTree(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), controller.DotGraph(root))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
