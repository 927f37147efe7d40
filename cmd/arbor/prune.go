package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune <root-id>",
	Short: "Prune completed deep branches",
	Long: `Mark completed deep-branch nodes Pruned under the given root.

Only nodes below the skeleton (level 5 and deeper) are eligible, and only
when they are Completed and every direct child is Completed or already
Pruned. The level 0-4 skeleton is never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		pruned, err := rt.engine.PruneCompletedBranches(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d node(s).\n", pruned)
		return nil
	},
}
