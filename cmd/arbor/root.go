package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Agent tree coordination engine",
	Long: `Arbor coordinates a ten-level tree of agents over a shared SQLite store.

The upper tree (levels 0-4) is a fixed skeleton built from a template; deep
branches (levels 5-9) spawn lazily from a niche-agent catalog as work arrives.
Questions escalate one hop at a time toward the root, checking cheap local
knowledge sources before a human ever sees them, and answers propagate back
down through every level they passed.

Core capabilities:
- Builds the skeleton tree from built-in or imported templates
- Spawns specialist branches on demand from the niche catalog
- Routes delegated work to the children whose scope matches best
- Escalates questions with history, decision, and sibling answer checks
- Prunes completed deep branches and tears down per-task trees`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(delegateCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(failCmd)
	rootCmd.AddCommand(spawnCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(versionCmd)
}
