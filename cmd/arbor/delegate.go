package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var delegateTargetLevel int

var delegateCmd = &cobra.Command{
	Use:   "delegate <node-id> <task description>",
	Short: "Delegate work down from a node",
	Long: `Push a task description from a node to its best-matching children.

Children are scored by keyword overlap between the description and their
scope; only matching children are targeted, and when nothing matches the work
broadcasts to all of them. A childless node spawns its branch first.

Examples:
  arbor delegate 4f3a... "build a new button component"
  arbor delegate 4f3a... --target-level 9 "ship the login form"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDelegate,
}

func init() {
	delegateCmd.Flags().IntVar(&delegateTargetLevel, "target-level", 0, "Level to spawn down to when the node has no children")
}

func runDelegate(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	nodeID := args[0]
	description := strings.Join(args[1:], " ")

	targets, err := rt.engine.DelegateDown(nodeID, description, delegateTargetLevel)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("No children to delegate to.")
		return nil
	}

	fmt.Printf("Delegated to %d node(s):\n", len(targets))
	for _, target := range targets {
		fmt.Printf("  %s (L%d, scope: %s)\n", target.Name, target.Level, target.Scope)
	}
	return nil
}
