package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildTemplate string

var buildCmd = &cobra.Command{
	Use:   "build <task-id>",
	Short: "Build a skeleton tree for a task",
	Long: `Instantiate the level 0-4 skeleton for a task from a template.

Deep branches are not built here; they spawn lazily when work is delegated,
or explicitly via 'arbor spawn'.

Examples:
  arbor build checkout-rework
  arbor build checkout-rework --template team`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "Template name (defaults to the configured default)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	root, err := rt.engine.BuildSkeletonForPlan(args[0], buildTemplate)
	if err != nil {
		return err
	}
	fmt.Printf("Skeleton built for task %s. Root: %s (%s)\n", args[0], root.Name, root.ID)
	return nil
}
