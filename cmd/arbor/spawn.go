package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborhq/arbor/pkg/models"
)

var spawnTargetLevel int

var spawnCmd = &cobra.Command{
	Use:   "spawn <node-id>",
	Short: "Spawn a deep branch under a node",
	Long: `Materialize the lazy branch below a node from the niche-agent catalog.

Spawning walks one level at a time down to the target level, keeping catalog
definitions whose specialty overlaps the node's scope and respecting each
parent's fanout cap. Levels with no matching definitions end the branch.

Examples:
  arbor spawn 4f3a...                   # Spawn down to the worker level
  arbor spawn 4f3a... --target-level 6  # Spawn two levels under a manager`,
	Args: cobra.ExactArgs(1),
	RunE: runSpawn,
}

func init() {
	spawnCmd.Flags().IntVar(&spawnTargetLevel, "target-level", models.WorkerLevel, "Deepest level to spawn")
}

func runSpawn(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	created, err := rt.engine.SpawnBranch(args[0], spawnTargetLevel)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Println("Nothing spawned: no catalog definitions match, or the branch already exists.")
		return nil
	}

	fmt.Printf("Spawned %d node(s):\n", len(created))
	for _, node := range created {
		fmt.Printf("  L%d %s (scope: %s)\n", node.Level, node.Name, node.Scope)
	}
	return nil
}
