package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborhq/arbor/pkg/models"
)

var statusTaskID string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current tree state",
	Long: `Display the state of the agent tree.

Shows:
  - Node counts per level and per status
  - Active and escalated nodes with their scopes
  - Telemetry totals (tokens, retries, escalations)`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusTaskID, "task", "", "Limit to one task's tree")
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	nodes, err := rt.store.ListAllNodes()
	if err != nil {
		return fmt.Errorf("list nodes: %w", err)
	}
	if statusTaskID != "" {
		filtered := nodes[:0]
		for _, n := range nodes {
			if n.TaskID == statusTaskID {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	if len(nodes) == 0 {
		fmt.Println("No tree. Run 'arbor init' to build the default tree.")
		return nil
	}

	byLevel := make(map[int]int)
	byStatus := make(map[models.NodeStatus]int)
	var tokens int64
	var retries, escalations int
	for _, n := range nodes {
		byLevel[n.Level]++
		byStatus[n.Status]++
		tokens += n.TokensConsumed
		retries += n.Retries
		escalations += n.Escalations
	}

	fmt.Printf("Tree: %d nodes\n", len(nodes))
	fmt.Println("  Levels:")
	for level := models.RootLevel; level <= models.WorkerLevel; level++ {
		if byLevel[level] > 0 {
			fmt.Printf("    L%d: %d\n", level, byLevel[level])
		}
	}

	fmt.Println("  Statuses:")
	for _, status := range []models.NodeStatus{
		models.NodeStatusIdle,
		models.NodeStatusWorking,
		models.NodeStatusWaitingChild,
		models.NodeStatusActive,
		models.NodeStatusCompleted,
		models.NodeStatusFailed,
		models.NodeStatusEscalated,
		models.NodeStatusPruned,
	} {
		if byStatus[status] > 0 {
			fmt.Printf("    %s: %d\n", status, byStatus[status])
		}
	}

	fmt.Printf("  Telemetry: %d tokens, %d retries, %d escalations\n", tokens, retries, escalations)

	// Surface the nodes someone reading status actually cares about.
	for _, n := range nodes {
		if n.Status == models.NodeStatusActive || n.Status == models.NodeStatusWorking ||
			n.Status == models.NodeStatusEscalated || n.Status == models.NodeStatusFailed {
			fmt.Printf("\n  %s [%s] L%d %s\n    scope: %s\n", n.Name, n.Status, n.Level, n.ID, n.Scope)
		}
	}

	return nil
}
