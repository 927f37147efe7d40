package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var cleanupYes bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <task-id>",
	Short: "Delete a task's entire tree",
	Long: `Hard-delete every node scoped to a task.

This removes the task's skeleton and deep branches along with their
conversation logs. Other tasks' trees are untouched. Irreversible.`,
	Args: cobra.ExactArgs(1),
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVarP(&cleanupYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	if !cleanupYes {
		fmt.Printf("Delete the whole tree for task %q? [y/N] ", taskID)
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	deleted, err := rt.engine.DeleteTreeForTask(taskID)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d node(s) for task %s.\n", deleted, taskID)
	return nil
}
