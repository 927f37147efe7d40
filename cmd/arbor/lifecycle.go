package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <node-id> [result]",
	Short: "Mark a node's work completed",
	Long: `Mark a node Completed and record its result.

The node automatically resets to Idle after the configured delay so the
slot becomes reusable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		result := strings.Join(args[1:], " ")
		if err := rt.engine.CompleteNode(args[0], result); err != nil {
			return err
		}
		fmt.Println("Node completed.")
		return nil
	},
}

var failCmd = &cobra.Command{
	Use:   "fail <node-id> <error>",
	Short: "Mark a node's work failed",
	Long: `Mark a node Failed, bump its retry counter, and record the error.

Failed nodes stay visible longer than completed ones before resetting to
Idle, so observers have time to notice.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.engine.FailNode(args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Println("Node failed; retry counter bumped.")
		return nil
	},
}
