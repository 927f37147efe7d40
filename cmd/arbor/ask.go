package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arborhq/arbor/pkg/models"
)

var (
	askContext string
	askTaskID  string
	askMaxHops int
)

var askCmd = &cobra.Command{
	Use:   "ask <node-id> <question>",
	Short: "Ask a question from a node and escalate it",
	Long: `Start an escalation chain for a question asked at a node.

The question climbs the tree one hop at a time. At every hop the current node
checks its own history, recorded decisions, and sibling conversations; the
first source clearing its threshold answers the chain and the answer is
written back down through every level it passed. If the chain reaches the
root unanswered, the quick local search sweeps decision memory, design pages,
support documents, other nodes' conversations, and plan configuration before
the question is surfaced for a human.

Examples:
  arbor ask 4f3a... "which retry policy applies to webhooks"
  arbor ask 4f3a... --context "payment flow" "which gateway do we use"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askContext, "context", "", "Supporting context for the question")
	askCmd.Flags().StringVar(&askTaskID, "task", "", "Task scope for the quick local search")
	askCmd.Flags().IntVar(&askMaxHops, "max-hops", 10, "Escalation hop limit")
	rootCmd.AddCommand(answerCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	nodeID := args[0]
	question := strings.Join(args[1:], " ")

	chain, err := rt.engine.StartEscalationChain(nodeID, question, askContext)
	if err != nil {
		return err
	}
	fmt.Printf("Chain %s started.\n", chain.ID)

	for hop := 0; hop < askMaxHops; hop++ {
		chain, err = rt.engine.EscalateQuestion(chain.ID)
		if err != nil {
			return err
		}
		if chain.Status == models.ChainStatusAnswered {
			fmt.Printf("%s Answered at level %d:\n  %s\n", color.GreenString("✓"), chain.ResolvedAtLevel, chain.Answer)
			return nil
		}
		if chain.ReachedTop {
			break
		}
	}

	if !chain.ReachedTop {
		fmt.Printf("Chain still escalating after %d hops (current node %s).\n", askMaxHops, chain.CurrentNodeID)
		return nil
	}

	// Nobody on the tree could answer; sweep the cheap sources before
	// bothering a human.
	result, err := rt.engine.QuickLocalSearch(chain.ID, askTaskID)
	if err != nil {
		return err
	}
	if result.Found {
		if err := rt.engine.ResolveEscalationChain(chain.ID, result.Answer, models.RootLevel, result.Source); err != nil {
			return err
		}
		fmt.Printf("%s Found via quick local search (%s):\n  %s\n", color.GreenString("✓"), result.Source, result.Answer)
		return nil
	}

	fmt.Printf("%s No local answer. The question needs a human:\n  %s\n", color.YellowString("⚠"), question)
	fmt.Printf("Answer it with: arbor answer %s <answer text>\n", chain.ID)
	return nil
}

var answerCmd = &cobra.Command{
	Use:   "answer <chain-id> <answer>",
	Short: "Answer an escalated question as the root",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		answer := strings.Join(args[1:], " ")
		if err := rt.engine.ResolveEscalationChain(args[0], answer, models.RootLevel, "human"); err != nil {
			return err
		}
		fmt.Println("Answer recorded and propagated back down the chain.")
		return nil
	},
}
