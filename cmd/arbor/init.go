package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arborhq/arbor/internal/tree"
)

var initSkipCatalog bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the arbor store and default tree",
	Long: `Initialize arbor for use.

This command sets up everything needed to coordinate agents:
  - Creates the SQLite store (XDG data path unless configured otherwise)
  - Seeds the niche-agent catalog with the starter ladder for every area
  - Builds the default tree: the level 0-4 skeleton plus eager deep branches

Idempotent: an existing tree and a customized catalog are left untouched.

Examples:
  arbor init                 # Set up store, catalog, and default tree
  arbor init --skip-catalog  # Set up without seeding the niche catalog`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initSkipCatalog, "skip-catalog", false, "Skip seeding the niche-agent catalog")
}

func runInit(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	printStatus("✓", fmt.Sprintf("Store ready at %s", rt.store.Path()), color.FgGreen)

	if !initSkipCatalog {
		seeded, err := rt.engine.SeedNicheCatalog(tree.DefaultNicheCatalog())
		if err != nil {
			printStatus("✗", "Niche catalog seeding failed", color.FgRed)
			return err
		}
		if seeded > 0 {
			printStatus("✓", fmt.Sprintf("Seeded niche catalog (%d definitions)", seeded), color.FgGreen)
		} else {
			printStatus("✓", "Niche catalog already populated", color.FgGreen)
		}
	}

	if err := rt.engine.EnsureDefaultTree(); err != nil {
		printStatus("✗", "Default tree construction failed", color.FgRed)
		return err
	}

	count, err := rt.store.CountNodes()
	if err != nil {
		return fmt.Errorf("count nodes: %w", err)
	}
	printStatus("✓", fmt.Sprintf("Tree ready (%d nodes)", count), color.FgGreen)

	fmt.Printf("\n%s Arbor initialization complete!\n", color.GreenString("✓"))
	return nil
}

func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
