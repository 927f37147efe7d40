package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arborhq/arbor/internal/template"
)

var templateImportName string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage tree templates",
}

var templateImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a tree template from YAML or JSON",
	Long: `Validate and store a skeleton template.

The file must describe levels 0-4 only, with exactly one root and every
parent listed before its children. Rejected templates are not stored; trees
built from a missing or invalid template fall back to the built-in standard
one.

Examples:
  arbor template import team.yaml
  arbor template import --name minimal minimal.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateImport,
}

func init() {
	templateImportCmd.Flags().StringVar(&templateImportName, "name", "", "Template name (defaults to the file name)")
	templateCmd.AddCommand(templateImportCmd)
}

func runTemplateImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	nodes, err := template.LoadFile(path)
	if err != nil {
		return fmt.Errorf("template rejected: %w", err)
	}

	name := templateImportName
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	raw, err := template.Encode(nodes)
	if err != nil {
		return err
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.store.SaveTemplate(name, raw); err != nil {
		return err
	}

	fmt.Printf("Template %q stored (%d nodes). Build a tree with it via the tree config's default_template.\n", name, len(nodes))
	return nil
}
