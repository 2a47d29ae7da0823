package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frontendschool-official/interview-engine/internal/problem"
	"github.com/frontendschool-official/interview-engine/internal/prompt"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and render prompt templates",
}

var templatesVersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List available template pack versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := prompt.NewStore()
		versions, err := store.ListVersions()
		if err != nil {
			return err
		}
		latest, err := store.Latest()
		if err != nil {
			return err
		}
		for _, v := range versions {
			marker := ""
			if v == latest {
				marker = "  (latest)"
			}
			fmt.Printf("%s%s\n", v, marker)
		}
		return nil
	},
}

var templatesRenderCmd = &cobra.Command{
	Use:   "render <kind>",
	Short: "Render the template for a problem kind with supplied variables",
	Long:  "Renders the prompt template for a kind (dsa, theory, machine-coding, system-design, mock-interview, evaluation). Variables are passed as --var name=value; unbound placeholders render empty unless --strict is set.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := problem.Kind(args[0])
		version, _ := cmd.Flags().GetString("version")
		strict, _ := cmd.Flags().GetBool("strict")
		varFlags, _ := cmd.Flags().GetStringArray("var")

		vars := make(prompt.Variables, len(varFlags))
		for _, kv := range varFlags {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --var %q, expected name=value", kv)
			}
			vars[name] = value
		}

		selector := prompt.NewSelector(prompt.NewStore(), "")
		resolved, tmpl, err := selector.Select(kind, version)
		if err != nil {
			return err
		}

		mode := prompt.Lenient
		if strict {
			mode = prompt.Strict
		}
		rendered, err := prompt.Bind(tmpl.Body, vars, mode)
		if err != nil {
			return err
		}

		fmt.Printf("# template: %s@%s\n\n", tmpl.Name, resolved)
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	templatesRenderCmd.Flags().StringP("version", "v", "", "Template pack version (default: latest)")
	templatesRenderCmd.Flags().Bool("strict", false, "Fail on unbound placeholders")
	templatesRenderCmd.Flags().StringArray("var", nil, "Template variable as name=value (repeatable)")

	templatesCmd.AddCommand(templatesVersionsCmd)
	templatesCmd.AddCommand(templatesRenderCmd)
}
