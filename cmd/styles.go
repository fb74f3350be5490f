package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/janetyc/citecheck/pkg/styles"
)

var showPatterns bool

// stylesCmd represents the styles command
var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the citation styles the classifier knows",
	Long: `The styles command shows the citation styles the classifier can
detect, in scoring order, with the number of structure patterns and the
punctuation markers each style is fingerprinted by.

Examples:
  citecheck styles
  citecheck styles --patterns
  citecheck styles -o json`,
	RunE: runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)

	stylesCmd.Flags().BoolVar(&showPatterns, "patterns", false, "show the structure patterns per style")
}

func runStyles(cmd *cobra.Command, args []string) error {
	reg := styles.Default()

	if output == "json" {
		return outputStylesJSON(reg)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STYLE\tPATTERNS\tPUNCTUATION MARKERS")
	for _, name := range reg.Names() {
		rule, _ := reg.Rule(name)
		fmt.Fprintf(w, "%s\t%d\t%d\n", rule.Name, len(rule.StructurePatterns), len(rule.Punctuation))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showPatterns {
		for _, name := range reg.Names() {
			rule, _ := reg.Rule(name)
			fmt.Printf("\n%s:\n", rule.Name)
			for _, p := range rule.StructurePatterns {
				fmt.Printf("  %s\n", p)
			}
		}
	}
	return nil
}

func outputStylesJSON(reg *styles.Registry) error {
	rules := make([]styles.Rule, 0, len(reg.Names()))
	for _, name := range reg.Names() {
		rule, _ := reg.Rule(name)
		rules = append(rules, rule)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rules)
}
