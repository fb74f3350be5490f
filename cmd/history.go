package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/janetyc/citecheck/internal/store"
)

var (
	historyLimit int
	historyRun   int64
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	Long: `The history command lists analysis runs recorded with "analyze --save",
newest first, and can show the stored references of a single run.

Examples:
  citecheck history
  citecheck history --limit 5
  citecheck history --run 3
  citecheck history -o json`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
	historyCmd.Flags().Int64Var(&historyRun, "run", 0, "show the references of one run")
	historyCmd.Flags().StringVar(&historyPath, "db", "", "history database path (default: $HOME/.citecheck.db)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.Open(resolveHistoryPath())
	if err != nil {
		return err
	}
	defer db.Close()

	if historyRun > 0 {
		return showRun(db, historyRun)
	}

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tDATE\tREFS\tRESOLVED")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
			run.ID, run.Source, run.CreatedAt.Format("2006-01-02 15:04"),
			run.ReferenceCount, run.ResolvedCount)
	}
	return w.Flush()
}

func showRun(db *store.DB, id int64) error {
	refs, err := db.RunReferences(id)
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(refs)
	}

	if len(refs) == 0 {
		fmt.Printf("No references stored for run %d.\n", id)
		return nil
	}
	for _, ref := range refs {
		fmt.Printf("[%d] %s\n", ref.OrderIndex+1, ref.Text)
		fmt.Printf("    style=%s (%.0f%%) %s", ref.Style, ref.Confidence*100, ref.Resolution)
		if ref.Identifier != "" {
			fmt.Printf(" %s=%s", ref.IdentifierKind, ref.Identifier)
		}
		fmt.Println()
	}
	return nil
}
