package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/janetyc/citecheck/internal/analyzer"
	"github.com/janetyc/citecheck/internal/pdftext"
	"github.com/janetyc/citecheck/internal/ratelimit"
	"github.com/janetyc/citecheck/internal/resolver"
	"github.com/janetyc/citecheck/internal/store"
)

var (
	validateLinks bool
	withSentences bool
	workers       int
	checkTimeout  time.Duration
	saveRun       bool
	historyPath   string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze the citations of a paper",
	Long: `Analyze extracts the reference section from a paper, segments it into
individual references, classifies each one against known citation styles
(APA, MLA, Chicago, IEEE, ACM), extracts components like authors, year,
and pages, and scans the body for in-text citation markers.

The input is a text file with "--- Page N ---" markers (the output of
the "text" command) or a PDF, which is converted first. With --validate,
DOIs and URLs found in references are checked against the network under
per-domain rate budgets.

Examples:
  citecheck analyze paper.txt
  citecheck analyze --validate paper.pdf
  citecheck analyze --validate --workers 10 -o json paper.txt
  citecheck analyze --save paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&validateLinks, "validate", false, "check DOIs and URLs against the network")
	analyzeCmd.Flags().BoolVar(&withSentences, "sentences", false, "include body sentences that carry citations")
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "concurrent link checks (default from config)")
	analyzeCmd.Flags().DurationVar(&checkTimeout, "timeout", 0, "timeout per link check (default from config)")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "record this run in the history database")
	analyzeCmd.Flags().StringVar(&historyPath, "db", "", "history database path (default: $HOME/.citecheck.db)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filename := args[0]

	text, err := loadDocument(filename)
	if err != nil {
		return err
	}

	if workers <= 0 {
		workers = viper.GetInt("validate.workers")
	}
	if checkTimeout <= 0 {
		checkTimeout = time.Duration(viper.GetInt("validate.timeout_seconds")) * time.Second
	}

	var validator *analyzer.Validator
	if validateLinks {
		if !quiet {
			fmt.Fprintln(os.Stderr, "Validating reference links (rate limited per domain)...")
		}
		client := resolver.NewClient(resolver.WithTimeout(checkTimeout))
		validator = analyzer.NewValidator(client, ratelimit.New())
	}

	a := analyzer.New(nil, validator, analyzer.Options{
		Workers:      workers,
		CheckTimeout: checkTimeout,
		Sentences:    withSentences,
	})
	result := a.Analyze(cmd.Context(), text)

	if saveRun {
		if err := recordRun(filename, result); err != nil {
			return err
		}
	}

	switch output {
	case "json":
		return analyzer.WriteJSON(os.Stdout, result)
	case "report":
		return analyzer.WriteReport(os.Stdout, result)
	case "human":
		return analyzer.WriteSummary(os.Stdout, result)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}

// loadDocument reads the input, converting PDFs to page-tagged text.
func loadDocument(filename string) (string, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", filename)
	}

	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		text, err := pdftext.ExtractPages(filename)
		if err != nil {
			return "", fmt.Errorf("failed to convert PDF: %w", err)
		}
		return text, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func recordRun(filename string, result *analyzer.Result) error {
	db, err := store.Open(resolveHistoryPath())
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(filepath.Base(filename), result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Saved as run %d\n", id)
	}
	return nil
}

func resolveHistoryPath() string {
	if historyPath != "" {
		return historyPath
	}
	if p := viper.GetString("history.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".citecheck.db"
	}
	return filepath.Join(home, ".citecheck.db")
}
