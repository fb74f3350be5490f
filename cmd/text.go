package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janetyc/citecheck/internal/pdftext"
)

var outputFile string

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text [pdf-file]",
	Short: "Convert a PDF to page-tagged plain text",
	Long: `Convert a PDF document to plain text with a "--- Page N ---" marker
before each page. The markers let the analyze command locate the
reference section reliably, so this output is the preferred input for
analysis.

Examples:
  citecheck text paper.pdf
  citecheck text --output paper.txt paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
}

func runText(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if !quiet {
		fmt.Fprintf(os.Stderr, "Converting %s to text...\n", filename)
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}

	text, err := pdftext.ExtractPages(filename)
	if err != nil {
		return fmt.Errorf("failed to convert PDF: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Converted text written to %s\n", outputFile)
		}
		return nil
	}

	fmt.Print(text)
	return nil
}
