package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/agrisight/agristat-cli/internal/pipeline"
)

var inspectInput string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Check a raw table against the expected schema",
	Long: `Reads a raw county table and reports how its columns map to the
canonical schema, without cleaning or classifying anything. Fails when a
required field matches no column, same as a real run would.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := pipeline.ReadTable(inspectInput)
		if err != nil {
			return eris.Wrap(err, "inspect: read input")
		}

		mapping, err := pipeline.MapHeader(table.Header)
		if err != nil {
			return eris.Wrap(err, "inspect: map header")
		}

		formatMapping(os.Stdout, table.Header, mapping)
		fmt.Printf("\nData rows: %d\n", len(table.Rows))
		if len(mapping.Unmapped) > 0 {
			fmt.Printf("Ignored columns: %v\n", mapping.Unmapped)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectInput, "input", "", "path to raw county table, CSV or XLSX (required)")
	_ = inspectCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(inspectCmd)
}

// formatMapping writes the field-to-column mapping to w.
func formatMapping(out io.Writer, header []string, m *pipeline.FieldMapping) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FIELD\tCOLUMN\tSOURCE LABEL")

	for _, field := range pipeline.Fields {
		idx, ok := m.Columns[field]
		if !ok {
			_, _ = fmt.Fprintf(w, "%s\t-\t(absent)\n", field)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", field, idx, header[idx])
	}
	_ = w.Flush()
}
