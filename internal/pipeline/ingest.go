package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/agrisight/agristat-cli/internal/fetcher"
	"github.com/agrisight/agristat-cli/internal/model"
)

// ReadTable loads a raw input table from a CSV or XLSX file, chosen by
// extension. The first row is always the header.
func ReadTable(path string) (*model.RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	}
	return readCSV(path)
}

func readCSV(path string) (*model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("ingest: csv has no header row")
	}

	return &model.RawTable{Header: records[0], Rows: records[1:]}, nil
}
