package table_parser

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a workbook converted to delimited text.
type Sheet struct {
	Name    string
	Content string
}

// ReadWorkbook converts every worksheet of an xlsx workbook to comma separated text, in workbook
// order. Cells keep their raw values so that number formats do not leak into the text.
func ReadWorkbook(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sheet %s", name)
		}

		content, err := rowsToCSV(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to convert sheet %s", name)
		}
		sheets = append(sheets, Sheet{Name: name, Content: content})
	}
	return sheets, nil
}

func rowsToCSV(rows [][]string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
