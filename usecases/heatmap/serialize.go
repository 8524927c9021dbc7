package heatmap

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/usecases/table_parser"
)

// WriteCSV writes the 168 slots under the recognized header, so that parsing the output rebuilds
// an equivalent grid.
func (g Grid) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table_parser.Columns); err != nil {
		return errors.Wrap(err, "error writing header")
	}

	var err error
	g.Each(func(day models.Weekday, hour int, cell models.Cell) {
		if err != nil {
			return
		}
		err = writer.Write([]string{
			strconv.Itoa(hour),
			string(day),
			strconv.FormatFloat(cell.Conversions, 'f', -1, 64),
			strconv.FormatFloat(cell.Cost, 'f', -1, 64),
		})
	})
	if err != nil {
		return errors.Wrap(err, "error writing grid row")
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "error flushing grid")
}
