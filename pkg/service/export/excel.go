package export

import (
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

const (
	// ContentType is the MIME type of the workbook
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// DateHeader is the header of the first column
	DateHeader = "Date"

	defaultSheet = "Sheet1"
	headerColor  = "663399"
)

// ExcelExporter writes a series set as a single-sheet workbook: one row per date, one column per series
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheetName: "Confirmed"}
}

// SheetName returns the name of the data sheet
func (e *ExcelExporter) SheetName() string {
	return e.sheetName
}

// Export writes the set to w in xlsx format
func (e *ExcelExporter) Export(w io.Writer, set *model.SeriesSet) error {
	if set == nil {
		return goerr.New("series set is nil", goerr.T(model.ErrTagInvalidRequest))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, e.sheetName); err != nil {
		return goerr.Wrap(err, "failed to rename sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{headerColor},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create header style")
	}

	headers := append([]string{DateHeader}, set.Names()...)
	for col, header := range headers {
		cell, err := e.setCell(f, col+1, 1, header)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(e.sheetName, cell, cell, headerStyle); err != nil {
			return goerr.Wrap(err, "failed to style header", goerr.V("cell", cell))
		}
	}

	for i, opt := range set.Dates {
		row := i + 2
		if _, err := e.setCell(f, 1, row, opt.Label); err != nil {
			return err
		}

		for j, s := range set.Series {
			if i >= len(s.Values) {
				continue
			}
			if _, err := e.setCell(f, j+2, row, s.Values[i]); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(e.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return goerr.Wrap(err, "failed to freeze header")
	}

	if err := f.Write(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}

// setCell writes value at the 1-based column and row and returns the cell name
func (e *ExcelExporter) setCell(f *excelize.File, col, row int, value any) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", goerr.Wrap(err, "cell is out of the sheet",
			goerr.V("column", col),
			goerr.V("row", row))
	}
	if err := f.SetCellValue(e.sheetName, cell, value); err != nil {
		return "", goerr.Wrap(err, "failed to write cell", goerr.V("cell", cell))
	}
	return cell, nil
}
