package excel

import (
	"bytes"
	"regexp"

	"github.com/xuri/excelize/v2"
)

// Zendesk-themed fill colors carried over from the legacy report so that
// existing consumers see identical styling.
const (
	instanceHeaderColor = "03363D"
	brandTitleColor     = "E6F0F2"
	aggregateTitleColor = "D9EEF2"
	userTableStyle      = "TableStyleLight1"
	defaultSheetName    = "Sheet1"
	headerRowHeight     = 18.0
	userColumnPadding   = 3
	userColumnMinWidth  = 12
	tallyColumnPadding  = 4
	tallyRoleMinWidth   = 18
	tallyCountMinWidth  = 14
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// userColumns is the fixed header of every per-user block.
var userColumns = []string{
	"Name",
	"Mail",
	"Role",
	"Created at",
	"Details",
	"Notes",
	"Tags",
	"Last login in days",
}

// Workbook builds the styled report workbook sheet by sheet. It is not
// safe for concurrent use; the layout phase is strictly sequential.
type Workbook struct {
	file   *excelize.File
	styles styleSet
}

type styleSet struct {
	instanceTitle    int // bold white on dark teal, centered
	plainHeader      int // header row of an empty block, no border
	dataLeft         int // data cell, left/top, wrapped, thin border
	dataRight        int // numeric data cell, right/top, wrapped, thin border
	brandTitle       int // merged brand title, light fill, thin border
	aggregateTitle   int // merged aggregate title, lighter fill, thin border
	tallyRoleHeader  int // "Role" header, bold left, thin border
	tallyCountHeader int // "Team members" header, bold right, thin border
	tallyRole        int // role cell, left/top, wrapped, thin border
	tallyCount       int // count cell, right/top, thin border
	placeholderLeft  int // "No roles" cell, left/middle, thin border
	placeholderRight int // placeholder count cell, right/middle, thin border
	borderOnly       int // blank separator cell inside a bordered block
	boldLabel        int // scalar label ("Used seats")
	scalarValue      int // scalar value cell, left/middle
}

// NewWorkbook creates an empty workbook with all report styles registered.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{file: f}
	if err := w.buildStyles(); err != nil {
		return nil, err
	}
	return w, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func (w *Workbook) buildStyles() error {
	var err error
	newStyle := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = w.file.NewStyle(s)
		return id
	}

	w.styles.instanceTitle = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      solidFill(instanceHeaderColor),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "middle"},
	})
	w.styles.plainHeader = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "middle", WrapText: true},
	})
	w.styles.dataLeft = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	w.styles.dataRight = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	w.styles.brandTitle = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      solidFill(brandTitleColor),
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "middle"},
		Border:    thinBorder(),
	})
	w.styles.aggregateTitle = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      solidFill(aggregateTitleColor),
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "middle"},
		Border:    thinBorder(),
	})
	w.styles.tallyRoleHeader = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "middle"},
		Border:    thinBorder(),
	})
	w.styles.tallyCountHeader = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "middle"},
		Border:    thinBorder(),
	})
	w.styles.tallyRole = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    thinBorder(),
	})
	w.styles.tallyCount = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:    thinBorder(),
	})
	w.styles.placeholderLeft = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "middle"},
		Border:    thinBorder(),
	})
	w.styles.placeholderRight = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "middle"},
		Border:    thinBorder(),
	})
	w.styles.borderOnly = newStyle(&excelize.Style{Border: thinBorder()})
	w.styles.boldLabel = newStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	w.styles.scalarValue = newStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "middle"},
	})
	return err
}

// Save removes the default sheet and writes the workbook to path.
func (w *Workbook) Save(path string) error {
	if err := w.dropDefaultSheet(); err != nil {
		return err
	}
	return w.file.SaveAs(path)
}

// Bytes removes the default sheet and serializes the workbook in memory.
func (w *Workbook) Bytes() (*bytes.Buffer, error) {
	if err := w.dropDefaultSheet(); err != nil {
		return nil, err
	}
	return w.file.WriteToBuffer()
}

func (w *Workbook) dropDefaultSheet() error {
	idx, err := w.file.GetSheetIndex(defaultSheetName)
	if err != nil || idx < 0 {
		return err
	}
	return w.file.DeleteSheet(defaultSheetName)
}

// cell converts 1-based column/row coordinates to an A1 reference.
// Coordinates are always positive here, so the conversion cannot fail.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// safeName strips characters the sink does not accept in sheet and table
// names.
func safeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
