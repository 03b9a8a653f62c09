package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
	"github.com/ojuto/zendesk-user-reports/pkg/helpers"
)

// AddUserSheet renders one cohort sheet: the primary instance block on the
// left, the secondary instance block on the right, separated by two empty
// columns.
func (w *Workbook) AddUserSheet(title string, primary, secondary []entity.UserWithRoleName) error {
	if _, err := w.file.NewSheet(title); err != nil {
		return err
	}
	if err := w.file.SetRowHeight(title, 2, headerRowHeight); err != nil {
		return err
	}

	const gap = 2
	offsetPrimary := 1
	offsetSecondary := offsetPrimary + len(userColumns) + gap

	if err := w.writeInstanceTitle(title, offsetPrimary, len(userColumns), "VI"); err != nil {
		return err
	}
	if err := w.writeInstanceTitle(title, offsetSecondary, len(userColumns), "VDE"); err != nil {
		return err
	}
	if err := w.setUserColumnWidths(title, offsetPrimary); err != nil {
		return err
	}
	if err := w.setUserColumnWidths(title, offsetSecondary); err != nil {
		return err
	}

	safe := safeName(title)
	if err := w.writeUserBlock(title, offsetPrimary, "TableVI_"+safe, primary); err != nil {
		return err
	}
	return w.writeUserBlock(title, offsetSecondary, "TableVDE_"+safe, secondary)
}

// writeInstanceTitle merges the block's first row into a single styled
// title cell.
func (w *Workbook) writeInstanceTitle(sheet string, startCol, span int, label string) error {
	from, to := cell(startCol, 1), cell(startCol+span-1, 1)
	if err := w.file.MergeCell(sheet, from, to); err != nil {
		return err
	}
	if err := w.file.SetCellValue(sheet, from, label); err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, from, to, w.styles.instanceTitle)
}

func (w *Workbook) setUserColumnWidths(sheet string, startCol int) error {
	for i, header := range userColumns {
		name, err := excelize.ColumnNumberToName(startCol + i)
		if err != nil {
			return err
		}
		width := max(len(header)+userColumnPadding, userColumnMinWidth)
		if err := w.file.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

// writeUserBlock writes the header row and, when the block has data, one
// row per user wrapped in an Excel table. Empty blocks keep a plain bold
// header so the sheet stays readable without an empty table construct.
func (w *Workbook) writeUserBlock(sheet string, startCol int, tableName string, users []entity.UserWithRoleName) error {
	for i, name := range userColumns {
		if err := w.file.SetCellValue(sheet, cell(startCol+i, 2), name); err != nil {
			return err
		}
	}

	if len(users) == 0 {
		return w.file.SetCellStyle(sheet, cell(startCol, 2), cell(startCol+len(userColumns)-1, 2), w.styles.plainHeader)
	}

	for r, u := range users {
		createdAt := u.CreatedAt
		email := ""
		if u.Email != nil {
			email = *u.Email
		}
		for i, v := range []interface{}{
			u.Name,
			email,
			u.CustomAgentRoleName,
			helpers.FormatDate(&createdAt),
			u.Details,
			u.Notes,
			strings.Join(u.Tags, ", "),
			helpers.DaysSince(u.LastLoginAt),
		} {
			if err := w.file.SetCellValue(sheet, cell(startCol+i, 3+r), v); err != nil {
				return err
			}
		}
	}

	endRow := 2 + len(users)
	table := &excelize.Table{
		Range:     cell(startCol, 2) + ":" + cell(startCol+len(userColumns)-1, endRow),
		Name:      tableName,
		StyleName: userTableStyle,
	}
	if err := w.file.AddTable(sheet, table); err != nil {
		return err
	}

	// Data cells get wrap and thin borders; the trailing numeric column is
	// right-aligned.
	lastCol := startCol + len(userColumns) - 1
	if err := w.file.SetCellStyle(sheet, cell(startCol, 3), cell(lastCol-1, endRow), w.styles.dataLeft); err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, cell(lastCol, 3), cell(lastCol, endRow), w.styles.dataRight)
}
