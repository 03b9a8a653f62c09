package excel

import (
	"github.com/xuri/excelize/v2"

	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
)

const tallyBlockSpan = 2

// AddBrandRoleCountSheet renders the per-brand role tallies of both
// instances side by side plus a cross-brand aggregate block for the
// primary instance between them.
func (w *Workbook) AddBrandRoleCountSheet(title string, primary, secondary []entity.BrandRoleTally, aggregate []entity.RoleCount) error {
	if _, err := w.file.NewSheet(title); err != nil {
		return err
	}

	const (
		offsetPrimary   = 1
		offsetAggregate = 4
		offsetSecondary = 7
	)

	if err := w.writeInstanceTitle(title, offsetPrimary, tallyBlockSpan, "VI"); err != nil {
		return err
	}
	if err := w.writeInstanceTitle(title, offsetSecondary, tallyBlockSpan, "VDE"); err != nil {
		return err
	}
	for _, startCol := range []int{offsetPrimary, offsetAggregate, offsetSecondary} {
		if err := w.setTallyColumnWidths(title, startCol); err != nil {
			return err
		}
	}

	if err := w.writeTallySide(title, offsetPrimary, primary); err != nil {
		return err
	}
	if err := w.writeTallySide(title, offsetSecondary, secondary); err != nil {
		return err
	}

	_, err := w.writeTallyBlock(title, 2, offsetAggregate, "All roles across all brands (VI)", aggregate, w.styles.aggregateTitle)
	return err
}

func (w *Workbook) setTallyColumnWidths(sheet string, startCol int) error {
	roleCol, err := excelize.ColumnNumberToName(startCol)
	if err != nil {
		return err
	}
	countCol, err := excelize.ColumnNumberToName(startCol + 1)
	if err != nil {
		return err
	}
	roleWidth := max(len("Role")+tallyColumnPadding, tallyRoleMinWidth)
	countWidth := max(len("Team members")+tallyColumnPadding, tallyCountMinWidth)
	if err := w.file.SetColWidth(sheet, roleCol, roleCol, float64(roleWidth)); err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, countCol, countCol, float64(countWidth))
}

// writeTallySide stacks one block per brand, each followed by a bordered
// blank separator row, matching the legacy layout.
func (w *Workbook) writeTallySide(sheet string, startCol int, tallies []entity.BrandRoleTally) error {
	row := 2
	for _, t := range tallies {
		var err error
		row, err = w.writeTallyBlock(sheet, row, startCol, t.BrandName, t.Rows, w.styles.brandTitle)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStyle(sheet, cell(startCol, row), cell(startCol+1, row), w.styles.borderOnly); err != nil {
			return err
		}
		row++
	}
	return nil
}

// writeTallyBlock writes one titled Role/Team members block starting at
// startRow and returns the row after its last data row. Empty tallies get
// a "No roles" placeholder row with count 0.
func (w *Workbook) writeTallyBlock(sheet string, startRow, startCol int, title string, rows []entity.RoleCount, titleStyle int) (int, error) {
	row := startRow

	from, to := cell(startCol, row), cell(startCol+1, row)
	if err := w.file.MergeCell(sheet, from, to); err != nil {
		return 0, err
	}
	if err := w.file.SetCellValue(sheet, from, title); err != nil {
		return 0, err
	}
	if err := w.file.SetCellStyle(sheet, from, to, titleStyle); err != nil {
		return 0, err
	}
	row++

	if err := w.file.SetCellValue(sheet, cell(startCol, row), "Role"); err != nil {
		return 0, err
	}
	if err := w.file.SetCellStyle(sheet, cell(startCol, row), cell(startCol, row), w.styles.tallyRoleHeader); err != nil {
		return 0, err
	}
	if err := w.file.SetCellValue(sheet, cell(startCol+1, row), "Team members"); err != nil {
		return 0, err
	}
	if err := w.file.SetCellStyle(sheet, cell(startCol+1, row), cell(startCol+1, row), w.styles.tallyCountHeader); err != nil {
		return 0, err
	}
	row++

	if len(rows) == 0 {
		if err := w.file.SetCellValue(sheet, cell(startCol, row), "No roles"); err != nil {
			return 0, err
		}
		if err := w.file.SetCellStyle(sheet, cell(startCol, row), cell(startCol, row), w.styles.placeholderLeft); err != nil {
			return 0, err
		}
		if err := w.file.SetCellValue(sheet, cell(startCol+1, row), 0); err != nil {
			return 0, err
		}
		if err := w.file.SetCellStyle(sheet, cell(startCol+1, row), cell(startCol+1, row), w.styles.placeholderRight); err != nil {
			return 0, err
		}
		row++
		return row, nil
	}

	for _, rc := range rows {
		if err := w.file.SetCellValue(sheet, cell(startCol, row), rc.Role); err != nil {
			return 0, err
		}
		if err := w.file.SetCellStyle(sheet, cell(startCol, row), cell(startCol, row), w.styles.tallyRole); err != nil {
			return 0, err
		}
		if err := w.file.SetCellValue(sheet, cell(startCol+1, row), rc.Count); err != nil {
			return 0, err
		}
		if err := w.file.SetCellStyle(sheet, cell(startCol+1, row), cell(startCol+1, row), w.styles.tallyCount); err != nil {
			return 0, err
		}
		row++
	}
	return row, nil
}
