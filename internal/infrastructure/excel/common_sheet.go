package excel

import (
	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
)

// AddCommonUsersSheet renders the shared-license sheet: the primary-side
// shared users as a single full-width block, followed by the two seat
// accounting scalars.
func (w *Workbook) AddCommonUsersSheet(title string, shared []entity.UserWithRoleName, doubleUsedSeats, usedSeats int) error {
	if _, err := w.file.NewSheet(title); err != nil {
		return err
	}
	if err := w.file.SetRowHeight(title, 2, headerRowHeight); err != nil {
		return err
	}

	const startCol = 1
	if err := w.writeInstanceTitle(title, startCol, len(userColumns), "Licenses in both VI and VDE"); err != nil {
		return err
	}
	if err := w.setUserColumnWidths(title, startCol); err != nil {
		return err
	}
	if err := w.writeUserBlock(title, startCol, "TableCommon_"+safeName(title), shared); err != nil {
		return err
	}

	labelRow := 3
	if len(shared) > 0 {
		labelRow = 2 + len(shared) + 1
	}
	if err := w.writeScalar(title, labelRow, "Double used seats", doubleUsedSeats); err != nil {
		return err
	}
	return w.writeScalar(title, labelRow+1, "Used seats", usedSeats)
}

func (w *Workbook) writeScalar(sheet string, row int, label string, value int) error {
	if err := w.file.SetCellValue(sheet, cell(1, row), label); err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, cell(1, row), cell(1, row), w.styles.boldLabel); err != nil {
		return err
	}
	if err := w.file.SetCellValue(sheet, cell(2, row), value); err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, cell(2, row), cell(2, row), w.styles.scalarValue)
}
