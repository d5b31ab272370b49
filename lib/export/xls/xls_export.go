package xlsexport

import (
	"bytes"

	formapimodels "template-approval-backend/models/api/form"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportFormList(sheetName string, list []formapimodels.FormView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var formHeaders = []string{"Serial No", "From", "Department", "From Card No", "For", "Purpose", "Unit", "Status", "Modification", "Submitted On"}

func (i impl) ExportFormList(sheetName string, list []formapimodels.FormView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close the xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, formHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write the xlsx header")
	}
	if len(list) != 0 {
		row, err = writeFormData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write the xlsx data table")
		}
	}
	f.SetSheetName(sheet, sheetName)
	return f.WriteToBuffer()
}

func writeFormData(f *excelize.File, sheet string, list []formapimodels.FormView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(formHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Serial No"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.SerialNumber); err != nil {
			return row, err
		}

		// "From"
		col++
		if err := writeColumn(f, sheet, col, row, item.From); err != nil {
			return row, err
		}

		// "Department"
		col++
		if err := writeColumn(f, sheet, col, row, item.Dept); err != nil {
			return row, err
		}

		// "From Card No"
		col++
		if err := writeColumn(f, sheet, col, row, item.FromCardNo); err != nil {
			return row, err
		}

		// "For"
		col++
		if err := writeColumn(f, sheet, col, row, item.For); err != nil {
			return row, err
		}

		// "Purpose"
		col++
		if err := writeColumn(f, sheet, col, row, item.Purpose); err != nil {
			return row, err
		}

		// "Unit"
		col++
		if err := writeColumn(f, sheet, col, row, item.Unit); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Modification"
		col++
		if err := writeColumn(f, sheet, col, row, item.Modification); err != nil {
			return row, err
		}

		// "Submitted On"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return row, err
		}
	}
	return row, nil
}
