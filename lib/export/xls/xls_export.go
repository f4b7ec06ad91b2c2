package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.Application) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Application ID", "Organization", "Financing type", "Financing structure", "Status", "Last completed step", "Created", "Updated"}

func (i impl) ExportApplicationList(list []dbmodels.Application) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		row, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Applications")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.Application, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Application ID"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.ID); err != nil {
			return row, err
		}

		// "Organization"
		col++
		if item.Organization != nil {
			if err := writeColumn(f, sheet, col, row, item.Organization.Name); err != nil {
				return row, err
			}
		}

		// "Financing type"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.FinancingType)); err != nil {
			return row, err
		}

		// "Financing structure"
		col++
		if err := writeColumn(f, sheet, col, row, item.FinancingStructure.ToHuman()); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}

		// "Last completed step"
		col++
		if err := writeColumn(f, sheet, col, row, item.LastCompletedStep); err != nil {
			return row, err
		}

		// "Created"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}

		// "Updated"
		col++
		if err := writeColumn(f, sheet, col, row, item.UpdatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}
	}
	return row, nil
}
