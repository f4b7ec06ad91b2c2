package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	dbmodels "fin-tools-backend/models/db"
)

// GenerateApplicationSummary renders the one-page application summary the
// admin console attaches to a financing decision.
func GenerateApplicationSummary(rec dbmodels.Application, contract *dbmodels.Contract, invoices []dbmodels.Invoice) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApplicationSummary panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Financing application summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Application ID", rec.ID)
	if rec.Organization != nil {
		writeRow(pdf, "Organization", rec.Organization.Name)
	}
	writeRow(pdf, "Status", rec.Status.ToHuman())
	writeRow(pdf, "Financing type", string(rec.FinancingType))
	writeRow(pdf, "Financing structure", rec.FinancingStructure.ToHuman())
	writeRow(pdf, "Created", rec.CreatedAt.Format("02.01.2006"))

	if contract != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "Contract", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		writeRow(pdf, "Counterparty", contract.CounterpartyName)
		writeRow(pdf, "Registration no", contract.CounterpartyReg)
		writeRow(pdf, "Value", fmt.Sprintf("%.2f %s", contract.ContractValue, contract.Currency))
		if contract.StartDate != nil && contract.EndDate != nil {
			writeRow(pdf, "Term", fmt.Sprintf("%s - %s",
				contract.StartDate.Format("02.01.2006"), contract.EndDate.Format("02.01.2006")))
		}
	}

	if len(invoices) != 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, "Invoices", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		total := 0.0
		for _, invoice := range invoices {
			writeRow(pdf, invoice.InvoiceNumber,
				fmt.Sprintf("%.2f %s, debtor %s, status %s", invoice.Amount, invoice.Currency, invoice.DebtorName, invoice.ReviewStatus))
			total += invoice.Amount
		}
		pdf.SetFont("Helvetica", "B", 11)
		writeRow(pdf, "Total", fmt.Sprintf("%.2f", total))
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, label, value string) {
	pdf.CellFormat(60, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}
