package payroll

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"paymaster/internal/shared/money"
)

// SlipData is everything the renderer needs. It is assembled from the
// payroll snapshot so that a slip can be reproduced at any time.
type SlipData struct {
	CompanyName  string
	EmployeeName string
	EmpCode      string
	Month        time.Month
	Year         int

	BasicSalary      decimal.Decimal
	HRA              decimal.Decimal
	Conveyance       decimal.Decimal
	Medical          decimal.Decimal
	SpecialAllowance decimal.Decimal
	BonusAmount      decimal.Decimal
	GrossSalary      decimal.Decimal

	PFEmployee      decimal.Decimal
	ESIEmployee     decimal.Decimal
	ProfessionalTax decimal.Decimal
	IncomeTax       decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

//go:generate mockgen -source=payslip_pdf.go -destination=mock/payslip_pdf_mock.go -package=mock
type SlipRenderer interface {
	Render(data SlipData) ([]byte, error)
}

type slipRenderer struct{}

func NewSlipRenderer() SlipRenderer {
	return &slipRenderer{}
}

func (slipRenderer) Render(data SlipData) ([]byte, error) {
	lines := []string{
		data.CompanyName,
		fmt.Sprintf("Salary Slip - %s %d", data.Month, data.Year),
		"",
		fmt.Sprintf("Employee: %s (%s)", data.EmployeeName, data.EmpCode),
		"",
		"Earnings",
		slipLine("Basic Salary", data.BasicSalary),
		slipLine("HRA", data.HRA),
		slipLine("Conveyance", data.Conveyance),
		slipLine("Medical Allowance", data.Medical),
		slipLine("Special Allowance", data.SpecialAllowance),
		slipLine("Bonus", data.BonusAmount),
		slipLine("Gross Salary", data.GrossSalary),
		"",
		"Deductions",
		slipLine("Provident Fund", data.PFEmployee),
		slipLine("ESI", data.ESIEmployee),
		slipLine("Professional Tax", data.ProfessionalTax),
		slipLine("Income Tax", data.IncomeTax),
		slipLine("Total Deductions", data.TotalDeductions),
		"",
		slipLine("Net Pay", data.NetSalary),
		fmt.Sprintf("Amount in Words: %s", AmountInWords(data.NetSalary)),
	}
	return buildPayslipPDF(lines)
}

func slipLine(label string, amount decimal.Decimal) string {
	return fmt.Sprintf("%-22s %s", label, money.FormatINR(amount))
}

// buildPayslipPDF emits a minimal single-page PDF 1.4 document. Helvetica
// only, one text block, no compression.
func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Salary Slip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}

var wordsOnes = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var wordsTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells an amount in Indian numbering (Thousand, Lakh,
// Crore). Paise are included only when non-zero.
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsNegative() {
		amount = amount.Neg()
	}

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var rupeeWords string
	if rupees == 0 {
		rupeeWords = "Zero"
	} else {
		rupeeWords = integerInWords(rupees)
	}

	if paise > 0 {
		return fmt.Sprintf("%s Rupees and %s Paise Only", rupeeWords, integerInWords(paise))
	}
	return fmt.Sprintf("%s Rupees Only", rupeeWords)
}

func integerInWords(n int64) string {
	var parts []string

	appendPart := func(value int64, unit string) {
		if value > 0 {
			words := belowThousandInWords(value)
			if unit != "" {
				words += " " + unit
			}
			parts = append(parts, words)
		}
	}

	appendPart(n/10000000, "Crore")
	n %= 10000000
	appendPart(n/100000, "Lakh")
	n %= 100000
	appendPart(n/1000, "Thousand")
	n %= 1000
	appendPart(n, "")

	return strings.Join(parts, " ")
}

func belowThousandInWords(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, wordsOnes[n/100]+" Hundred")
		n %= 100
	}
	if n >= 20 {
		word := wordsTens[n/10]
		if n%10 > 0 {
			word += " " + wordsOnes[n%10]
		}
		parts = append(parts, word)
	} else if n > 0 {
		parts = append(parts, wordsOnes[n])
	}
	return strings.Join(parts, " ")
}
