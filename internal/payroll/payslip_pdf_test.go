package payroll_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"paymaster/internal/payroll"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Rupees Only"},
		{"7", "Seven Rupees Only"},
		{"19", "Nineteen Rupees Only"},
		{"45", "Forty Five Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"512", "Five Hundred Twelve Rupees Only"},
		{"1000", "One Thousand Rupees Only"},
		{"16500", "Sixteen Thousand Five Hundred Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"2534061", "Twenty Five Lakh Thirty Four Thousand Sixty One Rupees Only"},
		{"10000000", "One Crore Rupees Only"},
		{"12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
		{"14500.75", "Fourteen Thousand Five Hundred Rupees and Seventy Five Paise Only"},
		{"99.05", "Ninety Nine Rupees and Five Paise Only"},
	}
	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			got := payroll.AmountInWords(decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSlipRendererProducesPDF(t *testing.T) {
	renderer := payroll.NewSlipRenderer()

	pdf, err := renderer.Render(payroll.SlipData{
		CompanyName:  "Acme Tech Pvt Ltd",
		EmployeeName: "Meera (QA) Kulkarni",
		EmpCode:      "EMP-AT123456",
		Month:        time.March,
		Year:         2026,

		BasicSalary:     decimal.NewFromInt(15000),
		HRA:             decimal.NewFromInt(1500),
		GrossSalary:     decimal.NewFromInt(16500),
		PFEmployee:      decimal.NewFromInt(1800),
		ProfessionalTax: decimal.NewFromInt(200),
		TotalDeductions: decimal.NewFromInt(2000),
		NetSalary:       decimal.NewFromInt(14500),
	})
	assert.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")), "output must start with the PDF magic")
	assert.True(t, bytes.HasSuffix(pdf, []byte("%%EOF")))
	// Parentheses in names must be escaped inside the text stream.
	assert.Contains(t, string(pdf), `Meera \(QA\) Kulkarni`)
	assert.Contains(t, string(pdf), "Fourteen Thousand Five Hundred Rupees Only")
}

func TestSlipRendererDeterministic(t *testing.T) {
	renderer := payroll.NewSlipRenderer()
	data := payroll.SlipData{
		CompanyName:  "Acme Tech Pvt Ltd",
		EmployeeName: "Arjun Shah",
		EmpCode:      "EMP-AT654321",
		Month:        time.February,
		Year:         2026,
		BasicSalary:  decimal.NewFromInt(20000),
		GrossSalary:  decimal.NewFromInt(20000),
		NetSalary:    decimal.NewFromInt(19700),
	}

	first, err := renderer.Render(data)
	assert.NoError(t, err)
	second, err := renderer.Render(data)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
