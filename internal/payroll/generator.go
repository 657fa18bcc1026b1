package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paymaster/internal/compensation"
	"paymaster/internal/events"
	"paymaster/internal/messaging/kafka"
	"paymaster/internal/payrollconfig"
	"paymaster/internal/shared/contextutil"
	"paymaster/internal/shared/mailer"
	"paymaster/internal/shared/money"
)

// RunSummary reports one generation pass. A failed employee never fails
// the run.
type RunSummary struct {
	Month     time.Month
	Year      int
	Generated int
	Skipped   int
	Failed    int
}

// Generator produces one immutable payroll per active employee per period.
// Safe to run repeatedly within the same month.
type Generator struct {
	db         *gorm.DB
	repo       Repository
	configRepo payrollconfig.Repository
	outbox     kafka.OutboxRepository
	mail       mailer.Sender
	renderer   SlipRenderer
	logger     *zap.Logger

	// now is swappable so tests can pin the period.
	now func() time.Time
}

func NewGenerator(
	db *gorm.DB,
	repo Repository,
	configRepo payrollconfig.Repository,
	outbox kafka.OutboxRepository,
	mail mailer.Sender,
	renderer SlipRenderer,
	logger ...*zap.Logger,
) *Generator {
	l := zap.L().Named("payroll.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.generator")
	}
	return &Generator{
		db:         db,
		repo:       repo,
		configRepo: configRepo,
		outbox:     outbox,
		mail:       mail,
		renderer:   renderer,
		logger:     l,
		now:        time.Now,
	}
}

// GenerateAll runs one pass over every company.
func (g *Generator) GenerateAll(ctx context.Context) (RunSummary, error) {
	period := g.now()
	summary := RunSummary{Month: period.Month(), Year: period.Year()}

	companies, err := g.repo.ListCompanies(ctx)
	if err != nil {
		return summary, err
	}

	for _, company := range companies {
		companySummary, err := g.generateCompany(ctx, company, period)
		if err != nil {
			g.logger.Error("payroll run skipped company",
				zap.String("company_id", company.ID.String()),
				zap.Error(err),
			)
			continue
		}
		summary.Generated += companySummary.Generated
		summary.Skipped += companySummary.Skipped
		summary.Failed += companySummary.Failed
	}

	g.logger.Info("payroll run complete",
		zap.Int("month", int(summary.Month)),
		zap.Int("year", summary.Year),
		zap.Int("generated", summary.Generated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// GenerateForCompany backs the manual admin trigger.
func (g *Generator) GenerateForCompany(ctx context.Context, companyID uuid.UUID) (RunSummary, error) {
	period := g.now()

	company, err := g.repo.GetCompanyRow(ctx, companyID)
	if err != nil {
		return RunSummary{Month: period.Month(), Year: period.Year()}, err
	}

	return g.generateCompany(ctx, *company, period)
}

func (g *Generator) generateCompany(ctx context.Context, company CompanyRow, period time.Time) (RunSummary, error) {
	summary := RunSummary{Month: period.Month(), Year: period.Year()}

	cfg, err := g.configRepo.FindActiveByCompany(ctx, company.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			g.logger.Warn("no active payroll configuration, company skipped",
				zap.String("company_id", company.ID.String()),
			)
			return summary, nil
		}
		return summary, err
	}
	calcCfg := payrollconfig.ToCalculatorConfig(cfg)

	employees, err := g.repo.ListActiveEmployees(ctx, company.ID)
	if err != nil {
		return summary, err
	}

	for _, empl := range employees {
		generated, err := g.generateEmployee(ctx, company, empl, calcCfg, period)
		if err != nil {
			summary.Failed++
			g.logger.Error("payroll generation failed for employee",
				zap.String("company_id", company.ID.String()),
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if generated {
			summary.Generated++
		} else {
			summary.Skipped++
		}
	}

	return summary, nil
}

func (g *Generator) generateEmployee(
	ctx context.Context,
	company CompanyRow,
	empl EmployeeRow,
	calcCfg compensation.Config,
	period time.Time,
) (bool, error) {
	month, year := int(period.Month()), period.Year()

	exists, err := g.repo.ExistsForPeriod(ctx, empl.ID, month, year)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	inputs, err := g.repo.FindStructureInputs(ctx, company.ID, empl.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			g.logger.Warn("no salary structure, employee skipped",
				zap.String("employee_id", empl.ID.String()),
			)
			return false, nil
		}
		return false, err
	}
	if inputs.BasicSalary.LessThanOrEqual(decimal.Zero) {
		g.logger.Warn("non-positive basic salary, employee skipped",
			zap.String("employee_id", empl.ID.String()),
		)
		return false, nil
	}

	breakdown, err := compensation.Compute(compensation.Inputs{
		BasicSalary:      inputs.BasicSalary,
		SpecialAllowance: inputs.SpecialAllowance,
		BonusAmount:      inputs.BonusAmount,
		Gender:           empl.Gender,
		Month:            period.Month(),
	}, calcCfg)
	if err != nil {
		return false, err
	}

	payroll := &Payroll{
		ID:         uuid.New(),
		CompanyID:  company.ID,
		EmployeeID: empl.ID,
		Month:      month,
		Year:       year,

		BasicSalary:      breakdown.BasicSalary,
		HRA:              breakdown.HRA,
		Conveyance:       breakdown.Conveyance,
		Medical:          breakdown.Medical,
		SpecialAllowance: breakdown.SpecialAllowance,
		BonusAmount:      breakdown.Bonus,
		GrossSalary:      breakdown.GrossSalary,

		PFEmployee:      breakdown.PFEmployee,
		PFEmployer:      breakdown.PFEmployer,
		ESIEmployee:     breakdown.ESIEmployee,
		ESIEmployer:     breakdown.ESIEmployer,
		ProfessionalTax: breakdown.ProfessionalTax,
		IncomeTax:       breakdown.IncomeTax,
		TotalDeductions: breakdown.TotalDeductions,
		NetSalary:       breakdown.NetSalary,

		GeneratedAt: g.now().UTC(),
	}

	inserted, err := g.persist(ctx, payroll)
	if err != nil {
		return false, err
	}
	if !inserted {
		// Lost a race with a concurrent run, same outcome as the
		// exists check above.
		return false, nil
	}

	g.deliverSlip(ctx, company, empl, payroll)

	return true, nil
}

func (g *Generator) persist(ctx context.Context, payroll *Payroll) (bool, error) {
	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, tx.Error
	}
	defer tx.Rollback()

	inserted, err := g.repo.WithTx(tx).Create(ctx, payroll)
	if err != nil {
		return false, err
	}

	if inserted && g.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event := events.PayrollGeneratedEvent{
			EventType:  "payroll_generated",
			RequestID:  rid,
			PayrollID:  payroll.ID.String(),
			EmployeeID: payroll.EmployeeID.String(),
			CompanyID:  payroll.CompanyID.String(),
			Month:      payroll.Month,
			Year:       payroll.Year,
			NetSalary:  payroll.NetSalary.StringFixed(2),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return false, err
		}

		if err := g.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   payroll.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollGeneratedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return false, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return false, err
	}
	return inserted, nil
}

// deliverSlip renders and emails the payslip. Delivery failures are logged
// and never unwind the generated payroll.
func (g *Generator) deliverSlip(ctx context.Context, company CompanyRow, empl EmployeeRow, payroll *Payroll) {
	if g.renderer == nil || g.mail == nil {
		return
	}

	pdf, err := g.renderer.Render(slipDataFrom(company.Name, empl, payroll))
	if err != nil {
		g.logger.Error("payslip render failed",
			zap.String("payroll_id", payroll.ID.String()),
			zap.Error(err),
		)
		return
	}

	subject := fmt.Sprintf("Salary Slip - %s %d", time.Month(payroll.Month), payroll.Year)
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your salary slip for %s %d is attached.</p><p>Net pay: %s</p><p>%s</p>",
		empl.Name, time.Month(payroll.Month), payroll.Year,
		money.FormatINR(payroll.NetSalary), company.Name,
	)

	if err := g.mail.Send(ctx, mailer.Message{
		To:             empl.Email,
		Subject:        subject,
		HTMLBody:       body,
		Attachment:     pdf,
		AttachmentName: slipFileName(empl.EmpCode, payroll.Month, payroll.Year),
	}); err != nil {
		g.logger.Error("payslip email failed",
			zap.String("payroll_id", payroll.ID.String()),
			zap.String("to", empl.Email),
			zap.Error(err),
		)
	}
}

func slipDataFrom(companyName string, empl EmployeeRow, payroll *Payroll) SlipData {
	return SlipData{
		CompanyName:  companyName,
		EmployeeName: empl.Name,
		EmpCode:      empl.EmpCode,
		Month:        time.Month(payroll.Month),
		Year:         payroll.Year,

		BasicSalary:      payroll.BasicSalary,
		HRA:              payroll.HRA,
		Conveyance:       payroll.Conveyance,
		Medical:          payroll.Medical,
		SpecialAllowance: payroll.SpecialAllowance,
		BonusAmount:      payroll.BonusAmount,
		GrossSalary:      payroll.GrossSalary,

		PFEmployee:      payroll.PFEmployee,
		ESIEmployee:     payroll.ESIEmployee,
		ProfessionalTax: payroll.ProfessionalTax,
		IncomeTax:       payroll.IncomeTax,
		TotalDeductions: payroll.TotalDeductions,
		NetSalary:       payroll.NetSalary,
	}
}

func slipFileName(empCode string, month, year int) string {
	return fmt.Sprintf("payslip-%s-%04d-%02d.pdf", empCode, year, month)
}
