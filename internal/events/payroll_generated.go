package events

import "time"

const PayrollGeneratedTopic = "payroll.run.generated.v1"

type PayrollGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	NetSalary  string    `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
