package employee

type CreateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contact_number"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	Birthdate     string `json:"birthdate"`
	JoiningDate   string `json:"joining_date"`
	Gender        string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	Role          string `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE"`
}

type UpdateEmployeeRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	Birthdate     string `json:"birthdate"`
	JoiningDate   string `json:"joining_date"`
	Gender        string `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
}

type SetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	EmpCode       string `json:"emp_code"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number,omitempty"`
	Department    string `json:"department,omitempty"`
	Designation   string `json:"designation,omitempty"`
	Birthdate     string `json:"birthdate,omitempty"`
	JoiningDate   string `json:"joining_date,omitempty"`
	Gender        string `json:"gender"`
	Role          string `json:"role"`
	Status        string `json:"status"`
}
