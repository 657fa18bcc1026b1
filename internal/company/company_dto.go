package company

type RegisterCompanyRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	ContactNumber      string `json:"contact_number"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`

	AdminName   string `json:"admin_name" binding:"required"`
	AdminEmail  string `json:"admin_email" binding:"required,email"`
	AdminGender string `json:"admin_gender" binding:"required,oneof=MALE FEMALE"`
}

type UpdateCompanyRequest struct {
	Name               string `json:"name"`
	ContactNumber      string `json:"contact_number"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
}

type CompanyResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	ContactNumber      string `json:"contact_number,omitempty"`
	Address            string `json:"address,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
}

type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	AdminID string          `json:"admin_id"`
}
