package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	EmpCode   string `json:"emp_code"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

type TokenPairResponse struct {
	User         AuthResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
