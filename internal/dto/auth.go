package dto

// SignupRequest defines the data needed to register a new company and
// its first admin user.
type SignupRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

// SigninRequest defines the credentials for a staff login.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful signup or signin.
type AuthResponse struct {
	Token   string          `json:"token"`
	User    UserResponse    `json:"user"`
	Company CompanyResponse `json:"company"`
}
