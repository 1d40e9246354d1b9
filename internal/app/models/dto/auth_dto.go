package dto

// LoginRequest represents login credentials. The role hint is accepted for
// backwards compatibility with older clients but never trusted; the effective
// role is resolved server-side from the table the credentials matched.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Message   string `json:"message"`
	Role      string `json:"role"`
	FullName  string `json:"fullname"`
	Email     string `json:"email"`
	StudentNo string `json:"studentNo,omitempty"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// RegisterAdminRequest represents an admin registration request
type RegisterAdminRequest struct {
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
