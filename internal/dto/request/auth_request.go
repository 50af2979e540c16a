package request

// RegisterRequest is the body of POST /api/v1/auth/register.
// Email is optional; when present it must be well formed.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Phone    string `json:"phone" binding:"required,max=32"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}
