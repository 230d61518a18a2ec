package auth

type RegisterRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	Email            string `json:"email" binding:"required,email,max=254"`
	Password         string `json:"password" binding:"required"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=customer business"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by both registration and login.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserID   int64  `json:"user_id"`
}
