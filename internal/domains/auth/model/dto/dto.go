package dto

import "minihotel/infras/jwt"

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,max=50"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,max=50"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50"`
}

type AuthResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.TokenPair
}
