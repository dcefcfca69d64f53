package dto

import "sntsa.mx/becas/internal/model"

type SignupInput struct {
	CURP            string `json:"curp" form:"curp" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" binding:"required"`
}

type SigninInput struct {
	CURP     string `json:"curp" form:"curp" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	Usuario     *model.Usuario `json:"usuario"`
}
