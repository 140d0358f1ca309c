// file: internals/features/users/auth/dto/auth_dto.go
package dto

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	UserID      string   `json:"user_id"`
	UserName    string   `json:"user_name"`
	Roles       []string `json:"roles"`
}
