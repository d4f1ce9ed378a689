package request

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks a decoded request against its validate tags
func Validate(req any) error {
	return validate.Struct(req)
}
