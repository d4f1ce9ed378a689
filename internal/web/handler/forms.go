package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerForm is the sign-up form as posted by the register page
type registerForm struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	PasswordConfirm string `form:"password_confirm" validate:"eqfield=Password"`
}

func parseRegisterForm(r *http.Request) registerForm {
	return registerForm{
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
}

var formValidator = newFormValidator()

// newFormValidator reports fields by their form name, so errors can be
// shown next to the matching input
func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// Messages keyed by "<field>.<tag>"
var fieldMessages = map[string]string{
	"username.required":        "El usuario es obligatorio",
	"email.required":           "El email es obligatorio",
	"email.email":              "El email no es válido",
	"password.required":        "La contraseña es obligatoria",
	"password_confirm.eqfield": "Las contraseñas no coinciden",
}

// validateForm returns one message per invalid form field, or nil
func validateForm(form any) map[string]string {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": "Formulario no válido"}
	}

	problems := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Valor no válido"
		}
		problems[fe.Field()] = msg
	}
	return problems
}
