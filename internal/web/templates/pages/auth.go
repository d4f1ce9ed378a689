package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/gameportal/internal/web/templates/layout"
)

// LoginData is rendered by Login
type LoginData struct {
	layout.PageData
	Username string
	Error    string
	// Redirect is where to go after a successful login
	Redirect string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw(`<section class="auth"><h1>Iniciar sesión</h1>`)
		formError(p, data.Error)
		p.Raw(`<form method="post" action="/login" class="auth-form">`)
		if data.Redirect != "" {
			p.Raw(`<input type="hidden" name="redirect" value="`).Attr(data.Redirect).Raw(`">`)
		}
		p.Raw(`<label for="username">Usuario</label>`)
		p.Raw(`<input id="username" name="username" required autocomplete="username" value="`).Attr(data.Username).Raw(`">`)
		p.Raw(`<label for="password">Contraseña</label>`)
		p.Raw(`<input id="password" name="password" type="password" required autocomplete="current-password">`)
		p.Raw(`<button type="submit">Entrar</button></form>`)
		p.Raw(`<p>¿No tienes cuenta? <a href="/register">Regístrate</a></p></section>`)
		return p.Err()
	}))
}

// RegisterData is rendered by Register
type RegisterData struct {
	layout.PageData
	Username    string
	Email       string
	Error       string
	FieldErrors map[string]string
}

// Register renders the sign-up form
func Register(data RegisterData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw(`<section class="auth"><h1>Crear cuenta</h1>`)
		formError(p, data.Error)
		p.Raw(`<form method="post" action="/register" class="auth-form">`)

		p.Raw(`<label for="username">Usuario</label>`)
		p.Raw(`<input id="username" name="username" required value="`).Attr(data.Username).Raw(`">`)
		fieldError(p, data.FieldErrors, "username")

		p.Raw(`<label for="email">Email</label>`)
		p.Raw(`<input id="email" name="email" type="email" required value="`).Attr(data.Email).Raw(`">`)
		fieldError(p, data.FieldErrors, "email")

		p.Raw(`<label for="password">Contraseña</label>`)
		p.Raw(`<input id="password" name="password" type="password" required autocomplete="new-password">`)
		fieldError(p, data.FieldErrors, "password")

		p.Raw(`<label for="password_confirm">Repite la contraseña</label>`)
		p.Raw(`<input id="password_confirm" name="password_confirm" type="password" required autocomplete="new-password">`)
		fieldError(p, data.FieldErrors, "password_confirm")

		p.Raw(`<button type="submit">Registrarse</button></form>`)
		p.Raw(`<p>¿Ya tienes cuenta? <a href="/login">Inicia sesión</a></p></section>`)
		return p.Err()
	}))
}

func formError(p *layout.Printer, msg string) {
	if msg == "" {
		return
	}
	p.Raw(`<div class="form-error" role="alert">`).Text(msg).Raw(`</div>`)
}

func fieldError(p *layout.Printer, errs map[string]string, field string) {
	msg, ok := errs[field]
	if !ok {
		return
	}
	p.Raw(`<span class="field-error" data-field="`).Attr(field).Raw(`">`).Text(msg).Raw(`</span>`)
}
