package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notice carried between requests
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// User is the signed-in visitor as confirmed by the backend
type User struct {
	ID      int64
	IsAdmin bool
}

// PageData is shared by every page
type PageData struct {
	Title string
	User  *User
	Flash *FlashMessage
}

// Base wraps body in the site chrome: head, navigation and flash banner
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPrinter(w)
		p.Raw("<!DOCTYPE html>\n<html lang=\"es\"><head><meta charset=\"utf-8\">")
		p.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.Raw("<title>").Text(data.Title).Raw(" · Game Portal</title>")
		p.Raw(`<link rel="stylesheet" href="/static/css/portal.css">`)
		p.Raw("</head><body>")

		p.Raw(`<nav class="navbar"><a class="brand" href="/games">Game Portal</a><ul>`)
		p.Raw(`<li><a href="/games">Juegos</a></li><li><a href="/hangman">Ahorcado</a></li>`)
		if data.User != nil {
			p.Raw(`<li class="user">Usuario #`).Text(fmt.Sprint(data.User.ID))
			if data.User.IsAdmin {
				p.Raw(` <span class="badge admin">admin</span>`)
			}
			p.Raw(`</li><li><form method="post" action="/logout"><button type="submit">Cerrar sesión</button></form></li>`)
		} else {
			p.Raw(`<li><a href="/login">Iniciar sesión</a></li><li><a href="/register">Registrarse</a></li>`)
		}
		p.Raw("</ul></nav>")

		if data.Flash != nil {
			p.Raw(`<div class="flash flash-`).Attr(data.Flash.Type).Raw(`" role="alert">`)
			p.Text(data.Flash.Message)
			p.Raw("</div>")
		}

		p.Raw(`<main class="container">`)
		if p.Err() != nil {
			return p.Err()
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.Raw("</main></body></html>")
		return p.Err()
	})
}
