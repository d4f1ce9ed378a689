package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/web/templates/layout"
)

// GamesData is rendered by Games
type GamesData struct {
	layout.PageData
	Games []portal.Game
}

// Games renders the catalog. Admins also get create, edit and delete forms.
func Games(data GamesData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		admin := data.User != nil && data.User.IsAdmin

		p := layout.NewPrinter(w)
		p.Raw(`<section class="games"><h1>Juegos</h1>`)
		if len(data.Games) == 0 {
			p.Raw(`<p class="empty">No hay juegos todavía.</p>`)
		}

		p.Raw(`<ul class="game-list">`)
		for _, g := range data.Games {
			id := strconv.FormatInt(int64(g.ID), 10)
			p.Raw(`<li class="game" data-id="`).Attr(id).Raw(`">`)
			p.Raw(`<h2 class="game-name">`).Text(g.Name).Raw(`</h2>`)
			p.Raw(`<p class="game-meta"><span class="genre">`).Text(g.Genre).Raw(`</span> · `)
			p.Raw(`<span class="platform">`).Text(g.Platform).Raw(`</span> · `)
			p.Raw(`<span class="year">`).Text(strconv.Itoa(g.Year)).Raw(`</span></p>`)
			if g.Description != "" {
				p.Raw(`<p class="game-description">`).Text(g.Description).Raw(`</p>`)
			}
			if g.WikipediaURL != "" {
				p.Raw(`<a class="wiki" rel="noopener" target="_blank" href="`).URL(g.WikipediaURL).Raw(`">Wikipedia</a>`)
			}
			if admin {
				p.Raw(`<details class="edit"><summary>Editar</summary>`)
				gameForm(p, "/games/"+id, g, "Guardar")
				p.Raw(`</details>`)
				p.Raw(`<form method="post" action="/games/`).Attr(id).Raw(`/delete" class="delete-form">`)
				p.Raw(`<button type="submit" class="danger">Eliminar</button></form>`)
			}
			p.Raw(`</li>`)
		}
		p.Raw(`</ul>`)

		if admin {
			p.Raw(`<h2>Añadir juego</h2>`)
			gameForm(p, "/games", portal.Game{}, "Crear")
		}
		p.Raw(`</section>`)
		return p.Err()
	}))
}

func gameForm(p *layout.Printer, action string, g portal.Game, submit string) {
	year := ""
	if g.Year != 0 {
		year = strconv.Itoa(g.Year)
	}

	p.Raw(`<form method="post" class="game-form" action="`).Attr(action).Raw(`">`)
	input(p, "nombre", "Nombre", "text", g.Name, true)
	input(p, "genero", "Género", "text", g.Genre, true)
	input(p, "plataforma", "Plataforma", "text", g.Platform, true)
	input(p, "anio", "Año", "number", year, true)
	input(p, "descripcion", "Descripción", "text", g.Description, false)
	input(p, "imagen_ruta", "Imagen", "text", g.ImagePath, false)
	input(p, "wikipedia_url", "Wikipedia", "url", g.WikipediaURL, false)
	p.Raw(`<button type="submit">`).Text(submit).Raw(`</button></form>`)
}

func input(p *layout.Printer, name, label, kind, value string, required bool) {
	p.Raw(`<label>`).Text(label)
	p.Raw(` <input name="`).Attr(name).Raw(`" type="`).Attr(kind).Raw(`" value="`).Attr(value).Raw(`"`)
	if required {
		p.Raw(` required`)
	}
	p.Raw(`></label>`)
}
