package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/web/templates/layout"
)

// Alphabet is the on-screen keyboard, Spanish order
var Alphabet = []rune("ABCDEFGHIJKLMNÑOPQRSTUVWXYZ")

// HangmanData is rendered by Hangman
type HangmanData struct {
	layout.PageData
	// Game is nil before the visitor has started one
	Game *model.HangmanGame
}

// gallows has one drawing per number of misses, 0 through 6
var gallows = [...]string{
	"  +---+\n  |   |\n      |\n      |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n      |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n  |   |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n /|   |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n /|\\  |\n      |\n=======",
	"  +---+\n  |   |\n  O   |\n /|\\  |\n /    |\n=======",
	"  +---+\n  |   |\n  O   |\n /|\\  |\n / \\  |\n=======",
}

func drawing(misses, maxMisses int) string {
	if maxMisses <= 0 {
		maxMisses = len(gallows) - 1
	}
	// Scale to the drawing when a game allows a different number of misses
	stage := misses * (len(gallows) - 1) / maxMisses
	if stage >= len(gallows) {
		stage = len(gallows) - 1
	}
	return gallows[stage]
}

// Hangman renders the word-guessing game
func Hangman(data HangmanData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw(`<section class="hangman"><h1>Ahorcado</h1>`)

		g := data.Game
		if g == nil {
			p.Raw(`<p class="intro">Adivina la palabra letra a letra antes de completar el dibujo.</p>`)
			newGameForm(p, "Empezar partida")
			p.Raw(`</section>`)
			return p.Err()
		}

		p.Raw(`<pre class="gallows">`).Text(drawing(g.Misses, g.MaxMisses)).Raw(`</pre>`)
		p.Raw(`<p class="word" data-status="`).Attr(string(g.Status)).Raw(`">`).Text(g.Masked()).Raw(`</p>`)
		p.Raw(`<p class="misses">Fallos: <span class="count">`).Text(strconv.Itoa(g.Misses)).Raw(`</span>/`)
		p.Raw(strconv.Itoa(g.MaxMisses)).Raw(`</p>`)

		if wrong := g.WrongGuesses(); len(wrong) > 0 {
			p.Raw(`<p class="wrong">Letras falladas: `).Text(string(wrong)).Raw(`</p>`)
		}

		switch g.Status {
		case model.HangmanWon:
			p.Raw(`<p class="result won">¡Has ganado! La palabra era `).Text(g.Word).Raw(`.</p>`)
		case model.HangmanLost:
			p.Raw(`<p class="result lost">Has perdido. La palabra era `).Text(g.Word).Raw(`.</p>`)
		case model.HangmanAbandoned:
			p.Raw(`<p class="result abandoned">Partida abandonada.</p>`)
		}

		if g.IsOver() {
			newGameForm(p, "Jugar otra vez")
		} else {
			p.Raw(`<form method="post" action="/hangman/guess" class="keyboard">`)
			p.Raw(`<input type="hidden" name="game_id" value="`).Attr(string(g.ID)).Raw(`">`)
			for _, r := range Alphabet {
				letter := string(r)
				p.Raw(`<button type="submit" name="letter" value="`).Attr(letter).Raw(`"`)
				if g.HasGuessed(r) {
					p.Raw(` disabled`)
				}
				p.Raw(`>`).Text(letter).Raw(`</button>`)
			}
			p.Raw(`</form>`)
			p.Raw(`<form method="post" action="/hangman/abandon" class="abandon-form">`)
			p.Raw(`<input type="hidden" name="game_id" value="`).Attr(string(g.ID)).Raw(`">`)
			p.Raw(`<button type="submit" class="secondary">Rendirse</button></form>`)
		}

		p.Raw(`</section>`)
		return p.Err()
	}))
}

func newGameForm(p *layout.Printer, label string) {
	p.Raw(`<form method="post" action="/hangman/new" class="new-game-form">`)
	p.Raw(`<button type="submit">`).Text(label).Raw(`</button></form>`)
}
