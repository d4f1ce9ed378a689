package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameportal/internal/model"
)

func celesteForm(platform string) url.Values {
	return url.Values{
		"nombre":        {"Celeste"},
		"genero":        {"Plataformas"},
		"plataforma":    {platform},
		"anio":          {"2018"},
		"wikipedia_url": {"https://es.wikipedia.org/wiki/Celeste_(videojuego)"},
	}
}

func TestGamesRequiresLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirect=%2Fgames", rr.Header().Get("Location"))
}

func TestGamesListForRegularUser(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice")

	rr := ts.get("/games")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	names := doc.Find(".game .game-name").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Tetris", "DOOM", "Hades"}, names)
	assertContainsText(t, doc, ".game[data-id='1'] .game-description", model.DefaultDescription)

	// No admin controls
	assertNotContainsElement(t, doc, "form.game-form")
	assertNotContainsElement(t, doc, "form.delete-form")
}

func TestGamesListForAdmin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	rr := ts.get("/games")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form.game-form[action='/games']")
	assertContainsElement(t, doc, "form.game-form[action='/games/2'] input[name='nombre'][value='DOOM']")
	assertContainsElement(t, doc, "form.delete-form[action='/games/3/delete']")
}

func TestAdminCreatesGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	rr := ts.post("/games", celesteForm("PC"))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games", rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Juego creado")
	assertContainsText(t, doc, ".game[data-id='4'] .game-name", "Celeste")
	assertContainsElement(t, doc, ".game[data-id='4'] a.wiki[href='https://es.wikipedia.org/wiki/Celeste_(videojuego)']")
}

func TestAdminUpdatesGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	form := celesteForm("Switch")
	form.Set("nombre", "Tetris 99")
	rr := ts.post("/games/1", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Juego actualizado correctamente")
	assertContainsText(t, doc, ".game[data-id='1'] .game-name", "Tetris 99")
	assertContainsText(t, doc, ".game[data-id='1'] .platform", "Switch")
}

func TestAdminUpdatesMissingGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	rr := ts.post("/games/99", celesteForm("PC"))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	assertContainsText(t, parseHTML(rr.Body), ".flash-error", "Juego no encontrado")
}

func TestAdminDeletesGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	rr := ts.post("/games/2/delete", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Juego eliminado correctamente")
	assertNotContainsElement(t, doc, ".game[data-id='2']")
	assert.Equal(t, 2, ts.backend.Catalog.Len())
}

func TestRegularUserCannotMutate(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice")

	rr := ts.post("/games", celesteForm("PC"))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	rr = ts.followRedirect(rr)
	assertContainsText(t, parseHTML(rr.Body), ".flash-error", "Solo administradores pueden crear juegos")

	rr = ts.post("/games/1/delete", nil)
	rr = ts.followRedirect(rr)
	assertContainsText(t, parseHTML(rr.Body), ".flash-error", "Solo administradores pueden eliminar juegos")

	assert.Equal(t, 3, ts.backend.Catalog.Len())
}

func TestInvalidYear(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	form := celesteForm("PC")
	form.Set("anio", "dos mil")
	rr := ts.post("/games", form)
	rr = ts.followRedirect(rr)

	assertContainsText(t, parseHTML(rr.Body), ".flash-error", "El año debe ser un número")
	assert.Equal(t, 3, ts.backend.Catalog.Len())
}

func TestMutationAfterSessionExpiredGoesToLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.loginAdmin()

	ts.backend.MockClock.Advance(25 * time.Hour)

	// The guard runs first and notices
	rr := ts.post("/games/1/delete", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirect=%2Fgames", rr.Header().Get("Location"))
	assert.Equal(t, 3, ts.backend.Catalog.Len())
}
