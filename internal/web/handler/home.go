package handler

import "net/http"

// Home sends visitors to the catalog; the guard decides from there
func Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DefaultLanding, http.StatusSeeOther)
}
