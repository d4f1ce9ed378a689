package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameportal/internal/api/apierr"
	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/catalog"
)

// CatalogHandler handles /juegos
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: svc}
}

// List handles GET /juegos
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.catalog.List(r.Context()))
}

// Create handles POST /juegos
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		WriteError(w, NewForbiddenError("Solo administradores pueden crear juegos"))
		return
	}

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	id, err := h.catalog.Create(r.Context(), fields)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Created{Message: "Juego creado", ID: int64(id)})
}

// Update handles PUT /juegos/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		WriteError(w, NewForbiddenError("Solo administradores pueden editar juegos"))
		return
	}

	id, ok := gameID(w, r)
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Update(r.Context(), id, fields); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Mutation{Message: "Juego actualizado correctamente", ID: id})
}

// Delete handles DELETE /juegos/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !isAdmin(r) {
		WriteError(w, NewForbiddenError("Solo administradores pueden eliminar juegos"))
		return
	}

	id, ok := gameID(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Mutation{Message: "Juego eliminado correctamente", ID: id})
}

func isAdmin(r *http.Request) bool {
	session := middleware.MustGetSession(r.Context())
	return session.IsAdmin
}

func gameID(w http.ResponseWriter, r *http.Request) (model.VideoGameID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteError(w, apierr.NewNotFoundError(apierr.MsgGameNotFound))
		return 0, false
	}
	return model.VideoGameID(id), true
}

func decodeFields(w http.ResponseWriter, r *http.Request) (model.VideoGameFields, bool) {
	var fields model.VideoGameFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		WriteError(w, NewInvalidRequestError(apierr.MsgInvalidBody))
		return fields, false
	}
	return fields, true
}
