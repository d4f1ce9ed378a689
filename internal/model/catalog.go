package model

import "time"

// VideoGameID identifies an entry in the game catalog
type VideoGameID int64

// DefaultDescription is stored when a game is saved without a description
const DefaultDescription = "Sin descripción disponible"

// VideoGame is an entry in the game catalog. JSON field names follow the
// backend's wire format.
type VideoGame struct {
	ID           VideoGameID `json:"id"`
	Name         string      `json:"nombre"`
	Genre        string      `json:"genero"`
	Platform     string      `json:"plataforma"`
	Year         int         `json:"anio"`
	Description  *string     `json:"descripcion"`
	ImagePath    *string     `json:"imagen_ruta"`
	WikipediaURL *string     `json:"wikipedia_url"`
	CreatedAt    time.Time   `json:"-"`
	UpdatedAt    time.Time   `json:"-"`
}

// VideoGameFields are the writable fields of a catalog entry. Name, Genre,
// Platform and Year are mandatory on both create and update.
type VideoGameFields struct {
	Name         *string `json:"nombre"`
	Genre        *string `json:"genero"`
	Platform     *string `json:"plataforma"`
	Year         *int    `json:"anio"`
	Description  *string `json:"descripcion"`
	ImagePath    *string `json:"imagen_ruta"`
	WikipediaURL *string `json:"wikipedia_url"`
}

// Complete reports whether every mandatory field is present
func (f VideoGameFields) Complete() bool {
	return f.Name != nil && f.Genre != nil && f.Platform != nil && f.Year != nil
}
