package dto

// Límites de paginación de los listados del ledger.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// PageRequest ventana de un listado ordenado (más reciente primero).
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// NewPage normaliza limit/offset: limit <= 0 usa el valor por defecto y nunca supera MaxPageLimit.
func NewPage(limit, offset int) PageRequest {
	switch {
	case limit <= 0:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return PageRequest{Limit: limit, Offset: offset}
}

// Response metadatos de la página devuelta con count elementos.
func (p PageRequest) Response(count int) PageResponse {
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Count: count}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// ErrorResponse cuerpo de error HTTP. Details lleva el contexto del rechazo (entidad, intentado, actual).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
