package domain

import "github.com/jhoicas/bar-stock-api/internal/domain/entity"

// Actor identidad que ejecuta la operación (proviene del token, nunca del cuerpo de la petición).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor tiene rol admin.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanActOn indica si el actor puede operar sobre los datos de userID (él mismo o un admin).
func (a Actor) CanActOn(userID string) bool { return a.IsAdmin() || a.UserID == userID }
