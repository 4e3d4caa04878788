// issue-token emite un JWT firmado con JWT_SECRET para entornos locales y pruebas manuales.
// En producción los tokens los emite el proveedor de identidad con los mismos claims.
//
// Uso: go run ./cmd/issue-token --user <uuid> [--role admin|user] [--minutes 60]
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
	"github.com/jhoicas/bar-stock-api/pkg/config"
	"github.com/jhoicas/bar-stock-api/pkg/jwt"
)

func main() {
	userID := pflag.String("user", "", "user_id del token (uuid); vacío genera uno nuevo")
	role := pflag.String("role", entity.RoleUser, "rol: admin | user")
	minutes := pflag.Int("minutes", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	pflag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no definido")
		os.Exit(1)
	}
	if !entity.ValidRole(*role) {
		fmt.Fprintf(os.Stderr, "Rol inválido: %q\n", *role)
		os.Exit(1)
	}
	id := *userID
	if id == "" {
		id = uuid.New().String()
	} else if _, err := uuid.Parse(id); err != nil {
		fmt.Fprintf(os.Stderr, "user no es un uuid: %v\n", err)
		os.Exit(1)
	}
	exp := *minutes
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, id, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Firmar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "user_id=%s role=%s exp=%dm\n", id, *role, exp)
	fmt.Println(tok)
}
