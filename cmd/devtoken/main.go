// devtoken emite un JWT de desarrollo firmado con JWT_SECRET y, con -role, registra el perfil.
//
// Uso: go run ./cmd/devtoken -user <uuid> -email dev@example.com [-role admin]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ai/pkg/config"
	"github.com/jhoicas/Inventario-ai/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "id del perfil (uuid); vacío genera uno nuevo")
	email := flag.String("email", "dev@example.com", "email del perfil")
	role := flag.String("role", "", "si se indica, crea o actualiza el perfil con ese rol (admin | manager | viewer)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	if *userID == "" {
		*userID = uuid.New().String()
	}

	if *role != "" {
		r := entity.Role(*role)
		if !r.Valid() {
			fmt.Fprintf(os.Stderr, "Rol inválido: %s\n", *role)
			os.Exit(1)
		}
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
			os.Exit(1)
		}
		profile := &entity.Profile{ID: *userID, Email: *email, Role: r}
		if err := postgres.NewProfileRepository(pool).Upsert(ctx, profile); err != nil {
			fmt.Fprintf(os.Stderr, "Perfil: %v\n", err)
			os.Exit(1)
		}
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *email, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
