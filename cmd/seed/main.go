package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/techstore/pos-api/internal/domain/entity"
	"github.com/techstore/pos-api/internal/infrastructure/postgres"
	"github.com/techstore/pos-api/pkg/config"
	"github.com/techstore/pos-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Seed de datos de demo: catálogo inicial de la tienda y dos usuarios
// (admin@techstore.com/admin123 y employee@techstore.com/emp123).
// Idempotente: no duplica productos ya sembrados ni usuarios existentes.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := seedProducts(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("seed de productos")
	}
	if err := seedUsers(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("seed de usuarios")
	}

	log.Info().Msg("seed completado")
}

type seedProduct struct {
	name     string
	category string
	price    string
	stock    int64
}

var demoProducts = []seedProduct{
	{"iPhone 15 Pro", entity.CategoryPhones, "999.99", 25},
	{"Samsung Galaxy S24", entity.CategoryPhones, "849.99", 30},
	{"Google Pixel 8", entity.CategoryPhones, "699.99", 20},
	{"Gaming PC RTX 4080", entity.CategoryPCs, "2499.99", 8},
	{"MacBook Air M3", entity.CategoryPCs, "1299.99", 15},
	{"Dell XPS 15", entity.CategoryPCs, "1599.99", 12},
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool) error {
	const insert = `
		INSERT INTO products (name, category, price, stock, created_at, updated_at)
		SELECT $1, $2, $3::numeric, $4, now(), now()
		WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)`
	for _, p := range demoProducts {
		if _, err := pool.Exec(ctx, insert, p.name, p.category, p.price, p.stock); err != nil {
			return err
		}
	}
	return nil
}

type seedUser struct {
	email    string
	password string
	name     string
	role     string
}

var demoUsers = []seedUser{
	{"admin@techstore.com", "admin123", "Admin", entity.RoleAdmin},
	{"employee@techstore.com", "emp123", "Employee", entity.RoleEmployee},
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	const insert = `
		INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'active', now(), now())
		ON CONFLICT (email) DO NOTHING`
	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, insert, uuid.New().String(), u.email, string(hash), u.name, u.role); err != nil {
			return err
		}
	}
	return nil
}
