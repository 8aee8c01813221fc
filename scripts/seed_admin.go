package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/khoahotran/portfolio-hub/pkg/auth"
)

// Roles are provisioned out of band; this is the tool for it. It upserts a
// confirmed identity and gives it the admin role.
func main() {
	fmt.Println("adding admin into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("BACKEND_URL")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if dsn == "" || adminEmail == "" || len(adminPassword) < 6 {
		log.Fatalf("BACKEND_URL, ADMIN_EMAIL and ADMIN_PASSWORD (6+ chars) are required")
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var userID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO auth_users (id, email, password_hash, email_confirmed_at)
			VALUES ($1, lower($2), $3, NOW())
			ON CONFLICT (email) DO UPDATE SET password_hash = $3
			RETURNING id
		`, uuid.New(), adminEmail, hash).Scan(&userID)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, 'admin')`, userID)
		return err
	})
	if err != nil {
		log.Fatalf("cannot add admin: %v", err)
	}

	fmt.Printf("added or updated admin '%s' successfully!\n", adminEmail)
}
