package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/catertrack/catertrack/internal/database/schema"
	"github.com/catertrack/catertrack/pkg/crypto"
)

// InitializeDatabase creates all necessary tables if they don't exist and
// seeds the default admin account. The admin is only created when no user
// with that username exists yet, so repeated startups are safe.
func InitializeDatabase(db *sql.DB, adminUsername, adminPassword string) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	if adminUsername == "" {
		return nil
	}

	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", adminUsername).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check admin user existence: %w", err)
	}

	if !exists {
		passwordHash, err := crypto.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		query := `
			INSERT INTO users (username, password_hash, full_name, role, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err = db.Exec(query,
			adminUsername,
			passwordHash,
			"Admin User",
			"Admin",
			time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	return nil
}
