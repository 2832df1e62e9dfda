package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pageza/sproutspoon/backend/config"
)

// NewGorm opens the application's GORM connection on top of the pooled
// database/sql connection and makes sure the pgvector extension is
// available for ingredient embeddings.
func NewGorm(cfg *config.Config) (*gorm.DB, error) {
	pool, err := New(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: pool.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return nil, fmt.Errorf("failed to install pgvector extension: %w", err)
	}

	log.Printf("[Database] connected to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return db, nil
}
