package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the Postgres connection described by the settings and
// returns the handle for injection into the handlers.
func InitDB(s *Settings) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.DBHost,
		s.DBUsername,
		s.DBPassword,
		s.DBDatabase,
		s.DBPort,
		s.DBSSLMode,
	)

	// In production, suppress SQL logs unless explicitly re-enabled via
	// DEBUG_SQL=true. Switch the level back to logger.Info to print SQL
	// statements again.
	logLevel := logger.Info
	if s.Environment == "production" && !s.DebugSQL {
		logLevel = logger.Warn
	}

	config := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
