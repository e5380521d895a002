package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// credentialRowID is the primary key of the only row the table ever holds.
const credentialRowID = 1

// StoredCredential represents the schema of the credentials table
type StoredCredential struct {
	ID        uint      `gorm:"primaryKey"`        // Always credentialRowID
	Value     string    `gorm:"size:4096;not null"` // Trimmed API key
	UpdatedAt time.Time // Set by gorm on every write
}

// TableName pins the table name independent of gorm's pluralisation rules.
func (StoredCredential) TableName() string {
	return "credentials"
}

// SQLiteStore keeps the credential in a single-row SQLite table.
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// OpenSQLiteStore opens (or creates) the database at path and migrates the schema.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&StoredCredential{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Location returns the database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Save upserts the credential row.
func (s *SQLiteStore) Save(ctx context.Context, value string) error {
	record := StoredCredential{
		ID:    credentialRowID,
		Value: strings.TrimSpace(value),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record)
	if result.Error != nil {
		log.WithError(result.Error).WithField("path", s.path).Error("Failed to save API key")
		return fmt.Errorf("%w: %v", ErrStorage, result.Error)
	}

	log.WithField("path", s.path).Info("API key saved to database")
	return nil
}

// Load reads the credential row. A missing row is not an error.
func (s *SQLiteStore) Load(ctx context.Context) (string, bool) {
	var record StoredCredential
	err := s.db.WithContext(ctx).First(&record, credentialRowID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithError(err).WithField("path", s.path).Error("Failed to load API key")
		}
		return "", false
	}

	value := strings.TrimSpace(record.Value)
	return value, value != ""
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
