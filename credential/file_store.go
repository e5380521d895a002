package credential

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"
)

// FileStore keeps the credential as the sole contents of a plain-text file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore backed by path. The file is not touched
// until the first Save or Load.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Location returns the path of the credential file.
func (s *FileStore) Location() string {
	return s.path
}

// Save replaces the file contents with the trimmed value. The new contents are
// written to a temporary file and renamed over the old one.
func (s *FileStore) Save(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.WithField("path", s.path)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WithError(err).Error("Failed to create credential directory")
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	if err := atomic.WriteFile(s.path, strings.NewReader(strings.TrimSpace(value))); err != nil {
		logger.WithError(err).Error("Failed to save API key")
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	logger.Info("API key saved to file")
	return nil
}

// Load reads and trims the file. A missing file is not an error.
func (s *FileStore) Load(_ context.Context) (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithFields(logrus.Fields{
				"path":  s.path,
				"error": err,
			}).Error("Failed to load API key")
		}
		return "", false
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	log.WithField("path", s.path).Debug("API key loaded from file")
	return value, true
}
