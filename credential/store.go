package credential

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"typing-tutor/internal/constants"
)

var log = logrus.New()

// ErrStorage is wrapped by every error a Store returns from Save.
var ErrStorage = errors.New("credential storage failed")

// Store persists the single API key used for story generation.
type Store interface {
	// Save trims value and replaces the stored credential with it.
	Save(ctx context.Context, value string) error

	// Load returns the stored credential and whether one is present.
	// Read failures are logged and reported as absent.
	Load(ctx context.Context) (string, bool)

	// Location describes where the credential lives, for startup logging.
	Location() string
}

// SetLogger replaces the package logger so the credential stores share the
// application's level and formatter.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

// Mask shortens a credential for logging.
func Mask(value string) string {
	if len(value) <= constants.MaskedKeyPrefix {
		return "..."
	}
	return value[:constants.MaskedKeyPrefix] + "..."
}
