package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// The pepper is a site-wide secret appended to every password before hashing.
// It is optional: with no pepper file configured, hashing proceeds without one.
var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile string
	pepperInit bool
)

// SetPepperPath configures the pepper file location. Pass an empty path to
// disable peppering. Must be called before the first hash or verify.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperFile = file
	pepper = ""
	pepperInit = false
}

// GetPepper returns the configured pepper, loading or generating it on first
// use. An unreadable pepper file is fatal: verifying against hashes produced
// with a different pepper would silently reject every password.
func GetPepper() string {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepperInit {
		return pepper
	}

	if pepperFile == "" {
		pepperInit = true
		return ""
	}

	loaded, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to load or generate pepper: %v", err))
	}
	pepper = loaded
	pepperInit = true
	return pepper
}

// loadOrGeneratePepper loads the pepper from a file, generating and persisting
// one if the file does not exist yet.
func loadOrGeneratePepper(file string) (string, error) {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(file); os.IsNotExist(err) {
		raw := make([]byte, keyLength)
		if _, err := rand.Read(raw); err != nil {
			return "", err
		}
		generated := base64.RawURLEncoding.EncodeToString(raw)
		if err := os.WriteFile(file, []byte(generated), 0600); err != nil {
			return "", err
		}
		return generated, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
