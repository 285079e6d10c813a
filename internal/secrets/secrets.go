// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: courtlistener-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeyCourtListener is the secret file name holding the CourtListener API
// token, sent upstream as "Authorization: Token <value>".
const KeyCourtListener = "courtlistener-api-key"

// EnvCourtListener is the environment variable consulted when no secret file
// or flag provides the CourtListener token.
const EnvCourtListener = "COURTLISTENER_API_KEY"

// Resolve picks a secret value by precedence: an explicit override (usually a
// CLI flag) wins, then the loaded secret for key, then the environment
// variable env. Returns "" when none is set.
func Resolve(loaded map[string]string, key, env, override string) string {
	if override != "" {
		return override
	}
	if v, ok := loaded[key]; ok {
		return v
	}
	return os.Getenv(env)
}

// CourtListenerToken resolves the CourtListener API token from the standard
// sources.
func CourtListenerToken(loaded map[string]string, override string) string {
	return Resolve(loaded, KeyCourtListener, EnvCourtListener, override)
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
