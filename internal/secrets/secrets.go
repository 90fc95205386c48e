// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed
// contents are the value.
package secrets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Key files recognised by the digest.
const (
	AnthropicAPIKey = "anthropic-api-key"
	SlackWebhookURL = "slack-webhook-url"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Unreadable files are
// logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "secrets: read dir %s", dir)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			zap.L().Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Lookup returns the first non-empty value among the environment variable
// env and the secret file key.
func Lookup(secrets map[string]string, env, key string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return secrets[key]
}
