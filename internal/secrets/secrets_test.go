// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AnthropicAPIKey, "  sk-ant-abc  \n")
				writeFile(t, dir, SlackWebhookURL, "https://hooks.slack.com/services/T/B/X\n")
				return dir
			},
			want: map[string]string{
				AnthropicAPIKey: "sk-ant-abc",
				SlackWebhookURL: "https://hooks.slack.com/services/T/B/X",
			},
		},
		{
			name: "nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AnthropicAPIKey, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{AnthropicAPIKey: "valid-key"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, SlackWebhookURL, "https://example.com/hook")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{SlackWebhookURL: "https://example.com/hook"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain", "x")

	_, err := Load(filepath.Join(dir, "plain"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secrets: read dir")
}

func TestLookup(t *testing.T) {
	s := map[string]string{AnthropicAPIKey: "from-file"}

	t.Setenv("PAPER_DIGEST_TEST_KEY", "")
	assert.Equal(t, "from-file", Lookup(s, "PAPER_DIGEST_TEST_KEY", AnthropicAPIKey))

	t.Setenv("PAPER_DIGEST_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", Lookup(s, "PAPER_DIGEST_TEST_KEY", AnthropicAPIKey))

	assert.Equal(t, "", Lookup(nil, "PAPER_DIGEST_UNSET_KEY", "missing"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
