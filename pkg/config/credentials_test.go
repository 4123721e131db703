package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDotenvFileToken(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		wantToken string
		wantFound bool
	}{
		{
			name:      "Plain assignment",
			content:   "GITHUB_TOKEN=abc123\n",
			wantToken: "abc123",
			wantFound: true,
		},
		{
			name:      "Comments and other keys are ignored",
			content:   "# local settings\nOTHER=1\n\nGITHUB_TOKEN=ghp_xyz\n",
			wantToken: "ghp_xyz",
			wantFound: true,
		},
		{
			name:      "Quoted value",
			content:   "GITHUB_TOKEN=\"quoted\"\n",
			wantToken: "quoted",
			wantFound: true,
		},
		{
			name:      "Malformed line before the token",
			content:   "some garbage line\nGITHUB_TOKEN=abc\n",
			wantToken: "abc",
			wantFound: true,
		},
		{
			name:      "Malformed line after the token",
			content:   "GITHUB_TOKEN=abc\nnot valid = = \"\n",
			wantToken: "abc",
			wantFound: true,
		},
		{
			name:      "Placeholder line is skipped for a later token",
			content:   "GITHUB_TOKEN=your_token_here\nGITHUB_TOKEN=real\n",
			wantToken: "real",
			wantFound: true,
		},
		{
			name:      "Windows line endings",
			content:   "# token\r\nGITHUB_TOKEN=crlf\r\n",
			wantToken: "crlf",
			wantFound: true,
		},
		{
			name:      "Placeholder is rejected",
			content:   "GITHUB_TOKEN=your_token_here\n",
			wantFound: false,
		},
		{
			name:      "Empty value",
			content:   "GITHUB_TOKEN=\n",
			wantFound: false,
		},
		{
			name:      "Key absent",
			content:   "SOMETHING_ELSE=value\n",
			wantFound: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := DotenvFile{Path: writeEnvFile(t, tc.content)}

			token, found, err := source.Token()

			require.NoError(t, err)
			assert.Equal(t, tc.wantFound, found)
			assert.Equal(t, tc.wantToken, token)
		})
	}

	t.Run("Missing file is not an error", func(t *testing.T) {
		source := DotenvFile{Path: filepath.Join(t.TempDir(), "missing.env")}

		token, found, err := source.Token()

		assert.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, token)
	})
}

func TestCredentialResolverPriority(t *testing.T) {
	t.Run("Flag wins over dotfile and environment", func(t *testing.T) {
		t.Setenv(TokenKey, "from-env")
		envFile := writeEnvFile(t, "GITHUB_TOKEN=from-file\n")

		token := NewCredentialResolver(DefaultSources("from-flag", envFile)...).Resolve()

		assert.Equal(t, "from-flag", token)
	})

	t.Run("Dotfile wins over environment", func(t *testing.T) {
		t.Setenv(TokenKey, "from-env")
		envFile := writeEnvFile(t, "GITHUB_TOKEN=from-file\n")

		token := NewCredentialResolver(DefaultSources("", envFile)...).Resolve()

		assert.Equal(t, "from-file", token)
	})

	t.Run("Placeholder in dotfile falls back to environment", func(t *testing.T) {
		t.Setenv(TokenKey, "from-env")
		envFile := writeEnvFile(t, "GITHUB_TOKEN=your_token_here\n")

		token := NewCredentialResolver(DefaultSources("", envFile)...).Resolve()

		assert.Equal(t, "from-env", token)
	})

	t.Run("No token anywhere", func(t *testing.T) {
		t.Setenv(TokenKey, "")
		envFile := filepath.Join(t.TempDir(), "missing.env")

		token := NewCredentialResolver(DefaultSources("", envFile)...).Resolve()

		assert.Empty(t, token)
	})

	t.Run("Unreadable source is skipped", func(t *testing.T) {
		t.Setenv(TokenKey, "from-env")
		// A directory cannot be parsed as a dotfile
		dir := t.TempDir()

		token := NewCredentialResolver(DotenvFile{Path: dir}, EnvVar{Key: TokenKey}).Resolve()

		assert.Equal(t, "from-env", token)
	})
}
