package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 5, cfg.WordLength)
	assert.Equal(t, 3, cfg.SuggestionLimit)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "quordle.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
port: "8080"
openers: [slate, audio]
suggestion_limit: 5
grey_mode: strict
redis_ttl: 30m
`), 0o644))

	t.Setenv("CONFIG_FILE", p)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_TTL", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"slate", "audio"}, cfg.Openers)
	assert.Equal(t, 5, cfg.SuggestionLimit)
	assert.Equal(t, "strict", cfg.GreyMode)
	assert.Equal(t, 30*time.Minute, cfg.RedisTTL)
}

func TestMergeEnv(t *testing.T) {
	env := map[string]string{
		"OPENERS":           " Crane, ,slant ",
		"WORD_LENGTH":       "6",
		"JWT_EXPIRES_HOURS": "2",
		"REDIS_TTL":         "90s",
		"WORDS_DB":          "./data/words.db",
	}
	cfg := Default()
	require.NoError(t, cfg.mergeEnv(func(k string) string { return env[k] }))
	assert.Equal(t, []string{"crane", "slant"}, cfg.Openers)
	assert.Equal(t, 6, cfg.WordLength)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 90*time.Second, cfg.RedisTTL)
	assert.Equal(t, "./data/words.db", cfg.WordsDB)
}

func TestMergeEnvRejectsBadNumbers(t *testing.T) {
	for k, v := range map[string]string{
		"SUGGESTION_LIMIT":  "zero",
		"WORD_LENGTH":       "-1",
		"JWT_EXPIRES_HOURS": "x",
		"REDIS_TTL":         "soon",
	} {
		cfg := Default()
		err := cfg.mergeEnv(func(key string) string {
			if key == k {
				return v
			}
			return ""
		})
		assert.Error(t, err, k)
	}
}

func TestLoadMissingYAML(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
