package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"ALMANAC_LOG_LEVEL",
	"ALMANAC_LOG_FORMAT",
	"ALMANAC_STRATEGY",
	"ALMANAC_OVERLAP_POLICY",
	"ALMANAC_WORKERS",
	"ALMANAC_EXPECT_STAGES",
}

// clearEnvVars unsets every ALMANAC_* variable for the test and restores
// the previous values afterwards.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		if old, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(name) })
		}
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultStrategy, cfg.Strategy)
	assert.Equal(t, DefaultOverlapPolicy, cfg.OverlapPolicy)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Zero(t, cfg.ExpectStages)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ALMANAC_LOG_LEVEL", "DEBUG")
	t.Setenv("ALMANAC_LOG_FORMAT", "json")
	t.Setenv("ALMANAC_STRATEGY", "fixpoint")
	t.Setenv("ALMANAC_OVERLAP_POLICY", "first")
	t.Setenv("ALMANAC_WORKERS", "8")
	t.Setenv("ALMANAC_EXPECT_STAGES", "7")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "fixpoint", cfg.Strategy)
	assert.Equal(t, "first", cfg.OverlapPolicy)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 7, cfg.ExpectStages)

	opts, err := cfg.RemapOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ALMANAC_STRATEGY", "quantum")

	_, err := LoadFromEnv()
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv("ALMANAC_STRATEGY", "sweep")
	t.Setenv("ALMANAC_WORKERS", "many")
	_, err = LoadFromEnv()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ALMANAC_STRATEGY=fixpoint\nALMANAC_WORKERS=2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fixpoint", cfg.Strategy)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_MissingDotEnvIsSkipped(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy, cfg.Strategy)
}

func TestValidate(t *testing.T) {
	base := Config{LogFormat: "console", Strategy: "sweep", OverlapPolicy: "reject"}
	require.NoError(t, base.Validate())

	bad := base
	bad.LogFormat = "xml"
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = base
	bad.OverlapPolicy = "last"
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = base
	bad.Workers = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)

	bad = base
	bad.ExpectStages = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalid)
}
