package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Parse reads so a test only sees the ones it
// sets itself.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SERVER_ADDRESS", "DATABASE_DSN", "CONFIG",
		"API_SECRET", "TOKEN_HOUR_LIFESPAN", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func writeTempJSON(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	options, err := Parse([]string{"-s", "secretKey", "-t", "24"})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", options.Port)
	assert.Equal(t, "", options.DatabaseDSN)
	assert.Equal(t, "secretKey", options.TokenSecret)
	assert.Equal(t, 24, options.TokenLifetimeHours)
	assert.Equal(t, "info", options.LogLevel)
	assert.Equal(t, "config.json", options.Config)
}

func TestParse_Flags(t *testing.T) {
	clearEnv(t)

	options, err := Parse([]string{
		"-a", ":9090",
		"-d", "postgres://localhost/tasks",
		"-s", "secretKey",
		"-t", "1",
		"-l", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", options.Port)
	assert.Equal(t, "postgres://localhost/tasks", options.DatabaseDSN)
	assert.Equal(t, "secretKey", options.TokenSecret)
	assert.Equal(t, 1, options.TokenLifetimeHours)
	assert.Equal(t, "debug", options.LogLevel)
}

func TestParse_EnvOverridesFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("DATABASE_DSN", "postgres://env/tasks")
	t.Setenv("API_SECRET", "envSecret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "48")
	t.Setenv("LOG_LEVEL", "error")

	options, err := Parse([]string{
		"-a", ":9090",
		"-d", "postgres://flag/tasks",
		"-s", "flagSecret",
		"-t", "1",
		"-l", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, ":7070", options.Port)
	assert.Equal(t, "postgres://env/tasks", options.DatabaseDSN)
	assert.Equal(t, "envSecret", options.TokenSecret)
	assert.Equal(t, 48, options.TokenLifetimeHours)
	assert.Equal(t, "error", options.LogLevel)
}

func TestParse_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, `{
		"Port": ":6060",
		"DatabaseDSN": "postgres://file/tasks",
		"TokenSecret": "fileSecret",
		"TokenLifetimeHours": 12,
		"LogLevel": "warn"
	}`)

	t.Run("via flag", func(t *testing.T) {
		options, err := Parse([]string{"-c", path})
		require.NoError(t, err)

		assert.Equal(t, ":6060", options.Port)
		assert.Equal(t, "postgres://file/tasks", options.DatabaseDSN)
		assert.Equal(t, "fileSecret", options.TokenSecret)
		assert.Equal(t, 12, options.TokenLifetimeHours)
		assert.Equal(t, "warn", options.LogLevel)
	})

	t.Run("via CONFIG env", func(t *testing.T) {
		t.Setenv("CONFIG", path)

		options, err := Parse([]string{})
		require.NoError(t, err)

		assert.Equal(t, ":6060", options.Port)
		assert.Equal(t, "fileSecret", options.TokenSecret)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("SERVER_ADDRESS", ":5050")

		options, err := Parse([]string{"-c", path})
		require.NoError(t, err)

		assert.Equal(t, ":5050", options.Port)
		assert.Equal(t, "fileSecret", options.TokenSecret)
	})

	t.Run("file wins over flags", func(t *testing.T) {
		options, err := Parse([]string{"-c", path, "-a", ":9090", "-s", "flagSecret"})
		require.NoError(t, err)

		assert.Equal(t, ":6060", options.Port)
		assert.Equal(t, "fileSecret", options.TokenSecret)
	})
}

func TestParse_ConfigFileInvalid(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, `{ this is not valid json`)

	_, err := Parse([]string{"-c", path})
	assert.Error(t, err)
}

func TestParse_ConfigFileMissingIsIgnored(t *testing.T) {
	clearEnv(t)

	options, err := Parse([]string{"-c", "no-such-file.json", "-s", "secretKey", "-t", "24"})
	require.NoError(t, err)
	assert.Equal(t, "secretKey", options.TokenSecret)
}

func TestParse_SecretMissing(t *testing.T) {
	clearEnv(t)

	_, err := Parse([]string{"-t", "24"})
	assert.ErrorIs(t, err, ErrSecretMissing)
}

func TestParse_LifetimeMissing(t *testing.T) {
	clearEnv(t)

	_, err := Parse([]string{"-s", "secretKey"})
	assert.ErrorIs(t, err, ErrLifetimeMissing)
}

func TestParse_LifetimeInvalid(t *testing.T) {
	clearEnv(t)

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("TOKEN_HOUR_LIFESPAN", "soon")

		_, err := Parse([]string{"-s", "secretKey"})
		assert.ErrorIs(t, err, ErrLifetimeInvalid)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := Parse([]string{"-s", "secretKey", "-t", "-3"})
		assert.ErrorIs(t, err, ErrLifetimeInvalid)
	})
}

func TestParse_DotEnv(t *testing.T) {
	// godotenv never overrides variables that are already present, so the
	// ones under test must be truly unset rather than blanked.
	for _, name := range []string{"API_SECRET", "TOKEN_HOUR_LIFESPAN"} {
		if value, ok := os.LookupEnv(name); ok {
			name, value := name, value
			t.Cleanup(func() { os.Setenv(name, value) })
			require.NoError(t, os.Unsetenv(name))
		}
	}
	for _, name := range []string{"SERVER_ADDRESS", "DATABASE_DSN", "CONFIG", "LOG_LEVEL"} {
		t.Setenv(name, "")
	}

	dir := t.TempDir()
	envFile := "API_SECRET=dotenvSecret\nTOKEN_HOUR_LIFESPAN=6\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	options, err := Parse([]string{})
	require.NoError(t, err)

	assert.Equal(t, "dotenvSecret", options.TokenSecret)
	assert.Equal(t, 6, options.TokenLifetimeHours)
}
