package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, "carmitra", cfg.PostgresDB)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.EventsEnabled())
	assert.True(t, cfg.ExposeErrorDetails())
	assert.Equal(t, 500*time.Millisecond, cfg.SlowQueryThreshold())
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.ExposeErrorDetails())
}

func TestLoad_KafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.EventsEnabled())
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidPostgresPort(t *testing.T) {
	t.Setenv("POSTGRES_PORT", "70000")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid postgres port")
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "2.0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE must be between")
}

func TestLoad_MinConnsAboveMax(t *testing.T) {
	setEnvs(t, map[string]string{
		"DB_MAX_CONNS": "2",
		"DB_MIN_CONNS": "10",
	})

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds DB_MAX_CONNS")
}

func TestLoad_UnparsablePort(t *testing.T) {
	t.Setenv("HTTP_PORT", "abc")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate_RequiredPostgresSettings(t *testing.T) {
	base := func() *Config {
		return &Config{HTTPPort: 3001, PostgresPort: 5432, PostgresHost: "db", PostgresUser: "u", PostgresDB: "d", DBMaxConns: 5, OTELSampleRate: 1}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.PostgresHost = ""
	assert.EqualError(t, c.Validate(), "POSTGRES_HOST is required")

	c = base()
	c.PostgresUser = ""
	assert.EqualError(t, c.Validate(), "POSTGRES_USER is required")

	c = base()
	c.PostgresDB = ""
	assert.EqualError(t, c.Validate(), "POSTGRES_DB is required")
}

func TestConfig_Postgres(t *testing.T) {
	setEnvs(t, map[string]string{
		"POSTGRES_HOST":                 "db.internal",
		"POSTGRES_PASSWORD":             "p@ss",
		"DB_MAX_CONN_LIFETIME_MINUTES":  "10",
		"DB_MAX_CONN_IDLE_TIME_MINUTES": "2",
	})

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Equal(t, "p@ss", pg.Password)
	assert.Equal(t, int32(25), pg.MaxConns)
	assert.Equal(t, 10*time.Minute, pg.MaxConnLifetime)
	assert.Equal(t, 2*time.Minute, pg.MaxConnIdleTime)
}

func TestLoadSeed(t *testing.T) {
	cfg, err := LoadSeed()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.APIURL)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)

	t.Setenv("SEED_API_URL", "http://api:8080")
	t.Setenv("SEED_TIMEOUT", "-1s")
	_, err = LoadSeed()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEED_TIMEOUT must be positive")
}
