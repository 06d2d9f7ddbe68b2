package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig(t *testing.T) *Config {
	t.Helper()

	v := viper.New()
	applyDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	cfg.JWT.Secret = "test-secret"
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultTestConfig(t)

	assert.Equal(t, "audicob-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "audicob", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "audicob-backend", cfg.JWT.Issuer)
	assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
	assert.Equal(t, "0.015", cfg.Penalty.MonthlyRate)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestValidate_Defaults(t *testing.T) {
	cfg := defaultTestConfig(t)
	assert.NoError(t, cfg.validate())
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.JWT.Secret = ""

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.App.Port = 0

	assert.Error(t, cfg.validate())
}

func TestValidate_IdleExceedsOpen(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.Database.MaxIdleConns = 50

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_idle_conns")
}

func TestValidate_SamplingRatioBounds(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.Telemetry.SamplingRatio = 1.5

	assert.Error(t, cfg.validate())
}

func TestValidate_ProductionHardening(t *testing.T) {
	productionBase := func() *Config {
		cfg := defaultTestConfig(t)
		cfg.App.Environment = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "s3cret"
		cfg.Database.SSLMode = "require"
		cfg.Cookie.Secure = true
		return cfg
	}

	t.Run("valid production config passes", func(t *testing.T) {
		assert.NoError(t, productionBase().validate())
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		cfg := productionBase()
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("missing db password rejected", func(t *testing.T) {
		cfg := productionBase()
		cfg.Database.Password = ""
		assert.Error(t, cfg.validate())
	})

	t.Run("sslmode disable rejected", func(t *testing.T) {
		cfg := productionBase()
		cfg.Database.SSLMode = "disable"
		assert.Error(t, cfg.validate())
	})

	t.Run("insecure cookie rejected", func(t *testing.T) {
		cfg := productionBase()
		cfg.Cookie.Secure = false
		assert.Error(t, cfg.validate())
	})

	t.Run("wildcard cors rejected", func(t *testing.T) {
		cfg := productionBase()
		cfg.HTTP.CORSAllowedOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "audicob",
		Password: "p@ss/word",
		DBName:   "audicob",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped.
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := defaultTestConfig(t)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
}
