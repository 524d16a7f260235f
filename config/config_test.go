package config

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "token", cfg.CookieName)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.ClusterEnabled)
	assert.Equal(t, RoleSupervisor, cfg.Role)
	assert.False(t, cfg.IsWorker())
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins())
	assert.Equal(t, runtime.NumCPU(), cfg.WorkerCount())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*testing.T, *Config)
	}{
		{
			name:    "worker role",
			envVars: map[string]string{"APP_ROLE": "worker", "WORKERS": "3"},
			expected: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsWorker())
				assert.Equal(t, 3, cfg.WorkerCount())
			},
		},
		{
			name:    "store driver is case insensitive",
			envVars: map[string]string{"STORE_DRIVER": "Postgres"},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StorePostgres, cfg.StoreDriver)
			},
		},
		{
			name:    "invalid values fall back to defaults",
			envVars: map[string]string{"SESSION_TTL": "soon", "COOKIE_SECURE": "maybe", "WORKERS": "many"},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Hour, cfg.SessionTTL)
				assert.True(t, cfg.CookieSecure)
				assert.Equal(t, 0, cfg.Workers)
			},
		},
		{
			name:    "verification link uses trimmed base url",
			envVars: map[string]string{"PUBLIC_BASE_URL": "https://api.example.com/"},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.example.com/api/public/emailverify/abc", cfg.VerifyEmailURL("abc"))
			},
		},
		{
			name:    "cors origins are split and trimmed",
			envVars: map[string]string{"CORS_ALLOWED_ORIGINS": " https://a.example , ,https://b.example"},
			expected: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}
			tt.expected(t, Load())
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}

func TestValidate_JWTSecret(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr bool
	}{
		{"dev default", "development", DevJWTSecret, false},
		{"production default", "production", DevJWTSecret, true},
		{"staging empty", "staging", "", true},
		{"production set", "production", "a-long-random-secret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Env: tt.env, JWTSecret: tt.secret}
			if tt.wantErr {
				assert.ErrorIs(t, cfg.Validate(), ErrInsecureJWTSecret)
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoad_ProductionWithoutSecretIsInvalid(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	assert.ErrorIs(t, Load().Validate(), ErrInsecureJWTSecret)
}
