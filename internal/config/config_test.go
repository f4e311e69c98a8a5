package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[backend]
url = "http://api.kelale.test"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "http://api.kelale.test", cfg.Backend.URL)
	assert.Equal(t, 50, cfg.Booking.DefaultTotalSeats)
	assert.Equal(t, "cash", cfg.Booking.DefaultPaymentMethod)
	assert.Equal(t, "X-Kelale-User", cfg.Session.UserHeader)
}

func TestLoad_OverridesSeatFallback(t *testing.T) {
	path := writeConfig(t, `
[booking]
default_total_seats = 61
default_payment_method = "mobile"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 61, cfg.Booking.DefaultTotalSeats)
	assert.Equal(t, "mobile", cfg.Booking.DefaultPaymentMethod)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero seats", "[booking]\ndefault_total_seats = 0\n"},
		{"unknown payment", "[booking]\ndefault_payment_method = \"crypto\"\n"},
		{"bad port", "[server]\nhttp_port = 70000\n"},
		{"empty backend", "[backend]\nurl = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "kelale", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=kelale sslmode=disable", d.DSN())
}
