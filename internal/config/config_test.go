package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
user = "admin"
password = "rootpassword"
dbname = "prism_crm"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, []string{"80 Bond St E", "100 Bond St E"}, cfg.Booking.Buildings)
	require.Len(t, cfg.Booking.TimeSlots, 7)
	assert.Equal(t, "09:00", cfg.Booking.TimeSlots[0].String())
	assert.Equal(t, "16:00", cfg.Booking.TimeSlots[6].String())
	assert.Equal(t, 14, cfg.Booking.WindowDays)
	assert.Equal(t, "admin", cfg.Auth.DefaultRole)

	days, err := cfg.Booking.ClosedDays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Sunday}, days)

	schedule, err := cfg.Booking.Schedule()
	require.NoError(t, err)
	assert.Equal(t, "America/Toronto", schedule.Location.String())
	assert.True(t, schedule.HasBuilding("100 Bond St E"))
	assert.Len(t, schedule.AvailableDates(time.Now()), 14)

	assert.Equal(t,
		"host=localhost port=5432 user=admin password=rootpassword dbname=prism_crm sslmode=disable",
		cfg.Database.DSN())
}

func TestDSNQuotesSpecialValues(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "admin",
		Password: `p@ss w'rd\x`,
		DBName:   "prism crm",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Equal(t,
		`host=localhost port=5432 user=admin password='p@ss w\'rd\\x' dbname='prism crm' sslmode=disable`,
		dsn)

	_, err := pq.NewConnector(dsn)
	assert.NoError(t, err)

	d.Password = ""
	assert.Contains(t, d.DSN(), "password='' ")
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[booking]
buildings = ["North Tower"]
time_slots = ["10:30", "12:00"]
window_days = 7
closed_weekdays = ["Saturday", "sunday"]
timezone = "UTC"

[auth]
session_ttl = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"North Tower"}, cfg.Booking.Buildings)
	assert.Equal(t, "10:30", cfg.Booking.TimeSlots[0].String())
	assert.Equal(t, 7, cfg.Booking.WindowDays)
	assert.Equal(t, 30, cfg.Auth.SessionTTL)

	days, err := cfg.Booking.ClosedDays()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
`)
	t.Setenv("DB_HOST", "postgres.internal")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("RENTSYNC_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres.internal", cfg.Database.Host)
	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, "s3cret", cfg.Webhooks.RentSyncSecret)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad port", body: "[server]\nhttp_port = 70000\n"},
		{name: "bad slot", body: "[booking]\ntime_slots = [\"25:00\"]\n"},
		{name: "bad weekday", body: "[booking]\nclosed_weekdays = [\"Funday\"]\n"},
		{name: "bad timezone", body: "[booking]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "duplicate building", body: "[booking]\nbuildings = [\"A\", \"A\"]\n"},
		{name: "bad window", body: "[booking]\nwindow_days = 400\n"},
		{name: "non numeric env", body: "", env: map[string]string{"DB_PORT": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
