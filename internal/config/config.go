package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/PrismCRM/internal/domain"
	"github.com/m04kA/PrismCRM/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Webhooks WebhooksConfig `toml:"webhooks"`
}

type ServerConfig struct {
	HTTPPort           int      `toml:"http_port"`
	ReadTimeout        int      `toml:"read_timeout"`     // секунды
	WriteTimeout       int      `toml:"write_timeout"`    // секунды
	IdleTimeout        int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout    int      `toml:"shutdown_timeout"` // секунды
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(d.Host), d.Port, dsnValue(d.User), dsnValue(d.Password), dsnValue(d.DBName), dsnValue(d.SSLMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// dsnValue экранирует значение по правилам libpq для формата key=value
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n'\\") {
		return v
	}
	return "'" + dsnEscaper.Replace(v) + "'"
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	UsersFile      string  `toml:"users_file"`
	DefaultRole    string  `toml:"default_role"`
	SessionTTL     int     `toml:"session_ttl"`      // минуты
	LoginRateLimit float64 `toml:"login_rate_limit"` // запросов в секунду на клиента
	LoginRateBurst int     `toml:"login_rate_burst"`
	WatchUsersFile bool    `toml:"watch_users_file"`
}

type BookingConfig struct {
	Buildings      []string           `toml:"buildings"`
	TimeSlots      []types.TimeString `toml:"time_slots"`
	WindowDays     int                `toml:"window_days"`
	ClosedWeekdays []string           `toml:"closed_weekdays"`
	Timezone       string             `toml:"timezone"`
}

type WebhooksConfig struct {
	RentSyncSecret string  `toml:"rentsync_secret"`
	RateLimit      float64 `toml:"rate_limit"`
	RateBurst      int     `toml:"rate_burst"`
}

// Load читает .env (если есть), TOML файл, применяет переменные окружения,
// значения по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Redis.Address == "" {
		c.Redis.Address = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "prism_crm"
	}

	if c.Auth.UsersFile == "" {
		c.Auth.UsersFile = "users.json"
	}
	if c.Auth.DefaultRole == "" {
		c.Auth.DefaultRole = "admin"
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 12 * 60
	}
	if c.Auth.LoginRateLimit == 0 {
		c.Auth.LoginRateLimit = 1
	}
	if c.Auth.LoginRateBurst == 0 {
		c.Auth.LoginRateBurst = 5
	}

	if len(c.Booking.Buildings) == 0 {
		c.Booking.Buildings = []string{"80 Bond St E", "100 Bond St E"}
	}
	if len(c.Booking.TimeSlots) == 0 {
		for _, s := range []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"} {
			c.Booking.TimeSlots = append(c.Booking.TimeSlots, types.MustTimeString(s))
		}
	}
	if c.Booking.WindowDays == 0 {
		c.Booking.WindowDays = 14
	}
	if c.Booking.ClosedWeekdays == nil {
		c.Booking.ClosedWeekdays = []string{"Sunday"}
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "America/Toronto"
	}

	if c.Webhooks.RateLimit == 0 {
		c.Webhooks.RateLimit = 20
	}
	if c.Webhooks.RateBurst == 0 {
		c.Webhooks.RateBurst = 40
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("%w: auth.session_ttl must be positive", ErrInvalidConfig)
	}

	if len(c.Booking.Buildings) == 0 {
		return fmt.Errorf("%w: booking.buildings is empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Booking.Buildings))
	for _, b := range c.Booking.Buildings {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("%w: booking.buildings contains an empty name", ErrInvalidConfig)
		}
		if _, dup := seen[b]; dup {
			return fmt.Errorf("%w: duplicate building %q", ErrInvalidConfig, b)
		}
		seen[b] = struct{}{}
	}

	for _, slot := range c.Booking.TimeSlots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: booking.time_slots: %v", ErrInvalidConfig, err)
		}
	}
	if c.Booking.WindowDays < 1 || c.Booking.WindowDays > 365 {
		return fmt.Errorf("%w: booking.window_days must be in [1, 365]", ErrInvalidConfig)
	}
	if _, err := c.Booking.ClosedDays(); err != nil {
		return err
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	return nil
}

// ClosedDays переводит названия дней недели в time.Weekday
func (b BookingConfig) ClosedDays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(b.ClosedWeekdays))
	for _, name := range b.ClosedWeekdays {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
		days = append(days, day)
	}
	return days, nil
}

// Location часовой пояс, в котором считается "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return loc, nil
}

// Schedule собирает расписание туров из конфигурации
func (b BookingConfig) Schedule() (*domain.TourSchedule, error) {
	closed, err := b.ClosedDays()
	if err != nil {
		return nil, err
	}
	loc, err := b.Location()
	if err != nil {
		return nil, err
	}
	return &domain.TourSchedule{
		Buildings:      b.Buildings,
		TimeSlots:      b.TimeSlots,
		WindowDays:     b.WindowDays,
		ClosedWeekdays: closed,
		Location:       loc,
	}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// applyEnv переопределяет значения из переменных окружения
func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &cfg.Database.Host)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.DBName)
	setString("REDIS_ADDR", &cfg.Redis.Address)
	setString("LOG_LEVEL", &cfg.Logs.Level)
	setString("USERS_FILE", &cfg.Auth.UsersFile)
	setString("RENTSYNC_SECRET", &cfg.Webhooks.RentSyncSecret)

	if err := setInt("DB_PORT", &cfg.Database.Port); err != nil {
		return err
	}
	if err := setInt("HTTP_PORT", &cfg.Server.HTTPPort); err != nil {
		return err
	}
	return nil
}
