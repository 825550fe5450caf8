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
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	Admin      AdminConfig      `toml:"admin"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Tracing    TracingConfig    `toml:"tracing"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	CORS       CORSConfig       `toml:"cors"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к БД
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // mysql или postgres
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

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки JWT
type AuthConfig struct {
	JWTSecret        string `toml:"jwt_secret"`
	RefreshSecret    string `toml:"refresh_secret"`
	AccessTTLMinutes int    `toml:"access_ttl_minutes"`
	RefreshTTLHours  int    `toml:"refresh_ttl_hours"`
	CookieSecure     bool   `toml:"cookie_secure"`
}

// AdminConfig служебная учетная запись администратора
type AdminConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// RedisConfig хранилище refresh токенов. Если выключено, токены живут в памяти процесса.
type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// KafkaConfig публикация событий жизненного цикла заявок
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// TracingConfig экспорт трейсов OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// SchedulingConfig бизнес-правила расписания
type SchedulingConfig struct {
	Timezone          string   `toml:"timezone"`
	DailySlots        []string `toml:"daily_slots"`
	SlotCapacity      int      `toml:"slot_capacity"`
	EditLeadTimeHours int      `toml:"edit_lead_time_hours"`
	VanBufferMinutes  int      `toml:"van_buffer_minutes"`
	DefaultDuration   string   `toml:"default_duration"`
}

// CORSConfig настройки CORS для веб-клиента
type CORSConfig struct {
	AllowedOrigins   []string `toml:"allowed_origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAgeSeconds    int      `toml:"max_age_seconds"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies"` // IP или CIDR, от которых принимается X-Forwarded-For
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          "mysql",
			Host:            "localhost",
			Port:            3306,
			DBName:          "moving",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc_moving_service",
		},
		Auth: AuthConfig{
			AccessTTLMinutes: 60,
			RefreshTTLHours:  24 * 7,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "moving:refresh:",
		},
		Kafka: KafkaConfig{
			Topic: "moving.appointments",
		},
		Tracing: TracingConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Scheduling: SchedulingConfig{
			Timezone:          "UTC",
			DailySlots:        []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
			SlotCapacity:      5,
			EditLeadTimeHours: 48,
			VanBufferMinutes:  60,
			DefaultDuration:   "01:00",
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAgeSeconds:    600,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 120,
			Burst:             30,
		},
	}
}

// Load читает конфигурацию из TOML файла, затем .env (если есть), затем переменные окружения.
// Переменные окружения имеют наивысший приоритет.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.RefreshSecret, "JWT_REFRESH_SECRET")
	setString(&c.Admin.Username, "ADMIN_USER")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Scheduling.Timezone, "TZ_LOCATION")
	setString(&c.Logs.Level, "LOG_LEVEL")

	if v, ok := lookup("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(v)
	}
	if v, ok := lookup("RATE_LIMIT_TRUSTED_PROXIES"); ok {
		c.RateLimit.TrustedProxies = splitList(v)
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		c.CORS.AllowedOrigins = splitList(v)
	}

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" || c.Auth.RefreshSecret == "" {
		return fmt.Errorf("%w: jwt secrets are required", ErrInvalidConfig)
	}

	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("%w: admin credentials are required", ErrInvalidConfig)
	}

	if c.Database.MaxOpenConns <= 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("%w: invalid connection pool size", ErrInvalidConfig)
	}

	if c.Scheduling.SlotCapacity <= 0 {
		return fmt.Errorf("%w: slot_capacity must be positive", ErrInvalidConfig)
	}

	if len(c.Scheduling.DailySlots) == 0 {
		return fmt.Errorf("%w: daily_slots must not be empty", ErrInvalidConfig)
	}

	if _, err := c.Scheduling.Rules(); err != nil {
		return err
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka brokers are required when kafka is enabled", ErrInvalidConfig)
	}

	return nil
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	}

	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", d.Host, d.Port)
	mc.DBName = d.DBName
	mc.ParseTime = true
	// RowsAffected считает найденные строки, а не изменённые
	mc.ClientFoundRows = true
	return mc.FormatDSN()
}

// Location возвращает временную зону, в которой интерпретируются day и schedule
func (s SchedulingConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// EditLeadTime минимальный запас времени до начала заявки для её изменения
func (s SchedulingConfig) EditLeadTime() time.Duration {
	return time.Duration(s.EditLeadTimeHours) * time.Hour
}

// VanBuffer буфер между заявками одного фургона
func (s SchedulingConfig) VanBuffer() time.Duration {
	return time.Duration(s.VanBufferMinutes) * time.Minute
}

// Rules собирает бизнес-правила расписания для сценариев
func (s SchedulingConfig) Rules() (domain.Rules, error) {
	rules := domain.DefaultRules()

	loc, err := s.Location()
	if err != nil {
		return rules, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	rules.Location = loc

	if len(s.DailySlots) > 0 {
		slots := make([]types.TimeString, 0, len(s.DailySlots))
		for _, raw := range s.DailySlots {
			ts, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return rules, fmt.Errorf("%w: daily slot %q: %v", ErrInvalidConfig, raw, err)
			}
			slots = append(slots, ts)
		}
		rules.DailySlots = slots
	}

	if s.SlotCapacity > 0 {
		rules.SlotCapacity = s.SlotCapacity
	}
	if s.EditLeadTimeHours > 0 {
		rules.EditLeadTime = s.EditLeadTime()
	}
	if s.VanBufferMinutes > 0 {
		rules.VanBuffer = s.VanBuffer()
	}
	if s.DefaultDuration != "" {
		d, err := types.NewTimeStringFromString(s.DefaultDuration)
		if err != nil {
			return rules, fmt.Errorf("%w: default_duration: %v", ErrInvalidConfig, err)
		}
		rules.DefaultDuration = d
	}

	return rules, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
	}
	*dst = n
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
