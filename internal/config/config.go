package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	APIURL      string        `mapstructure:"VET_API_URL"`
	APIToken    string        `mapstructure:"VET_API_TOKEN"`
	HTTPTimeout time.Duration `mapstructure:"VET_HTTP_TIMEOUT"`

	// JWTSecret: secreto HMAC del backend. Vacío => cada token se confirma con GET /auth/me.
	JWTSecret string `mapstructure:"VET_JWT_SECRET"`

	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	CacheBackend   string        `mapstructure:"CACHE_BACKEND"`
	CacheStaleTime time.Duration `mapstructure:"CACHE_STALE_TIME"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`

	ClinicTimezone     string        `mapstructure:"CLINIC_TIMEZONE"`
	AnticipacionMinima time.Duration `mapstructure:"AGENDA_ANTICIPACION_MINIMA"`
	UmbralDuplicados   float64       `mapstructure:"DUPLICADOS_UMBRAL"`

	AllowAllCapabilities bool `mapstructure:"ALLOW_ALL_CAPABILITIES"`
}

var keys = []string{
	"VET_API_URL", "VET_API_TOKEN", "VET_HTTP_TIMEOUT", "VET_JWT_SECRET",
	"PORT", "ENV",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"CACHE_BACKEND", "CACHE_STALE_TIME", "REDIS_ADDR", "REDIS_PASSWORD",
	"CLINIC_TIMEZONE", "AGENDA_ANTICIPACION_MINIMA", "DUPLICADOS_UMBRAL",
	"ALLOW_ALL_CAPABILITIES",
}

// Load lee defaults, un .env opcional en el directorio actual y variables de entorno.
// envFile (opcional) se carga antes con godotenv y debe existir.
func Load(envFile string) (*Config, error) {
	if envFile = strings.TrimSpace(envFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("VET_API_URL", "http://localhost:8080/api")
	v.SetDefault("VET_HTTP_TIMEOUT", "10s")
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "vetclinic")
	v.SetDefault("CACHE_BACKEND", CacheMemory)
	v.SetDefault("CACHE_STALE_TIME", "30s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CLINIC_TIMEZONE", "America/Bogota")
	v.SetDefault("AGENDA_ANTICIPACION_MINIMA", "2h")
	v.SetDefault("DUPLICADOS_UMBRAL", 0.7)
	v.SetDefault("ALLOW_ALL_CAPABILITIES", false)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("VET_API_URL is required")
	}
	switch c.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheRedis, c.CacheBackend)
	}
	if c.UmbralDuplicados <= 0 || c.UmbralDuplicados > 1 {
		return fmt.Errorf("DUPLICADOS_UMBRAL must be in (0,1], got %v", c.UmbralDuplicados)
	}
	if _, err := time.LoadLocation(c.ClinicTimezone); err != nil {
		return fmt.Errorf("CLINIC_TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Location devuelve la zona horaria de la clínica (ya validada en Load).
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
