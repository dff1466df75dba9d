package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	Redis             Redis             `mapstructure:",squash"`
	Reports           Reports           `mapstructure:",squash"`
	ReportCacheWarmer ReportCacheWarmer `mapstructure:",squash"`
	RateLimit         RateLimit         `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	AutoMigrate  bool   `mapstructure:"database_auto_migrate"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns int    `mapstructure:"database_max_idle_conns"`
}

type Auth struct {
	Secret             string        `mapstructure:"auth_secret"`
	TokenTTL           time.Duration `mapstructure:"auth_token_ttl"`
	AllowedEmailDomain string        `mapstructure:"auth_allowed_email_domain"`
}

type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type Reports struct {
	Timezone      string        `mapstructure:"reports_timezone"`
	CacheTTL      time.Duration `mapstructure:"reports_cache_ttl"`
	DefaultMonths int           `mapstructure:"reports_default_months"`
}

type ReportCacheWarmer struct {
	CronSchedule string `mapstructure:"report_cache_warmer_cron"`
	Enabled      bool   `mapstructure:"report_cache_warmer_enabled"`
}

type RateLimit struct {
	LoginRequestsPerMinute int `mapstructure:"login_rate_limit_per_minute"`
	LoginBurst             int `mapstructure:"login_rate_limit_burst"`
}

// Location retorna o fuso usado para recortar os meses dos relatórios.
// O nome do fuso vai para o AT TIME ZONE do Postgres, então "Local" vira UTC
func (r Reports) Location() *time.Location {
	if r.Timezone == "" || strings.EqualFold(r.Timezone, "Local") {
		return time.UTC
	}

	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		logrus.WithError(err).Warnf("Fuso horário inválido para relatórios: %s, usando UTC", r.Timezone)
		return time.UTC
	}
	return loc
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/recovery_crm?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", false)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")
	viper.SetDefault("AUTH_ALLOWED_EMAIL_DOMAIN", "") // vazio aceita qualquer domínio

	viper.SetDefault("REDIS_URL", "") // vazio desabilita o cache de relatórios

	viper.SetDefault("REPORTS_TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("REPORTS_CACHE_TTL", "5m")
	viper.SetDefault("REPORTS_DEFAULT_MONTHS", 6)

	viper.SetDefault("REPORT_CACHE_WARMER_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("REPORT_CACHE_WARMER_ENABLED", false)

	viper.SetDefault("LOGIN_RATE_LIMIT_PER_MINUTE", 10)
	viper.SetDefault("LOGIN_RATE_LIMIT_BURST", 5)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Reports.DefaultMonths <= 0 {
		config.Reports.DefaultMonths = 6
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
