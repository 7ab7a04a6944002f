package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Cookie    CookieConfig    `mapstructure:"cookie"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Upload    UploadConfig    `mapstructure:"upload"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type CookieConfig struct {
	// ExpireDays sets the role-cookie Max-Age; it should not exceed the
	// token lifetime or the cookie outlives its JWT.
	ExpireDays int  `mapstructure:"expire_days"`
	Secure     bool `mapstructure:"secure"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type OllamaConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// envOverrides are the deployment-provided values. They win over the yaml
// file so secrets never need to live in config.yml.
type envOverrides struct {
	Port         int     `envconfig:"PORT"`
	DatabaseURL  string  `envconfig:"DATABASE_URL"`
	JWTSecret    string  `envconfig:"JWT_SECRET"`
	CookieExpire int     `envconfig:"COOKIE_EXPIRE"`
	RedisURL     string  `envconfig:"REDIS_URL"`
	OllamaURL    string  `envconfig:"OLLAMA_URL"`
	OllamaModel  string  `envconfig:"OLLAMA_MODEL"`
	SMTPHost     string  `envconfig:"SMTP_HOST"`
	SMTPPort     int     `envconfig:"SMTP_PORT"`
	SMTPUsername string  `envconfig:"SMTP_USERNAME"`
	SMTPPassword string  `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string  `envconfig:"SMTP_FROM"`
	RateRPS      float64 `envconfig:"RATE_LIMIT_RPS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	config.applyEnv(env)

	if config.Database.URL == "" {
		return nil, fmt.Errorf("database url is required (database.url or DATABASE_URL)")
	}
	if config.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (jwt.secret or JWT_SECRET)")
	}

	return &config, nil
}

func (c *Config) applyEnv(env envOverrides) {
	if env.Port != 0 {
		c.Server.Port = env.Port
	}
	if env.DatabaseURL != "" {
		c.Database.URL = env.DatabaseURL
	}
	if env.JWTSecret != "" {
		c.JWT.Secret = env.JWTSecret
	}
	if env.CookieExpire != 0 {
		c.Cookie.ExpireDays = env.CookieExpire
	}
	if env.RedisURL != "" {
		c.Redis.URL = env.RedisURL
	}
	if env.OllamaURL != "" {
		c.Ollama.URL = env.OllamaURL
	}
	if env.OllamaModel != "" {
		c.Ollama.Model = env.OllamaModel
	}
	if env.SMTPHost != "" {
		c.SMTP.Host = env.SMTPHost
	}
	if env.SMTPPort != 0 {
		c.SMTP.Port = env.SMTPPort
	}
	if env.SMTPUsername != "" {
		c.SMTP.Username = env.SMTPUsername
	}
	if env.SMTPPassword != "" {
		c.SMTP.Password = env.SMTPPassword
	}
	if env.SMTPFrom != "" {
		c.SMTP.From = env.SMTPFrom
	}
	if env.RateRPS != 0 {
		c.RateLimit.RPS = env.RateRPS
	}
}

// TokenExpiry returns the JWT lifetime, defaulting to 7 days.
func (c *Config) TokenExpiry() time.Duration {
	if c.JWT.ExpiryHours <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.JWT.ExpiryHours) * time.Hour
}

// CookieMaxAge returns the role-cookie Max-Age in seconds.
func (c *Config) CookieMaxAge() int {
	days := c.Cookie.ExpireDays
	if days <= 0 {
		days = 7
	}
	return days * 24 * 60 * 60
}

// ServerTimeout returns the per-request deadline.
func (c *Config) ServerTimeout() time.Duration {
	if c.Server.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
