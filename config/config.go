package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"os"
	"time"
)

type Config struct {
	Env              string           `yaml:"env" env-default:"development"`
	DbConfig         DbConfig         `yaml:"db" env-required:"true"`
	HttpServerConfig HttpServerConfig `yaml:"http_server" env-required:"true"`
	CacheConfig      CacheConfig      `yaml:"cache" env-required:"true"`
	S3Config         S3Config         `yaml:"s3"`
	FCMConfig        FCMConfig        `yaml:"fcm_config"`
	JobsConfig       JobsConfig       `yaml:"jobs"`
	StatsConfig      StatsConfig      `yaml:"stats"`
}

type CacheConfig struct {
	Address          string        `yaml:"address" env-required:"true"`
	Db               int           `yaml:"db"`
	SettingsCacheTtl time.Duration `yaml:"settings_cache_ttl" env-default:"10m"`
	StatsCacheTtl    time.Duration `yaml:"stats_cache_ttl" env-default:"5m"`
}

type TLSConfig struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type HttpServerConfig struct {
	Address        string        `yaml:"address" env-required:"true"`
	Timeout        time.Duration `yaml:"timeout" env-required:"true"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-required:"true"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	TLS            TLSConfig     `yaml:"tls"`
	// Promo validation requests allowed per IP per minute.
	PromoRateLimit int `yaml:"promo_rate_limit" env-default:"10"`
}

// FCMConfig enables server-sent reminder pushes when either field is set.
type FCMConfig struct {
	ProjectID                 string `yaml:"project_id"`
	ServiceAccountKeyJSONPath string `yaml:"service_account_key_json_path"`
}

func (c FCMConfig) Enabled() bool {
	return c.ProjectID != "" || c.ServiceAccountKeyJSONPath != ""
}

type DbConfig struct {
	Username string `yaml:"username"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	DbName   string `yaml:"dbname"`
	SSLMode  string `yaml:"ssl_mode" env-default:"disable"`
}

// S3Config enables the nightly daily-log archive when ArchiveBucket is set.
type S3Config struct {
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	ArchiveBucket string `yaml:"archive_bucket"`
}

func (c S3Config) Enabled() bool {
	return c.ArchiveBucket != ""
}

type JobsConfig struct {
	PremiumExpirySpec string `yaml:"premium_expiry_spec" env-default:"0 0 * * *"`
	LogArchiveSpec    string `yaml:"log_archive_spec" env-default:"15 0 * * *"`
	ReminderSpec      string `yaml:"reminder_spec" env-default:"* * * * *"`
}

type StatsConfig struct {
	WindowDays int `yaml:"window_days" env-default:"7"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/dev.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("error reading config file: %s. Error: %v", configPath, err)
	}

	return &cfg
}
