package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Addr string `mapstructure:"addr"`
	// PublicURL is the externally reachable base URL, used when building
	// emailed links.
	PublicURL string `mapstructure:"public_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type S3Config struct {
	Endpoint       string `mapstructure:"endpoint"`
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	UsePathStyle   bool   `mapstructure:"use_path_style"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	ResizedMaxEdge int    `mapstructure:"resized_max_edge"`
}

type RabbitMQConfig struct {
	URL          string `mapstructure:"url"`
	ExchangeName string `mapstructure:"exchange_name"`
	RoutingKey   string `mapstructure:"routing_key"`
	EnableTLS    bool   `mapstructure:"enable_tls"`
}

type AuthConfig struct {
	// Secret signs both access tokens and email verification tokens.
	Secret string `mapstructure:"secret"`
	// AccessTokenTTL defaults to 300 minutes.
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	// VerifyTokenTTL bounds email verification and password reset links.
	VerifyTokenTTL time.Duration `mapstructure:"verify_token_ttl"`

	// DefaultAdminEmail/DefaultAdminPassword seed an initial admin account
	// at startup when both are set and the email is not taken.
	DefaultAdminEmail    string `mapstructure:"default_admin_email"`
	DefaultAdminPassword string `mapstructure:"default_admin_password"`
}

type MailConfig struct {
	Sender string `mapstructure:"sender"`
	// ProjectAdmins are notified when a new annotator verifies their email.
	ProjectAdmins []string `mapstructure:"project_admins"`
	FrontendLogin string   `mapstructure:"frontend_login"`
	FrontendSign  string   `mapstructure:"frontend_signup"`
	// AdminConsole is linked from the signup notification email.
	AdminConsole string `mapstructure:"admin_console"`
}

type PredictConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	S3        S3Config        `mapstructure:"s3"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Mail      MailConfig      `mapstructure:"mail"`
	Predict   PredictConfig   `mapstructure:"predict"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Load reads config.yaml when present and overlays ANNOTATOR_* environment
// variables (e.g. ANNOTATOR_DATABASE_DSN).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("ANNOTATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Env-only deployments carry no config file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "annotator-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.addr", ":8080")

	v.SetDefault("log.level", "info")

	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "annotator-uploads")
	v.SetDefault("s3.resized_max_edge", 512)

	v.SetDefault("rabbitmq.exchange_name", "annotator.mail")
	v.SetDefault("rabbitmq.routing_key", "mail.outbound")

	v.SetDefault("auth.access_token_ttl", 300*time.Minute)
	v.SetDefault("auth.verify_token_ttl", 60*time.Minute)

	v.SetDefault("telemetry.sample_ratio", 1.0)
}
