package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

// Services holds the base URLs of the backend microservices the storefront talks to.
type Services struct {
	ProductURL    string        `yaml:"PRODUCT_SERVICE_URL" env:"PRODUCT_SERVICE_URL" env-default:"http://localhost:8001"`
	AuthURL       string        `yaml:"AUTH_SERVICE_URL" env:"AUTH_SERVICE_URL" env-default:"http://localhost:8002"`
	CartURL       string        `yaml:"CART_SERVICE_URL" env:"CART_SERVICE_URL" env-default:"http://localhost:8003"`
	OrderURL      string        `yaml:"ORDER_SERVICE_URL" env:"ORDER_SERVICE_URL" env-default:"http://localhost:8004"`
	PaymentURL    string        `yaml:"PAYMENT_SERVICE_URL" env:"PAYMENT_SERVICE_URL" env-default:"http://localhost:8005"`
	AdminURL      string        `yaml:"ADMIN_SERVICE_URL" env:"ADMIN_SERVICE_URL" env-default:"http://localhost:8006"`
	Timeout       time.Duration `yaml:"TIMEOUT" env:"SERVICES_TIMEOUT" env-default:"10s"`
	RetryAttempts int           `yaml:"RETRY_ATTEMPTS" env:"SERVICES_RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay    time.Duration `yaml:"RETRY_DELAY" env:"SERVICES_RETRY_DELAY" env-default:"200ms"`
}

type Security struct {
	JWTKey       string        `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	CookieName   string        `yaml:"COOKIE_NAME" env:"COOKIE_NAME" env-default:"access_token"`
	CookieMaxAge time.Duration `yaml:"COOKIE_MAX_AGE" env:"COOKIE_MAX_AGE" env-default:"168h"`
	CookieSecure bool          `yaml:"COOKIE_SECURE" env:"COOKIE_SECURE" env-default:"false"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-required:"true"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-required:"true"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type CacheConfig struct {
	DefaultTTL   time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	CatalogTTL   time.Duration `yaml:"catalog_ttl" env:"CACHE_CATALOG_TTL" env-default:"2m"`
	ProfileTTL   time.Duration `yaml:"profile_ttl" env:"CACHE_PROFILE_TTL" env-default:"5m"`
	GuestCartTTL time.Duration `yaml:"guest_cart_ttl" env:"CACHE_GUEST_CART_TTL" env-default:"168h"`
}

type SendGrid struct {
	APIKey       string `yaml:"API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail    string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@shophub.local"`
	FromName     string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"ShopHub"`
	SupportEmail string `yaml:"SUPPORT_EMAIL" env:"SENDGRID_SUPPORT_EMAIL" env-default:"support@shophub.local"`
}

type Kafka struct {
	Brokers []string `yaml:"BROKERS" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"TOPIC" env:"KAFKA_TOPIC" env-default:"storefront-events"`
}

// Enabled reports whether storefront events should be written to Kafka.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"shophub-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:""`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Catalog struct {
	FeaturedCount   int `yaml:"FEATURED_COUNT" env:"CATALOG_FEATURED_COUNT" env-default:"8"`
	DefaultPageSize int `yaml:"DEFAULT_PAGE_SIZE" env:"CATALOG_DEFAULT_PAGE_SIZE" env-default:"12"`
	MaxPageSize     int `yaml:"MAX_PAGE_SIZE" env:"CATALOG_MAX_PAGE_SIZE" env-default:"100"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Services     Services     `yaml:"services"`
	Security     Security     `yaml:"security"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Kafka        Kafka        `yaml:"kafka"`
	Otel         Otel         `yaml:"otel"`
	Catalog      Catalog      `yaml:"catalog"`
}

// IsProduction is used to decide cookie hardening and log verbosity.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the storefront config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg

}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
