package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, credentials)
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - server-only secrets are checked by ValidateServer so CLI maintenance commands run without them
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Admin   AdminConfig
	Booking BookingConfig
	Notify  NotifyConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type StorageConfig struct {
	// memory | sqlite | postgres
	Driver     string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"data/venue.db"`
	DB         DBConfig
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Rome"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Rome"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type AdminConfig struct {
	Username string `envconfig:"ADMIN_USERNAME" default:"admin"`
	// bcrypt hash, see `venue-booking hash-password`
	PasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
}

type BookingConfig struct {
	// confirmed | active
	ConflictPolicy string `envconfig:"BOOKING_CONFLICT_POLICY" default:"confirmed"`
	TimeZone       string `envconfig:"BOOKING_TIMEZONE" default:"Europe/Rome"`
}

type NotifyConfig struct {
	// log | callmebot | telegram | email
	Channel   string        `envconfig:"NOTIFY_CHANNEL" default:"log"`
	Locale    string        `envconfig:"NOTIFY_LOCALE" default:"it"`
	Timeout   time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`
	CallMeBot CallMeBotConfig
	Telegram  TelegramConfig
	SMTP      SMTPConfig
}

type CallMeBotConfig struct {
	BaseURL string `envconfig:"CALLMEBOT_BASE_URL" default:"https://api.callmebot.com/whatsapp.php"`
	Phone   string `envconfig:"CALLMEBOT_PHONE"`
	APIKey  string `envconfig:"CALLMEBOT_API_KEY"`
}

type TelegramConfig struct {
	Token  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatID string `envconfig:"TELEGRAM_CHAT_ID"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
	To       string `envconfig:"SMTP_TO"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Destination returns where operator notifications go for the configured channel.
func (c NotifyConfig) Destination() string {
	switch c.Channel {
	case "callmebot":
		return c.CallMeBot.Phone
	case "telegram":
		return c.Telegram.ChatID
	case "email":
		return c.SMTP.To
	default:
		return "operator"
	}
}

func (c NotifyConfig) Validate() error {
	switch c.Channel {
	case "log":
		return nil
	case "callmebot":
		if c.CallMeBot.Phone == "" || c.CallMeBot.APIKey == "" {
			return fmt.Errorf("callmebot channel requires CALLMEBOT_PHONE and CALLMEBOT_API_KEY")
		}
	case "telegram":
		if c.Telegram.Token == "" || c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram channel requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
		}
	case "email":
		if c.SMTP.Host == "" || c.SMTP.From == "" || c.SMTP.To == "" {
			return fmt.Errorf("email channel requires SMTP_HOST, SMTP_FROM and SMTP_TO")
		}
	default:
		return fmt.Errorf("unknown NOTIFY_CHANNEL %q", c.Channel)
	}
	return nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c Config) ValidateServer() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	return nil
}

func LoadConfig() (Config, error) {
	// a missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Notify.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Rome",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-venue-booking",
			Duration: "1h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Booking: BookingConfig{
			ConflictPolicy: "confirmed",
			TimeZone:       "Europe/Rome",
		},
		Notify: NotifyConfig{
			Channel: "log",
			Locale:  "it",
			Timeout: 2 * time.Second,
		},
	}
}
