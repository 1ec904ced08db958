package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	Completion CompletionConfig
	Chat       ChatConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ChatRateLimit  int // requests per minute on POST /chat, 0 disables
	AllowedOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the libpq keyword/value connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the connection string in URL form, as golang-migrate expects.
// Credentials are escaped.
func (c DatabaseConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

type StorageConfig struct {
	Driver   string // file or postgres
	FilePath string
}

type CompletionConfig struct {
	Provider string // gemini or gigachat
	Timeout  time.Duration
	Gemini   GeminiConfig
	GigaChat GigaChatConfig
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type ChatConfig struct {
	RecentExpenses   int // expenses quoted in the general reply prompt
	ReportWindowDays int
	Location         *time.Location
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "60"))
	chatRateLimit, _ := strconv.Atoi(getEnv("CHAT_RATE_LIMIT_PER_MINUTE", "30"))
	completionTimeout, _ := strconv.Atoi(getEnv("COMPLETION_TIMEOUT_SECONDS", "20"))
	recentExpenses, _ := strconv.Atoi(getEnv("CHAT_RECENT_EXPENSES", "5"))
	windowDays, _ := strconv.Atoi(getEnv("REPORT_WINDOW_DAYS", "7"))
	temperature, _ := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0.3"), 32)
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"

	location, err := time.LoadLocation(getEnv("CHAT_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHAT_TIMEZONE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    time.Duration(readTimeout) * time.Second,
			WriteTimeout:   time.Duration(writeTimeout) * time.Second,
			ChatRateLimit:  chatRateLimit,
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "finanzas_chat"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Storage: StorageConfig{
			Driver:   getEnv("STORAGE_DRIVER", StorageDriverFile),
			FilePath: getEnv("STORAGE_FILE_PATH", "data/expenses.json"),
		},
		Completion: CompletionConfig{
			Provider: getEnv("COMPLETION_PROVIDER", "gemini"),
			Timeout:  time.Duration(completionTimeout) * time.Second,
			Gemini: GeminiConfig{
				APIKey:      getEnv("GEMINI_API_KEY", ""),
				Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
				Temperature: float32(temperature),
			},
			GigaChat: GigaChatConfig{
				APIKey:             getEnv("GIGACHAT_API_KEY", ""),
				Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
				Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
				InsecureSkipVerify: insecureSkipVerify,
			},
		},
		Chat: ChatConfig{
			RecentExpenses:   recentExpenses,
			ReportWindowDays: windowDays,
			Location:         location,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the services cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile, StorageDriverPostgres:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Completion.Provider {
	case "gemini", "gigachat":
	default:
		return fmt.Errorf("unsupported COMPLETION_PROVIDER %q", c.Completion.Provider)
	}

	if c.Chat.ReportWindowDays <= 0 {
		return fmt.Errorf("REPORT_WINDOW_DAYS must be positive, got %d", c.Chat.ReportWindowDays)
	}
	if c.Chat.RecentExpenses < 0 {
		return fmt.Errorf("CHAT_RECENT_EXPENSES must not be negative, got %d", c.Chat.RecentExpenses)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
