// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Server   ServerConfig            `mapstructure:"server"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Lookup   LookupConfig            `mapstructure:"lookup"`
	Database DatabaseConfig          `mapstructure:"database"`
	Forms    FormsConfig             `mapstructure:"forms"`
	Domain   DomainConfig            `mapstructure:"domain"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Actions  map[string]ActionConfig `mapstructure:"actions"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the webhook listener settings.
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	WebhookPath     string `mapstructure:"webhook_path"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	JobTypePrefix  string `mapstructure:"job_type_prefix"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LookupConfig points the species lookup at the remote service.
type LookupConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Resource  string `mapstructure:"resource"`
	Timeout   int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL  int    `mapstructure:"cache_ttl"` // milliseconds, 0 disables caching
	UserAgent string `mapstructure:"user_agent"`
}

type FormsConfig struct {
	Restaurant RestaurantFormConfig `mapstructure:"restaurant"`
}

type RestaurantFormConfig struct {
	RecordReservations bool `mapstructure:"record_reservations"`
}

// DomainConfig locates the domain file. An empty path selects the built-in tables.
type DomainConfig struct {
	Path string `mapstructure:"path"`
}

// ActionConfig holds the settings applicable to every action.
type ActionConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Timeout       int  `mapstructure:"timeout"`         // milliseconds
	MaxJobsActive int  `mapstructure:"max_jobs_active"` // job transport only
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
