package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

const (
	DefaultProvider       = "sqlserver"
	DefaultDatabaseName   = "TransactionDB_UAT"
	DefaultCustomersTotal = 900_000
	DefaultProductsTotal  = 150_000
	DefaultBatchSize      = 10_000
	DefaultLogLevel       = "warn"
)

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Database Database `json:"database" mapstructure:"database"`
	Generate Generate `json:"generate" mapstructure:"generate"`
	Log      Log      `json:"log" mapstructure:"log"`
}

type Database struct {
	Provider               string `json:"provider" mapstructure:"provider"`
	Host                   string `json:"host" mapstructure:"host"`
	Name                   string `json:"name" mapstructure:"name"`
	Port                   int    `json:"port,omitempty" mapstructure:"port"`
	User                   string `json:"user,omitempty" mapstructure:"user"`
	Password               string `json:"password,omitempty" mapstructure:"password"`
	Encrypt                bool   `json:"encrypt,omitempty" mapstructure:"encrypt"`
	TrustServerCertificate bool   `json:"trust_server_certificate,omitempty" mapstructure:"trust_server_certificate"`
}

type Generate struct {
	CustomersTotal int `json:"customers_total" mapstructure:"customers_total"`
	ProductsTotal  int `json:"products_total" mapstructure:"products_total"`
	BatchSize      int `json:"batch_size" mapstructure:"batch_size"`
}

type Log struct {
	Level string `json:"level" mapstructure:"level"`
}

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"database.provider":                 "DB_PROVIDER",
	"database.host":                     "SQL_SERVER_HOST",
	"database.name":                     "SQL_SERVER_DB",
	"database.port":                     "SQL_SERVER_PORT",
	"database.user":                     "SQL_SERVER_USER",
	"database.password":                 "SQL_SERVER_PASSWORD",
	"database.encrypt":                  "SQL_SERVER_ENCRYPT",
	"database.trust_server_certificate": "SQL_SERVER_TRUST_CERT",
	"log.level":                         "LOG_LEVEL",
}

func BindEnv(v *viper.Viper) {
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// SetDefaults registers fallback values. Values set explicitly, including
// zero row counts, take precedence.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("version", "1")
	v.SetDefault("database.provider", DefaultProvider)
	v.SetDefault("database.name", DefaultDatabaseName)
	v.SetDefault("generate.customers_total", DefaultCustomersTotal)
	v.SetDefault("generate.products_total", DefaultProductsTotal)
	v.SetDefault("generate.batch_size", DefaultBatchSize)
	v.SetDefault("log.level", DefaultLogLevel)
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	BindEnv(v)
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supportedProviders := []string{"sqlserver", "mssql", "postgresql", "postgres", "mysql", "sqlite", "sqlite3"}
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}

	if strings.TrimSpace(c.Database.Host) == "" {
		return fmt.Errorf("SQL_SERVER_HOST is missing. Add it to your .env file, e.g.:\n" +
			"SQL_SERVER_HOST=Inteli5SSD-Laptop\\SQLEXPRESS")
	}

	if c.Generate.CustomersTotal < 0 {
		return fmt.Errorf("customers_total cannot be negative")
	}
	if c.Generate.ProductsTotal < 0 {
		return fmt.Errorf("products_total cannot be negative")
	}
	if c.Generate.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}

	return nil
}

// NormalizedProvider folds provider aliases onto one name per dialect.
func (c *Config) NormalizedProvider() string {
	switch c.Database.Provider {
	case "sqlserver", "mssql":
		return "sqlserver"
	case "postgresql", "postgres":
		return "postgresql"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return c.Database.Provider
	}
}

// GetDatabaseURL renders the driver DSN for the configured provider.
func (c *Config) GetDatabaseURL() (string, error) {
	db := c.Database
	if db.Host == "" {
		return "", fmt.Errorf("database host not set (SQL_SERVER_HOST)")
	}

	switch c.NormalizedProvider() {
	case "sqlserver":
		return c.sqlServerURL(), nil
	case "postgresql":
		u := url.URL{
			Scheme:   "postgres",
			Host:     hostPort(db.Host, db.Port),
			Path:     "/" + db.Name,
			RawQuery: "sslmode=disable",
		}
		if db.User != "" {
			u.User = url.UserPassword(db.User, db.Password)
		}
		return u.String(), nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = hostPort(db.Host, db.Port)
		mc.DBName = db.Name
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case "sqlite":
		return db.Host, nil
	default:
		return "", fmt.Errorf("unsupported database provider: %s", db.Provider)
	}
}

func (c *Config) sqlServerURL() string {
	db := c.Database
	query := url.Values{}
	query.Add("database", db.Name)
	if db.Encrypt {
		query.Add("encrypt", "true")
	} else {
		query.Add("encrypt", "disable")
	}
	if db.TrustServerCertificate {
		query.Add("TrustServerCertificate", "true")
	}

	// HOST\INSTANCE names a SQL Server named instance.
	host, instance, _ := strings.Cut(db.Host, `\`)
	u := url.URL{
		Scheme:   "sqlserver",
		Host:     hostPort(host, db.Port),
		RawQuery: query.Encode(),
	}
	if instance != "" {
		u.Path = "/" + instance
	}
	if db.User != "" {
		u.User = url.UserPassword(db.User, db.Password)
	}
	return u.String()
}

func hostPort(host string, port int) string {
	if port <= 0 {
		return host
	}
	return host + ":" + strconv.Itoa(port)
}
