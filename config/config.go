package config

import (
	"fmt"
	"log"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Source kinds accepted by SOURCE_KIND.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all application configuration loaded from .env, an optional
// dashboard.yaml and environment variables.
type Config struct {
	SourceKind string

	IbyteCSV   string
	HapvidaCSV string
	NagemCSV   string

	IbyteTable   string
	HapvidaTable string
	NagemTable   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	SQLitePath string

	TimeLayout    string
	TimeZone      string
	HistogramBins int

	ListenAddr string
	LogLevel   string
	LogFormat  string
	ChromeBin  string
}

// Source is one entity and where its complaints come from.
type Source struct {
	Entity string
	Path   string // CSV file
	Table  string // SQL table
}

// Load reads the .env file, the optional dashboard.yaml and the environment
// and returns a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("dashboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read dashboard.yaml: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source_kind", SourceCSV)

	v.SetDefault("ibyte_csv", "RECLAMEAQUI_IBYTE.csv")
	v.SetDefault("hapvida_csv", "RECLAMEAQUI_HAPVIDA.csv")
	v.SetDefault("nagem_csv", "RECLAMEAQUI_NAGEM.csv")

	v.SetDefault("ibyte_table", "reclameaqui_ibyte")
	v.SetDefault("hapvida_table", "reclameaqui_hapvida")
	v.SetDefault("nagem_table", "reclameaqui_nagem")

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", "5432")
	v.SetDefault("postgres_user", "dashboard")
	v.SetDefault("postgres_password", "dashboard")
	v.SetDefault("postgres_db", "complaints")
	v.SetDefault("postgres_sslmode", "disable")
	v.SetDefault("max_retries", 3)

	v.SetDefault("sqlite_path", "./complaints.db")

	v.SetDefault("time_layout", "")
	v.SetDefault("time_zone", "America/Fortaleza")
	v.SetDefault("histogram_bins", 20)

	v.SetDefault("listen_addr", ":8501")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("chrome_bin", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		SourceKind: v.GetString("source_kind"),

		IbyteCSV:   v.GetString("ibyte_csv"),
		HapvidaCSV: v.GetString("hapvida_csv"),
		NagemCSV:   v.GetString("nagem_csv"),

		IbyteTable:   v.GetString("ibyte_table"),
		HapvidaTable: v.GetString("hapvida_table"),
		NagemTable:   v.GetString("nagem_table"),

		PostgresHost:     v.GetString("postgres_host"),
		PostgresPort:     v.GetString("postgres_port"),
		PostgresUser:     v.GetString("postgres_user"),
		PostgresPassword: v.GetString("postgres_password"),
		PostgresDB:       v.GetString("postgres_db"),
		PostgresSSLMode:  v.GetString("postgres_sslmode"),
		MaxRetries:       v.GetInt("max_retries"),

		SQLitePath: v.GetString("sqlite_path"),

		TimeLayout:    v.GetString("time_layout"),
		TimeZone:      v.GetString("time_zone"),
		HistogramBins: v.GetInt("histogram_bins"),

		ListenAddr: v.GetString("listen_addr"),
		LogLevel:   v.GetString("log_level"),
		LogFormat:  v.GetString("log_format"),
		ChromeBin:  v.GetString("chrome_bin"),
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.SourceKind {
	case SourceCSV, SourcePostgres, SourceSQLite:
	default:
		return fmt.Errorf("source_kind must be one of csv, postgres, sqlite (got %q)", c.SourceKind)
	}
	if c.HistogramBins < 1 {
		return fmt.Errorf("histogram_bins must be at least 1")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("time_zone %q: %w", c.TimeZone, err)
	}
	return nil
}

// Location returns the time zone timestamps without an offset are read in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Sources returns the fixed entity to source mapping, in load order.
func (c *Config) Sources() []Source {
	return []Source{
		{Entity: "Ibyte", Path: c.IbyteCSV, Table: c.IbyteTable},
		{Entity: "Hapvida", Path: c.HapvidaCSV, Table: c.HapvidaTable},
		{Entity: "Nagem", Path: c.NagemCSV, Table: c.NagemTable},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
