package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the seeder
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Docker   DockerConfig   `mapstructure:"docker"`
	Generate GenerateConfig `mapstructure:"generate"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig represents store connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DockerConfig represents settings for the local store container
type DockerConfig struct {
	ContainerName string `mapstructure:"container_name"`
	ComposeFile   string `mapstructure:"compose_file"`
	AutoStart     bool   `mapstructure:"auto_start"`
}

// GenerateConfig represents dataset generation settings
type GenerateConfig struct {
	Users    int   `mapstructure:"users"`
	Products int   `mapstructure:"products"`
	Orders   int   `mapstructure:"orders"`
	Seed     int64 `mapstructure:"seed"`
	MinItems int   `mapstructure:"min_items"`
	MaxItems int   `mapstructure:"max_items"`
}

// OutputConfig represents file emission settings
type OutputConfig struct {
	Dir  string `mapstructure:"dir"`
	JSON bool   `mapstructure:"json"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"` // json or console
}

// ConnectionString generates a PostgreSQL connection string
func (db *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Database, db.SSLMode,
	)
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	} else {
		// Look for config.yaml in current directory
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".ecom-seeder"))

		// Ignore error if config file doesn't exist
		_ = v.ReadInConfig()
	}

	// Environment variables override config file
	v.SetEnvPrefix("ECOMSEED")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Store defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5433)
	v.SetDefault("database.database", "ecom_fixtures")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.sslmode", "disable")

	// Docker defaults
	v.SetDefault("docker.container_name", "ecom-fixtures-db")
	v.SetDefault("docker.compose_file", "docker-compose.yml")
	v.SetDefault("docker.auto_start", true)

	// Generation defaults
	v.SetDefault("generate.users", 25)
	v.SetDefault("generate.products", 15)
	v.SetDefault("generate.orders", 40)
	v.SetDefault("generate.seed", 0)
	v.SetDefault("generate.min_items", 1)
	v.SetDefault("generate.max_items", 4)

	// Output defaults
	v.SetDefault("output.dir", "data")
	v.SetDefault("output.json", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output_path", "stdout")
	v.SetDefault("logging.format", "console")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}

	if c.Generate.Users <= 0 {
		return fmt.Errorf("generate.users must be greater than 0")
	}
	if c.Generate.Products <= 0 {
		return fmt.Errorf("generate.products must be greater than 0")
	}
	if c.Generate.Orders <= 0 {
		return fmt.Errorf("generate.orders must be greater than 0")
	}
	if c.Generate.MinItems < 0 {
		return fmt.Errorf("generate.min_items must not be negative")
	}
	if c.Generate.MaxItems < c.Generate.MinItems {
		return fmt.Errorf("generate.max_items must be >= generate.min_items")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}

	return nil
}
