package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultSessionSecret = "change-me-in-production"

// Config is the top-level configuration structure. One instance is loaded
// at startup and handed to the components that need it.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Hub     HubConfig     `mapstructure:"hub"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server and auth settings.
type ServerConfig struct {
	Port          string `mapstructure:"port"`
	SessionSecret string `mapstructure:"session_secret"`
	AdminPassword string `mapstructure:"admin_password"`
}

// StorageConfig holds the persistent store's file locations.
type StorageConfig struct {
	DataFile        string `mapstructure:"data_file"`
	BackupDir       string `mapstructure:"backup_dir"`
	BackupRetention int    `mapstructure:"backup_retention"`
}

// HubConfig holds the broadcast hub's liveness settings.
type HubConfig struct {
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	StaleTimeout      time.Duration `mapstructure:"stale_timeout"`
	QueueSize         int           `mapstructure:"queue_size"`
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.session_secret", defaultSessionSecret)
	v.SetDefault("server.admin_password", "admin123")

	// Storage defaults
	v.SetDefault("storage.data_file", "data/state.json")
	v.SetDefault("storage.backup_dir", "data/backups")
	v.SetDefault("storage.backup_retention", 10)

	// Hub defaults
	v.SetDefault("hub.heartbeat_interval", 30*time.Second)
	v.SetDefault("hub.stale_timeout", 60*time.Second)
	v.SetDefault("hub.queue_size", 64)

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs
}

// Load reads configuration from config/config.yaml under projectRoot,
// falling back to defaults and environment variables. The returned pointer
// stays current across config-file changes via viper's watcher.
func Load(projectRoot string, log *zap.Logger) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("TES") // e.g., TES_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the initial configuration from the file.
	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.Server.SessionSecret == defaultSessionSecret {
		// Sessions won't survive a restart with a generated secret, but a
		// predictable one is worse. The session store reads the secret once
		// at startup.
		secret, err := randomSecret(32)
		if err != nil {
			return nil, fmt.Errorf("could not generate session secret: %w", err)
		}
		cfg.Server.SessionSecret = secret
		log.Warn("No session secret configured, generated a random one")
	}

	// Set up a watch for configuration changes for hot-reloading
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		secret := cfg.Server.SessionSecret
		if err := v.Unmarshal(cfg); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
		}
		// A reload must not swap a generated secret back to the placeholder.
		if cfg.Server.SessionSecret == defaultSessionSecret {
			cfg.Server.SessionSecret = secret
		}
	})

	log.Info("Configuration loaded successfully")
	return cfg, nil
}

func randomSecret(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
