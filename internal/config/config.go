package config

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	loggerConfig "github.com/medimart/medimart/internal/logger/config"
	sessionConfig "github.com/medimart/medimart/internal/session/config"
	transportConfig "github.com/medimart/medimart/internal/transport/config"
)

type Config struct {
	Transport transportConfig.Config
	Session   sessionConfig.Config
	Logger    loggerConfig.Config
}

// GetConfig: флаги с дефолтами, переменные окружения приоритетнее
func GetConfig() Config {
	var cfg Config

	flag.StringVar(&cfg.Transport.BaseAddr, "a", "http://localhost:5000", "backend API address")
	flag.DurationVar(&cfg.Transport.Timeout, "t", 15*time.Second, "request timeout")
	flag.StringVar(&cfg.Session.StorageDriver, "d", "file", "session storage driver: file | sqlite")
	flag.StringVar(&cfg.Session.StoragePath, "s", defaultStoragePath(), "session storage path")
	flag.StringVar(&cfg.Logger.LogLevel, "l", "info", "log level")
	flag.Parse()

	if v, ok := os.LookupEnv("MEDIMART_ADDRESS"); ok {
		cfg.Transport.BaseAddr = v
	}
	if v, ok := os.LookupEnv("MEDIMART_STORAGE_DRIVER"); ok {
		cfg.Session.StorageDriver = v
	}
	if v, ok := os.LookupEnv("MEDIMART_STORAGE"); ok {
		cfg.Session.StoragePath = v
	}
	if v, ok := os.LookupEnv("MEDIMART_LOG_LEVEL"); ok {
		cfg.Logger.LogLevel = v
	}

	return cfg
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medimart_session"
	}
	return filepath.Join(home, ".medimart_session")
}
