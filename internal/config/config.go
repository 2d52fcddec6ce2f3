package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"

	AvatarMultipart = "multipart"
	AvatarBase64    = "base64"
)

type Config struct {
	APIBaseURL     string
	DataDir        string
	Cache          string
	Redis          RedisConfig
	RegisterPath   string
	AvatarEncoding string
	LogLevel       string
	MetricsAddr    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads an optional .env file and then the environment.
// A missing .env is not an error; a malformed one is.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	dataDir := os.Getenv("MB_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".missionboard")
	}

	redisDB := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("REDIS_DB: %w", err)
		}
		redisDB = n
	}

	cfg := Config{
		APIBaseURL: strings.TrimRight(getEnv("MB_API_URL", "http://localhost:8000"), "/"),
		DataDir:    dataDir,
		Cache:      strings.ToLower(getEnv("MB_CACHE", CacheSQLite)),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		RegisterPath:   getEnv("MB_REGISTER_PATH", "/api/authentication/register"),
		AvatarEncoding: strings.ToLower(getEnv("MB_AVATAR_ENCODING", AvatarMultipart)),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MetricsAddr:    os.Getenv("MB_METRICS_ADDR"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Cache {
	case CacheSQLite, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (want sqlite or redis)", c.Cache)
	}
	switch c.AvatarEncoding {
	case AvatarMultipart, AvatarBase64:
	default:
		return fmt.Errorf("unknown avatar encoding %q (want multipart or base64)", c.AvatarEncoding)
	}
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	if !strings.HasPrefix(c.RegisterPath, "/") {
		return fmt.Errorf("register path %q must start with /", c.RegisterPath)
	}
	return nil
}

// DBPath is the SQLite file holding the durable passport slot.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "missionboard.db")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "mb.log")
}
