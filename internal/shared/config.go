package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"hotel_pricer/internal/domain"
)

type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string
	RakutenBase     string
	ApplicationID   string
	RequestInterval time.Duration
	AvoidWords      []string
}

// fileConfig is the optional YAML config file.
type fileConfig struct {
	ApplicationID string   `yaml:"application_id"`
	AvoidWords    []string `yaml:"avoid_words"`
}

// Load reads .env (if present), then the YAML file named by PRICER_CONFIG
// (default config.yaml, optional), then environment variables, which win.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	fc, err := readFile(env("PRICER_CONFIG", "config.yaml"))
	if err != nil {
		log.Warn().Err(err).Msg("config file ignored")
	}

	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		MySQLDSN:        env("MYSQL_DSN", ""),
		RakutenBase:     env("RAKUTEN_BASE_URL", ""),
		ApplicationID:   env("RAKUTEN_APPLICATION_ID", fc.ApplicationID),
		RequestInterval: time.Duration(atoi("REQUEST_INTERVAL_MS", 1000)) * time.Millisecond,
		AvoidWords:      domain.DefaultAvoidWords,
	}
	if len(fc.AvoidWords) > 0 {
		c.AvoidWords = fc.AvoidWords
	}
	if v := os.Getenv("AVOID_WORDS"); v != "" {
		c.AvoidWords = splitList(v)
	}
	if c.ApplicationID == "" {
		log.Warn().Msg("RAKUTEN_APPLICATION_ID is empty")
	}
	return c
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
