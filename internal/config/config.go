package config

import (
	"encoding/json"
	"os"
	"strings"
)

type Config struct {
	Port        string `json:"port"`
	DBURL       string `json:"dbUrl"`       // пусто = in-memory
	AutoMigrate bool   `json:"autoMigrate"` // create table if not exists при старте
	SeedFile    string `json:"seedFile"`    // YAML-файл или папка со справочниками

	LogLevel  string `json:"logLevel"`  // debug | info | warn | error
	LogFormat string `json:"logFormat"` // json (default) | text
}

func def() Config {
	return Config{
		Port:        "3000",
		DBURL:       "",
		AutoMigrate: false,
		SeedFile:    "",

		LogLevel:  "info",
		LogFormat: "json",
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := ParseBool(v); ok {
			return b
		}
	}
	return fallback
}

// ParseBool понимает 1/0, true/false, yes/no.
func ParseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

// NormalizeDBURL: heroku-стиль postgres:// -> postgresql://.
func NormalizeDBURL(u string) string {
	if strings.HasPrefix(u, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(u, "postgres://")
	}
	return u
}

// Load: дефолты -> JSON (если файл есть) -> ENV. Флаги CLI накладывает вызывающий.
// Битый JSON — ошибка; отсутствующий файл — нет.
func Load(jsonPath string) (Config, error) {
	cfg := def()

	if jsonPath != "" {
		if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
			c2, err := loadJSON(jsonPath)
			if err != nil {
				return cfg, err
			}
			cfg = c2
		}
	}

	// ENV overrides; PORT и DATABASE_URL — как у PaaS, HOLOCRON_* важнее
	cfg.Port = getenv("PORT", cfg.Port)
	cfg.Port = getenv("HOLOCRON_PORT", cfg.Port)
	cfg.DBURL = getenv("DATABASE_URL", cfg.DBURL)
	cfg.DBURL = getenv("HOLOCRON_DB_URL", cfg.DBURL)
	cfg.AutoMigrate = getenvBool("HOLOCRON_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.SeedFile = getenv("HOLOCRON_SEED_FILE", cfg.SeedFile)
	cfg.LogLevel = getenv("HOLOCRON_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("HOLOCRON_LOG_FORMAT", cfg.LogFormat)

	cfg.DBURL = NormalizeDBURL(cfg.DBURL)
	return cfg, nil
}

// Addr — адрес для http.Server.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
