package shared

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	HTTPAddr string `yaml:"http_addr"`

	HostawayBase      string `yaml:"hostaway_base_url"`
	HostawayAccountID string `yaml:"hostaway_account_id"`
	HostawayAPIKey    string `yaml:"hostaway_api_key"`
	GoogleBase        string `yaml:"google_base_url"`
	GooglePlacesKey   string `yaml:"google_places_api_key"`
	ProviderRPS       int    `yaml:"provider_rps"`

	ApprovalBackend string `yaml:"approval_backend"` // file|redis|mysql|pebble
	ApprovalPath    string `yaml:"approval_path"`
	RedisAddr       string `yaml:"redis_addr"`
	RedisPass       string `yaml:"redis_password"`
	RedisDB         int    `yaml:"redis_db"`
	MySQLDSN        string `yaml:"mysql_dsn"`
	PebbleDir       string `yaml:"pebble_dir"`
}

func defaults() Config {
	return Config{
		AppEnv:          "prod",
		HTTPAddr:        ":8080",
		HostawayBase:    "https://api.hostaway.com",
		GoogleBase:      "https://maps.googleapis.com",
		ProviderRPS:     5,
		ApprovalBackend: "file",
		ApprovalPath:    "data/approved.json",
		RedisAddr:       "localhost:6379",
		MySQLDSN:        "root:root@tcp(localhost:3306)/flex?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		PebbleDir:       "data/approvals.pebble",
	}
}

// Load resolves configuration in three layers: built-in defaults, an optional
// YAML file named by CONFIG_FILE, then environment variables. Env wins.
func Load() Config {
	_ = godotenv.Load()

	c := defaults()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		if b, err := os.ReadFile(p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("config file unreadable, using defaults")
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("config file invalid, using defaults")
		}
	}

	c.AppEnv = env("APP_ENV", c.AppEnv)
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.HostawayBase = env("HOSTAWAY_BASE_URL", c.HostawayBase)
	c.HostawayAccountID = env("HOSTAWAY_ACCOUNT_ID", c.HostawayAccountID)
	c.HostawayAPIKey = env("HOSTAWAY_API_KEY", c.HostawayAPIKey)
	c.GoogleBase = env("GOOGLE_BASE_URL", c.GoogleBase)
	c.GooglePlacesKey = env("GOOGLE_PLACES_API_KEY", c.GooglePlacesKey)
	c.ProviderRPS = atoi("PROVIDER_RPS", c.ProviderRPS)
	c.ApprovalBackend = env("APPROVAL_BACKEND", c.ApprovalBackend)
	c.ApprovalPath = env("APPROVAL_PATH", c.ApprovalPath)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisPass = env("REDIS_PASSWORD", c.RedisPass)
	c.RedisDB = atoi("REDIS_DB", c.RedisDB)
	c.MySQLDSN = env("MYSQL_DSN", c.MySQLDSN)
	c.PebbleDir = env("PEBBLE_DIR", c.PebbleDir)

	if c.HostawayAccountID == "" || c.HostawayAPIKey == "" {
		log.Warn().Msg("hostaway credentials not set, reference dataset will be served")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
