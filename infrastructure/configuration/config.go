package configuration

import (
	"fmt"
	"os"
	"strconv"

	"transcript-app/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Session     Session     `json:"session"`
	Google      Google      `json:"google"`
	YouTube     YouTube     `json:"youtube"`
	Cache       Cache       `json:"cache"`
	Client      Client      `json:"client"`
	RateLimit   RateLimit   `json:"rateLimit"`
}

type App struct {
	Port        int    `json:"port"`
	Env         string `json:"env"`
	ClientURL   string `json:"clientURL"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type Database struct {
	Mongo Mongo `json:"mongo"`
}

type Mongo struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

type Session struct {
	Secret     string `json:"secret"`
	CookieName string `json:"cookieName"`
	// MaxAgeHours is the lifetime of a server-side session.
	MaxAgeHours int `json:"maxAgeHours"`
}

type Google struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURL  string `json:"redirectURL"`
}

type YouTube struct {
	APIKey string `json:"apiKey"`
}

// Cache configures the terminal client's embedded entity store.
type Cache struct {
	Dir string `json:"dir"`
}

// Client configures the terminal client's view of the backend.
type Client struct {
	APIURL string `json:"apiURL"`
}

type RateLimit struct {
	PerMinute int `json:"perMinute"`
	Burst     int `json:"burst"`
}

var C Config

func init() {
	LoadConfig()
	ApplyDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Debug("Config file not found, using environment and defaults")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Debug("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

// ApplyDefaults layers environment overrides and defaults over the decoded file config.
// Environment variables win over file values.
func ApplyDefaults(c *Config) {
	initApp(c)
	initDatabase(c)
	initRedis(c)
	initSession(c)
	initGoogle(c)
	initClient(c)
}

func initApp(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.App.Port = p
		}
	}
	if c.App.Port == 0 {
		c.App.Port = 3000
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = v
	} else if v := os.Getenv("ENV"); v != "" {
		c.App.Env = v
	}
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	c.App.ClientURL = envOr("CLIENT_URL", c.App.ClientURL, "http://localhost:5173")
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.App.TLSEnabled = b
		}
	}
	c.App.TLSCertFile = envOr("TLS_CERT_FILE", c.App.TLSCertFile, "")
	c.App.TLSKeyFile = envOr("TLS_KEY_FILE", c.App.TLSKeyFile, "")
	if c.App.TLSEnabled {
		logger.GetLogger().WithFields(map[string]interface{}{"cert": c.App.TLSCertFile, "key": c.App.TLSKeyFile}).Info("TLS enabled via configuration")
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.PerMinute = n
		}
	}
	if c.RateLimit.PerMinute <= 0 {
		c.RateLimit.PerMinute = 60
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}
}

func initDatabase(c *Config) {
	c.Database.Mongo.URI = envOr("MONGODB_URI", c.Database.Mongo.URI, "mongodb://localhost:27017/youtube-transcript")
	c.Database.Mongo.Name = envOr("MONGODB_DB", c.Database.Mongo.Name, "youtube-transcript")
}

func initRedis(c *Config) {
	c.RedisClient.Host = envOr("REDIS_HOST", c.RedisClient.Host, "localhost")
	c.RedisClient.Port = envOr("REDIS_PORT", c.RedisClient.Port, "6379")
	c.RedisClient.Username = envOr("REDIS_USERNAME", c.RedisClient.Username, "")
	c.RedisClient.Password = envOr("REDIS_PASSWORD", c.RedisClient.Password, "")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisClient.DB = n
		}
	}
	c.RedisClient.Prefix = envOr("REDIS_PREFIX", c.RedisClient.Prefix, "yt-transcript")
}

func initSession(c *Config) {
	c.Session.Secret = envOr("SESSION_SECRET", c.Session.Secret, "")
	if c.Session.Secret == "" {
		c.Session.Secret = "your-secret-key-change-in-production"
		logger.GetLogger().Warn("SESSION_SECRET not set; using the development default")
	}
	c.Session.CookieName = envOr("SESSION_COOKIE_NAME", c.Session.CookieName, "connect.sid")
	if c.Session.MaxAgeHours <= 0 {
		c.Session.MaxAgeHours = 24
	}
}

func initGoogle(c *Config) {
	c.Google.ClientID = envOr("GOOGLE_CLIENT_ID", c.Google.ClientID, "")
	c.Google.ClientSecret = envOr("GOOGLE_CLIENT_SECRET", c.Google.ClientSecret, "")
	scheme := "http"
	if c.App.TLSEnabled {
		scheme = "https"
	}
	defaultRedirect := fmt.Sprintf("%s://localhost:%d/auth/google/callback", scheme, c.App.Port)
	c.Google.RedirectURL = envOr("GOOGLE_REDIRECT_URL", c.Google.RedirectURL, defaultRedirect)
	c.YouTube.APIKey = envOr("YOUTUBE_API_KEY", c.YouTube.APIKey, "")
}

func initClient(c *Config) {
	c.Client.APIURL = envOr("API_URL", c.Client.APIURL, fmt.Sprintf("http://localhost:%d", c.App.Port))
	defaultDir := ".ytt-cache"
	if home, err := os.UserCacheDir(); err == nil {
		defaultDir = home + string(os.PathSeparator) + "ytt"
	}
	c.Cache.Dir = envOr("CACHE_DIR", c.Cache.Dir, defaultDir)
}

// IsProduction reports whether cookies must be issued as Secure/SameSite=None.
func (a App) IsProduction() bool {
	return a.Env == "production" || a.Env == "prod"
}

// RedisAddr joins host and port.
func (r RedisClient) RedisAddr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// envOr returns the environment value when set, otherwise the config value, otherwise the fallback.
// Placeholder config values starting with YOUR_ are treated as unset.
func envOr(envKey, configValue, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !isPlaceholder(configValue) {
		return configValue
	}
	return fallback
}

func isPlaceholder(v string) bool {
	return len(v) >= 5 && v[:5] == "YOUR_"
}
