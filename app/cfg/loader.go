package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Blog aggregation configuration
	DevtoUsername string `long:"devto-username" env:"DEVTO_USERNAME" description:"Default dev.to author handle used when the caller omits username"`
	DevtoAPIURL   string `long:"devto-api-url" env:"DEVTO_API_URL" default:"https://dev.to/api" description:"Base URL of the dev.to API"`
	CacheTTL      int    `long:"cache-ttl" env:"CACHE_TTL" default:"3600" description:"Freshness window for cached posts in seconds"`

	// Videos aggregation configuration
	YoutubeChannelID string `long:"youtube-channel-id" env:"YOUTUBE_CHANNEL_ID" description:"Default YouTube channel ID for the videos endpoint (optional)"`

	// Site content configuration
	ContentDir string `long:"content-dir" env:"CONTENT_DIR" default:"./content" description:"Directory containing site content YAML files"`

	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./devfolio.db" description:"Path to the SQLite database file"`

	// Background refresh configuration
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for refresh tasks"`
	SchedulerInterval int `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"devfolio/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Sao_Paulo)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		DevtoUsername:     raw.DevtoUsername,
		DevtoAPIURL:       raw.DevtoAPIURL,
		CacheTTL:          raw.CacheTTL,
		YoutubeChannelID:  raw.YoutubeChannelID,
		ContentDir:        raw.ContentDir,
		DBPath:            raw.DBPath,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
