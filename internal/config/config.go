package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Screen struct {
		TopN              int     `yaml:"top_n"`
		MinPrice          float64 `yaml:"min_price"`
		MaxPrice          float64 `yaml:"max_price"`
		MinAvgVol         float64 `yaml:"min_avg_vol"`
		VolRatioThreshold float64 `yaml:"vol_ratio_threshold"`
		PctChangeMin      float64 `yaml:"pct_change_min"`
	} `yaml:"screen"`
	Universe struct {
		URL        string `yaml:"url"`
		MaxSymbols int    `yaml:"max_symbols"`
	} `yaml:"universe"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"data_source"`
	News struct {
		LookbackDays int `yaml:"lookback_days"`
	} `yaml:"news"`
	Discord struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"discord"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Screen.TopN = n
		}
	}
	if v := os.Getenv("MIN_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.MinPrice = f
		}
	}
	if v := os.Getenv("MAX_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.MaxPrice = f
		}
	}
	if v := os.Getenv("MIN_AVG_VOL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.MinAvgVol = f
		}
	}
	if v := os.Getenv("VOL_RATIO_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.VolRatioThreshold = f
		}
	}
	if v := os.Getenv("PCT_CHANGE_MIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.PctChangeMin = f
		}
	}
	// "0" is a meaningful value here (news check disabled), so remember
	// whether the variable was set at all before applying the default.
	newsSet := false
	if v := os.Getenv("NEWS_LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.News.LookbackDays = n
			newsSet = true
		}
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("UNIVERSE_URL"); v != "" {
		cfg.Universe.URL = v
	}
	if v := os.Getenv("MAX_SYMBOLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Universe.MaxSymbols = n
		}
	}
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Screen.TopN == 0 {
		cfg.Screen.TopN = 15
	}
	if cfg.Screen.MinPrice == 0 {
		cfg.Screen.MinPrice = 0.25
	}
	if cfg.Screen.MaxPrice == 0 {
		cfg.Screen.MaxPrice = 5.00
	}
	if cfg.Screen.MinAvgVol == 0 {
		cfg.Screen.MinAvgVol = 200000
	}
	if cfg.Screen.VolRatioThreshold == 0 {
		cfg.Screen.VolRatioThreshold = 3.0
	}
	if cfg.Screen.PctChangeMin == 0 {
		cfg.Screen.PctChangeMin = 5.0
	}
	if cfg.News.LookbackDays == 0 && !newsSet {
		cfg.News.LookbackDays = 2
	}
	if cfg.Universe.URL == "" {
		cfg.Universe.URL = "https://raw.githubusercontent.com/datasets/nasdaq-listings/master/data/nasdaq-listed-symbols.csv"
	}
	if cfg.Universe.MaxSymbols == 0 {
		cfg.Universe.MaxSymbols = 6000
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Schedule.ScanCron == "" {
		// Weekdays, 21:15 UTC, after the US close.
		cfg.Schedule.ScanCron = "0 15 21 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that the configured thresholds form a usable screen.
func (c *Config) Validate() error {
	if c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required")
	}
	if c.Screen.TopN <= 0 {
		return fmt.Errorf("screen.top_n must be positive")
	}
	if c.Screen.MinPrice < 0 {
		return fmt.Errorf("screen.min_price must not be negative")
	}
	if c.Screen.MaxPrice <= c.Screen.MinPrice {
		return fmt.Errorf("screen.max_price must be greater than screen.min_price")
	}
	if c.Screen.MinAvgVol < 0 {
		return fmt.Errorf("screen.min_avg_vol must not be negative")
	}
	if c.Screen.VolRatioThreshold <= 0 {
		return fmt.Errorf("screen.vol_ratio_threshold must be positive")
	}
	if c.Universe.MaxSymbols <= 0 {
		return fmt.Errorf("universe.max_symbols must be positive")
	}
	return nil
}
