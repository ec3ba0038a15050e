package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"PennyRadar/internal/collector"
	"PennyRadar/internal/config"
	"PennyRadar/internal/news"
	"PennyRadar/internal/notifier"
	"PennyRadar/internal/pipeline"
	"PennyRadar/internal/recorder"
	"PennyRadar/internal/scheduler"
	"PennyRadar/internal/screener"
	"PennyRadar/internal/universe"
)

// defaultNewsBaseURL is the search endpoint the news flag queries.
const defaultNewsBaseURL = "https://query1.finance.yahoo.com"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PennyRadar starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init universe provider
	prov := universe.NewProvider(cfg.Universe.URL, cfg.Proxy)

	// Init market-data collector
	fetcher := collector.NewHistoryFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)

	// Init news client
	nc := news.NewClient(defaultNewsBaseURL, cfg.Proxy, cfg.News.LookbackDays)
	if cfg.News.LookbackDays <= 0 {
		log.Println("[INFO] news check disabled")
	}

	// Init Discord notifier
	var dn pipeline.Notifier
	if cfg.Discord.WebhookURL != "" {
		dn = notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)
	} else {
		log.Println("[INFO] no DISCORD_WEBHOOK_URL set, notifications disabled")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	p := &pipeline.Pipeline{
		Universe:  prov,
		Collector: col,
		News:      nc,
		Notifier:  dn,
		Recorder:  rec,
		Thresholds: screener.Thresholds{
			MinPrice:          cfg.Screen.MinPrice,
			MaxPrice:          cfg.Screen.MaxPrice,
			MinAvgVol:         cfg.Screen.MinAvgVol,
			VolRatioThreshold: cfg.Screen.VolRatioThreshold,
			PctChangeMin:      cfg.Screen.PctChangeMin,
		},
		TopN:         cfg.Screen.TopN,
		MaxSymbols:   cfg.Universe.MaxSymbols,
		OutputDir:    cfg.Output.Dir,
		NewsThrottle: 250 * time.Millisecond,
	}

	// One-shot mode for CI-style invocation
	if os.Getenv("RUN_ONCE") == "true" {
		p.Run()
		return
	}

	// Init scheduler
	sched := scheduler.NewScheduler(p)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] PennyRadar is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] PennyRadar stopped")
}
