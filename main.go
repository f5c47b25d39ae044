package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"snowscraper/browser"
	"snowscraper/cache"
	"snowscraper/config"
	"snowscraper/etl"
	"snowscraper/fetch"
	"snowscraper/live"
	"snowscraper/storage"
	"snowscraper/utils"
)

func main() {
	runETL := flag.Bool("etl", false, "run the batch ETL job and exit instead of serving HTTP")
	smokeTest := flag.Bool("smoke-test", false, "run a quick verification on a few resorts")
	force := flag.Bool("force", false, "force scrape even if today's file exists")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLogger()

	pool := browser.New(cfg.BrowserPool)
	defer pool.Shutdown()

	var fetcher fetch.Fetcher = fetch.NewBrowserFetcher(fetch.NewClient(30*time.Second), pool, 20*time.Second)
	fetcher = fetch.NewCachedFetcher(fetcher, cache.New(cfg.RedisAddr), time.Duration(cfg.CacheTTLMins)*time.Minute)

	var pg *storage.PostgresWriter
	if cfg.PostgresHost != "" {
		var err error
		pg, err = storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Warn("Warehouse unavailable, continuing without it: %v", err)
			pg = nil
		} else {
			defer pg.Close()
		}
	}

	job := etl.NewJob(cfg, fetcher, logger, pg)

	if *runETL || *smokeTest {
		err := job.Run(context.Background(), etl.Options{SmokeTest: *smokeTest, Force: *force})
		if err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
		return
	}

	service := live.NewService(fetcher, logger, nil)
	handler := live.NewHandler(service, job, logger)

	router := mux.NewRouter()
	handler.Register(router)

	wrapped := handlers.CombinedLoggingHandler(os.Stdout, handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST"}),
	)(router))

	logger.Info("Server is running on port %s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, wrapped); err != nil {
		logger.Error("server: %v", err)
		os.Exit(1)
	}
}
