// Package app wires config, sources and services into the controllers that
// the server and the CLI share.
package app

import (
	"context"

	"flipbot/flipbot/config"
	"flipbot/flipbot/controllers"
	"flipbot/flipbot/services/estimator"
	"flipbot/flipbot/services/extractor"
	"flipbot/flipbot/services/scraper"
	"flipbot/flipbot/sources/psql"
	"flipbot/flipbot/sources/psql/dao"
	"flipbot/flipbot/sources/storage"
	"flipbot/flipbot/utils/logging"

	"go.uber.org/zap"
)

type App struct {
	Config  config.Config
	Policy  config.Policy
	Analyze *controllers.AnalyzeController
	Health  *controllers.HealthController
	History *dao.AnalysisDAO

	closers []func()
}

// New builds the App. MinIO, Postgres and the browser renderer are optional;
// when one is configured but cannot be reached it is logged and left out.
func New(ctx context.Context, cfg config.Config, policy config.Policy) *App {
	a := &App{Config: cfg, Policy: policy}
	components := map[string]bool{"archive": false, "history": false, "browser": false}

	// interfaces stay untyped nil when a component is off
	var (
		cache    scraper.Cache
		renderer scraper.Renderer
		archive  controllers.UploadArchiver
		history  controllers.HistoryStore
	)

	if cfg.ArchiveEnabled() {
		mc, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio unavailable, archive and scrape cache disabled", zap.Error(err))
		} else {
			cache, archive = mc, mc
			components["archive"] = true
		}
	}

	if cfg.HistoryEnabled() {
		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("database unavailable, history disabled", zap.Error(err))
		} else {
			a.History = dao.NewAnalysisDAO(db.DB)
			history = a.History
			a.closers = append(a.closers, db.Close)
			components["history"] = true
		}
	}

	if cfg.ScrapeBrowser {
		br, err := scraper.NewBrowserRenderer()
		if err != nil {
			logging.ErrorLogger.Error("browser unavailable, plain HTTP scraping only", zap.Error(err))
		} else {
			renderer = br
			a.closers = append(a.closers, br.Close)
			components["browser"] = true
		}
	}

	s := scraper.NewScraper(scraper.Options{
		FetchTimeout:  cfg.FetchTimeout,
		SearchTimeout: cfg.SearchTimeout,
		SearchURL:     cfg.SearchURL,
		SearchPerMin:  cfg.SearchPerMin,
		MaxChars:      cfg.ScrapeMaxChars,
	}, cache, renderer)

	n := extractor.NewNormalizer(extractor.NewPdfToText(cfg.PdfToTextPath), extractor.NewTesseract(cfg.TesseractPath), s)
	e := estimator.NewEstimator(policy, s)

	a.Analyze = controllers.NewAnalyzeController(n, e, archive, history)
	a.Health = controllers.NewHealthController(components)
	logging.AppLogger.Info("flipbot components",
		zap.Bool("archive", components["archive"]),
		zap.Bool("history", components["history"]),
		zap.Bool("browser", components["browser"]),
	)
	return a
}

// Close releases whatever New opened, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
