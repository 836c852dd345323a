package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"misinfo-checker/api/internal/config"
	"misinfo-checker/api/internal/handle"
	"misinfo-checker/api/internal/httpserver"
	"misinfo-checker/api/internal/logging"
	"misinfo-checker/api/internal/misinfo"
	"misinfo-checker/api/internal/oracle/gemini"
	"misinfo-checker/api/internal/scrape"
	"misinfo-checker/api/internal/store"
	"misinfo-checker/api/internal/transcribe"
)

func main() {
	cfg := config.Load()
	log := logging.New("misinfo-api")

	ctx := context.Background()

	engine, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client")
	}
	defer engine.Close()

	// --- Postgres (optional; archival only) ---
	var (
		archiver misinfo.Archiver
		healthz  func() error
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping")
		}
		log.Info().Msg("db connected, archival enabled")

		archiver = store.NewRecordRepo(db)
		healthz = func() error {
			c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.PingContext(c)
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set, archival disabled")
	}

	// --- Pipeline wiring ---
	text := misinfo.NewTextAnalyzer(engine, log)
	article := misinfo.NewArticleAnalyzer(scrape.NewFetcher(log), text, log)
	image := misinfo.NewImageAnalyzer(engine, log)
	media := misinfo.NewMediaAnalyzer(
		engine,
		transcribe.NewPlatformClient(cfg.TranscriptServiceURL),
		transcribe.New(cfg.FFmpegBin, cfg.WhisperBin, cfg.WhisperModel, log),
		log,
	)
	pipeline := misinfo.NewPipeline(text, article, image, media, archiver, log)

	h := handle.New(pipeline, cfg.UploadDir, log)
	mux := httpserver.NewMux(h, healthz)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("model", cfg.GeminiModel).Msg("misinfo-checker listening")
	log.Fatal().Err(http.ListenAndServe(addr, mux)).Msg("server stopped")
}
