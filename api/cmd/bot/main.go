package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"misinfo-checker/api/internal/config"
	"misinfo-checker/api/internal/logging"
	"misinfo-checker/api/internal/misinfo"
	"misinfo-checker/api/internal/oracle/gemini"
	"misinfo-checker/api/internal/scrape"
	"misinfo-checker/api/internal/store"
	"misinfo-checker/api/internal/transcribe"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func main() {
	cfg := config.Load()
	log := logging.New("misinfo-bot")

	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("missing required env TELEGRAM_BOT_TOKEN")
	}

	ctx := context.Background()

	engine, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client")
	}
	defer engine.Close()

	var archiver misinfo.Archiver
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open")
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		archiver = store.NewRecordRepo(db)
	}

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

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram bot")
	}
	bot.Debug = false
	log.Info().Str("account", bot.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for upd := range bot.GetUpdatesChan(u) {
		if upd.Message == nil {
			continue
		}
		handleMessage(bot, pipeline, cfg.UploadDir, upd.Message, cfg.TelegramBotToken)
	}
}

func handleMessage(bot *tgbotapi.BotAPI, pipeline *misinfo.Pipeline, uploadDir string, msg *tgbotapi.Message, token string) {
	cid := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			send(bot, cid, "Send text, an article/image/video URL, or a photo and I will check it for misinformation.")
		default:
			send(bot, cid, "Unknown command")
		}
		return
	}

	req, err := buildRequest(bot, uploadDir, msg, token)
	if err != nil {
		send(bot, cid, "Could not read that message: "+err.Error())
		return
	}

	send(bot, cid, "Checking…")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := pipeline.Check(ctx, req)
	if err != nil {
		send(bot, cid, err.Error())
		return
	}
	send(bot, cid, formatResult(res))
}

func buildRequest(bot *tgbotapi.BotAPI, uploadDir string, msg *tgbotapi.Message, token string) (misinfo.Request, error) {
	if len(msg.Photo) > 0 {
		ph := msg.Photo[len(msg.Photo)-1]
		tf, err := bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
		if err != nil {
			return misinfo.Request{}, err
		}
		url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", token, tf.FilePath)
		path, err := download(url, uploadDir, filepath.Ext(tf.FilePath))
		if err != nil {
			return misinfo.Request{}, err
		}
		return misinfo.Request{File: &misinfo.UploadedFile{
			MimeType:     "image/jpeg",
			StoragePath:  path,
			OriginalName: filepath.Base(tf.FilePath),
		}}, nil
	}
	return misinfo.Request{Content: strings.TrimSpace(msg.Text)}, nil
}

func download(url, dir, ext string) (string, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func formatResult(res misinfo.AggregateResult) string {
	var sb strings.Builder
	if res.OverallVerdict == misinfo.OverallMisinfo {
		sb.WriteString("⚠️ MISINFO DETECTED\n")
	} else {
		sb.WriteString("✅ Looks accurate\n")
	}
	for _, f := range res.Findings {
		fmt.Fprintf(&sb, "\n[%s] %s: %s", f.Type, f.Verdict, f.Reason)
		if f.Summary != "" {
			fmt.Fprintf(&sb, "\nSummary: %s", f.Summary)
		}
	}
	return sb.String()
}

func send(bot *tgbotapi.BotAPI, chatID int64, text string) {
	_, _ = bot.Send(tgbotapi.NewMessage(chatID, text))
}
