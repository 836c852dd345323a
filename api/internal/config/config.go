package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	// Optional; archival is disabled when empty.
	DatabaseURL string

	TranscriptServiceURL string
	UploadDir            string

	FFmpegBin    string
	WhisperBin   string
	WhisperModel string

	TelegramBotToken string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		TranscriptServiceURL: getEnv("TRANSCRIPT_SERVICE_URL", "https://misinfo-detection.onrender.com/transcript/video"),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),

		FFmpegBin:    getEnv("FFMPEG_BIN", "ffmpeg"),
		WhisperBin:   getEnv("WHISPER_BIN", "whisper"),
		WhisperModel: getEnv("WHISPER_MODEL", "small"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}
}
