package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Everything has a usable
// default so the tool runs without a .env file.
type Config struct {
	FFmpegPath  string // ffmpeg binary; ffprobe is derived from it
	YtdlpPath   string // yt-dlp binary for the fetch command
	DownloadDir string // where fetch places extracted MP3s

	// Hot-folder mode.
	WatchDir       string
	WatchSemitones float64

	// Logging.
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat gets an environment variable as float64 or returns a default value.
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override variables already set in the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
		YtdlpPath:   getEnv("YTDLP_PATH", "yt-dlp"),
		DownloadDir: getEnv("DOWNLOAD_DIR", filepath.Join(home, "Downloads")),

		WatchDir:       getEnv("WATCH_DIR", ""),
		WatchSemitones: getEnvFloat("WATCH_SEMITONES", 0),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 14),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}
