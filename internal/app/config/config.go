package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr        string
	DatabaseURL     string
	ExportDir       string
	CORSAllowOrigin string
	DefaultCurrency string
	PaperSize       string
	CaptureWidth    int
	CaptureScale    float64
}

func MustLoad() Config {
	return Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		DatabaseURL:     env("DATABASE_URL", ""),
		ExportDir:       env("EXPORT_DIR", ""),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		DefaultCurrency: env("DEFAULT_CURRENCY", "MXN"),
		PaperSize:       env("PAPER_SIZE", "A4"),
		CaptureWidth:    mustInt("CAPTURE_WIDTH", 794),
		CaptureScale:    mustFloat("CAPTURE_SCALE", 2),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s=%q: %v", k, v, err)
	}
	return n
}

func mustFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid env %s=%q: %v", k, v, err)
	}
	return f
}
