package config

import (
	"os"
	"strings"
)

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// JWT settings (JWT_SECRET, JWT_ISSUER) are read from the environment
// by pkg/jwt directly and are deliberately not duplicated here.
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string

	// ImageStorage selects the image host backend: "cloudinary" or "s3".
	ImageStorage string
	Cloudinary   CloudinaryConfig
	S3           S3Config

	ResendAPIKey string
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ImageStorage: getEnv("IMAGE_STORAGE", "cloudinary"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(origin))
	}

	cfg.Cloudinary.CloudName = os.Getenv("CLOUDINARY_CLOUD_NAME")
	cfg.Cloudinary.APIKey = os.Getenv("CLOUDINARY_API_KEY")
	cfg.Cloudinary.APISecret = os.Getenv("CLOUDINARY_API_SECRET")
	cfg.Cloudinary.Folder = getEnv("CLOUDINARY_FOLDER", "event_images")

	cfg.S3.Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3.AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3.SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	cfg.S3.Bucket = os.Getenv("S3_BUCKET")
	cfg.S3.PublicURL = os.Getenv("S3_PUBLIC_URL")

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
