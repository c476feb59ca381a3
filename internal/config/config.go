package config

import "os"

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Media    MediaConfig
	Postgres PostgresConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  string
}

type MediaConfig struct {
	Driver        string
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Endpoint    string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        getenv("PORT", "8080"),
			CORSOrigins: os.Getenv("CORS_ORIGINS"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getenv("TOKEN_TTL", "720h"),
		},
		Media: MediaConfig{
			Driver:        getenv("MEDIA_DRIVER", "local"),
			UploadDir:     getenv("UPLOAD_DIR", "uploads"),
			PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
			S3Bucket:      os.Getenv("S3_BUCKET"),
			S3Endpoint:    os.Getenv("S3_ENDPOINT"),
			S3Region:      getenv("S3_REGION", "auto"),
			S3AccessKey:   os.Getenv("S3_ACCESS_KEY_ID"),
			S3SecretKey:   os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
