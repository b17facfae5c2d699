package config

import (
	"os"
)

// Warcraft Logs API configuration struct.
type WclConfiguration struct {
	ClientID     string
	ClientSecret string
	OAuthURL     string
	ApiURL       string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	URL string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Bucket configuration for the log uploads.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

var (
	Wcl      WclConfiguration
	Database DatabaseConfiguration
	Redis    RedisConfiguration
	Bucket   BucketConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the Warcraft Logs configuration.
	Wcl.ClientID = os.Getenv("WCL_CLIENT_ID")
	Wcl.ClientSecret = os.Getenv("WCL_CLIENT_SECRET")
	Wcl.OAuthURL = getEnvDefault("WCL_OAUTH_URL", "https://www.warcraftlogs.com/oauth/token")
	Wcl.ApiURL = getEnvDefault("WCL_API_URL", "https://www.warcraftlogs.com/api/v2/client")

	// Load the database configuration.
	Database.URL = os.Getenv("DATABASE_URL")

	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the bucket configuration.
	Bucket.Region = os.Getenv("BUCKET_REGION")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.LogBucket = os.Getenv("BUCKET_LOG_BUCKET")
}

// Get a env variable with a default fallback.
func getEnvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
