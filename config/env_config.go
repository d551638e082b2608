package config

import (
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Postgres struct {
		HOST     string
		Database string
		Username string
		Password string
		Port     string
	}
	JWT struct {
		SecretKey string
		Algorithm string
	}
	CORS struct {
		AllowDomains string
		GlobalDomain string
	}
	Redis struct {
		Password  string
		Database  int
		RedisHost string
		RedisPort string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint     string
		AccessKey    string
		SecretKey    string
		SourceBucket string
		UseSSL       bool
		UploadExpire int // seconds a presigned upload URL stays valid
	}
	CDN struct {
		Domain          string
		Scheme          string
		Resolutions     []int
		SignedURLActive bool
		SignedURLExpire int // seconds a signed delivery URL stays valid
		KeyPairID       string
		PrivateKeyPEM   string
	}
	// UpdateStateSecrets holds the shared secrets accepted on storage
	// notifications. Several may be configured at once so secrets can be
	// rotated without dropping in-flight notifications.
	UpdateStateSecrets []string

	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}

	Environment struct {
		Mode  string
		Group string
	}
	DomainName string
}

// DefaultResolutions is used when VIDEO_RESOLUTIONS is not configured and a
// video carries no per-record resolution set.
var DefaultResolutions = []int{240, 480, 720, 1080}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.HOST = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = os.Getenv("PGPOOL_PORT")

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	config.JWT.Algorithm = os.Getenv("JWT_ALGORITHM")
	if config.JWT.Algorithm == "" {
		config.JWT.Algorithm = "HS256"
	}

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	config.CORS.GlobalDomain = os.Getenv("GLOBAL_DOMAIN")

	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	config.Redis.RedisPort = os.Getenv("REDIS_PORT")

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	// MinIO (source bucket receiving uploads before transcoding)
	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	config.Minio.SourceBucket = os.Getenv("MINIO_SOURCE_BUCKET")
	if config.Minio.SourceBucket == "" {
		config.Minio.SourceBucket = "media-source"
	}
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	if val := os.Getenv("MINIO_UPLOAD_EXPIRE"); val != "" {
		if expire, err := strconv.Atoi(val); err == nil {
			config.Minio.UploadExpire = expire
		}
	}
	if config.Minio.UploadExpire == 0 {
		config.Minio.UploadExpire = 3600
	}

	// CDN delivery
	config.CDN.Domain = os.Getenv("CDN_DOMAIN")
	config.CDN.Scheme = os.Getenv("CDN_URL_SCHEME")
	if config.CDN.Scheme == "" {
		config.CDN.Scheme = "https"
	}
	config.CDN.Resolutions = parseResolutions(os.Getenv("VIDEO_RESOLUTIONS"))
	if len(config.CDN.Resolutions) == 0 {
		config.CDN.Resolutions = DefaultResolutions
	}
	config.CDN.SignedURLActive = os.Getenv("CDN_SIGNED_URLS_ACTIVE") == "true"
	if val := os.Getenv("CDN_SIGNED_URLS_VALIDITY"); val != "" {
		if validity, err := strconv.Atoi(val); err == nil {
			config.CDN.SignedURLExpire = validity
		}
	}
	if config.CDN.SignedURLExpire == 0 {
		config.CDN.SignedURLExpire = 7200 // 2 hours
	}
	config.CDN.KeyPairID = os.Getenv("CDN_KEY_PAIR_ID")
	config.CDN.PrivateKeyPEM = os.Getenv("CDN_PRIVATE_KEY")
	if config.CDN.PrivateKeyPEM == "" {
		if path := os.Getenv("CDN_PRIVATE_KEY_FILE"); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				config.CDN.PrivateKeyPEM = string(data)
			}
		}
	}

	// Shared secrets for update-state notifications, comma separated
	for _, secret := range strings.Split(os.Getenv("UPDATE_STATE_SHARED_SECRETS"), ",") {
		secret = strings.TrimSpace(secret)
		if secret != "" {
			config.UpdateStateSecrets = append(config.UpdateStateSecrets, secret)
		}
	}

	// Grafana/OpenTelemetry
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	if grafanaEndpoint == "" {
		grafanaEndpoint = "https://grafana.gauas.online"
	}
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	if strings.HasPrefix(grafanaEndpoint, "https://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	} else if strings.HasPrefix(grafanaEndpoint, "http://") {
		config.Grafana.OTLPEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	} else {
		config.Grafana.OTLPEndpoint = grafanaEndpoint
	}
	config.Grafana.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Grafana.ServiceName == "" {
		config.Grafana.ServiceName = "gau-media-service"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	config.Environment.Group = os.Getenv("GROUP_NAME")
	if config.Environment.Group == "" {
		config.Environment.Group = "local"
	}

	config.DomainName = os.Getenv("DOMAIN_NAME")
	if config.DomainName == "" {
		config.DomainName = "localhost:8080"
	}

	return &config
}

func parseResolutions(raw string) []int {
	var resolutions []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if resolution, err := strconv.Atoi(part); err == nil && resolution > 0 {
			resolutions = append(resolutions, resolution)
		}
	}
	return resolutions
}
