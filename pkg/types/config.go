package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Token signing key for issued bearer tokens.
	// openssl rand -base64 32
	// to generate a value
	JWTSecret     string `envconfig:"JWT_SECRET"`
	TokenTTLHours uint   `envconfig:"TOKEN_TTL_HOURS" default:"24"`

	// Uploaded images. Backend is either "local" or "s3".
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"local"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
}
