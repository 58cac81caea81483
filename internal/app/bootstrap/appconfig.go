package bootstrap

import "time"

// AppConfig holds the application-specific configuration loaded from the
// config file and environment.
type AppConfig struct {
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	JWTSecret string
	JWTExpiry time.Duration

	// Storage backend: "local" (default) or "s3".
	StorageType      string
	StorageLocalPath string
	StorageLocalURL  string

	StorageS3Region string
	StorageS3Bucket string
	StorageS3Prefix string

	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	AppName   string
	LoginURL  string
	BaseURL   string
	OTPExpiry time.Duration

	SeedAdminEmail    string
	SeedAdminPassword string
}
