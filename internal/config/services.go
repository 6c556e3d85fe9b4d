package config

type SMSConfig struct {
	Provider   string `yaml:"provider"`
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	Enabled    bool   `yaml:"enabled"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	Enabled   bool   `yaml:"enabled"`
}

type StorageConfig struct {
	Provider  string `yaml:"provider"` // local, s3
	LocalPath string `yaml:"local_path"`
	BaseURL   string `yaml:"base_url"`
	S3Region  string `yaml:"s3_region"`
	S3Bucket  string `yaml:"s3_bucket"`
	CDNDomain string `yaml:"cdn_domain"`
}

func loadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Provider:   getEnv("SMS_PROVIDER", "twilio"),
		AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		Enabled:    getEnvAsBool("SMS_ENABLED", false),
	}
}

func loadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:      getEnvAsInt("SMTP_PORT", 587),
		Username:  getEnv("SMTP_USERNAME", ""),
		Password:  getEnv("SMTP_PASSWORD", ""),
		FromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@carefoundation.org"),
		FromName:  getEnv("SMTP_FROM_NAME", "Care Foundation"),
		Enabled:   getEnvAsBool("SMTP_ENABLED", false),
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		BaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		S3Region:  getEnv("AWS_S3_REGION", "ap-south-1"),
		S3Bucket:  getEnv("AWS_S3_BUCKET", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
	}
}
