package config

import (
	"fmt"
	"os"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	CRM      CRMConfig
	Drive    DriveConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RabbitMQConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	VHost    string
}

// CRMConfig holds the ActiveCampaign API connection settings.
type CRMConfig struct {
	BaseURL  string
	APIToken string
}

// DriveConfig holds the Google Drive/Sheets settings for job provisioning.
// EstimatesFolderID is the parent folder every new job folder is created under.
// The template IDs point at the master documents copied into each new job.
type DriveConfig struct {
	CredentialsFile    string
	EstimatesFolderID  string
	EstimateTemplateID string
	CostingTemplateID  string
}

// WorkerConfig holds the provisioning worker settings.
type WorkerConfig struct {
	ProvisionQueue string
	PrefetchCount  int
}

func Load() (*Config, error) {
	var missing []string

	get := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	config := &Config{
		Server: ServerConfig{
			Port: get("SERVER_PORT"),
			Host: get("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     get("DB_HOST"),
			Port:     get("DB_PORT"),
			User:     get("DB_USER"),
			Password: get("DB_PASSWORD"),
			DBName:   get("DB_NAME"),
			SSLMode:  get("DB_SSLMODE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Host:     get("RABBITMQ_HOST"),
			Port:     get("RABBITMQ_PORT"),
			User:     get("RABBITMQ_USER"),
			Password: get("RABBITMQ_PASSWORD"),
			VHost:    get("RABBITMQ_VHOST"),
		},
		CRM: CRMConfig{
			BaseURL:  get("CRM_BASE_URL"),
			APIToken: get("CRM_API_TOKEN"),
		},
		Drive: DriveConfig{
			CredentialsFile:    get("GOOGLE_CREDENTIALS_FILE"),
			EstimatesFolderID:  get("DRIVE_ESTIMATES_FOLDER_ID"),
			EstimateTemplateID: get("DRIVE_ESTIMATE_TEMPLATE_ID"),
			CostingTemplateID:  get("DRIVE_COSTING_TEMPLATE_ID"),
		},
		Worker: WorkerConfig{
			ProvisionQueue: get("PROVISION_QUEUE"),
			PrefetchCount:  1,
		},
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return config, nil
}

// ConnectionString returns a DSN string for GORM
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// MigrationURL returns a postgres:// URL for golang-migrate
func (c *DatabaseConfig) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func (c *RabbitMQConfig) ConnectionURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s%s",
		c.User, c.Password, c.Host, c.Port, c.VHost)
}
