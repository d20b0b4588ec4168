// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the filehost server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseFile: path to the JSON document backing the record store.
//   - UploadDir: root directory for uploaded blobs.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not
//     use the development default in prod.
//   - SessionValidityDuration: session token lifetime.
//   - MaxFileUploadSize / MaxAppUploadSize: multipart upload limits, bytes.
//   - AdminUsername / AdminPassword / AdminEmail: bootstrap admin account
//     created on first start when absent.
type Config struct {
	EndpointAddr            string
	DatabaseFile            string
	UploadDir               string
	SecretKey               string
	SessionValidityDuration time.Duration
	MaxFileUploadSize       int64
	MaxAppUploadSize        int64
	AdminUsername           string
	AdminPassword           string
	AdminEmail              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DatabaseFile = "database.json"
	c.UploadDir = "uploads"
	c.SecretKey = "secretKey"
	c.SessionValidityDuration = 24 * time.Hour
	c.MaxFileUploadSize = 100 << 20
	c.MaxAppUploadSize = 500 << 20
	c.AdminUsername = "admin"
	c.AdminPassword = "admin123"
	c.AdminEmail = "admin@filehost.local"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
