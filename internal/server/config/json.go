package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/filehost/internal/flagx"
	"github.com/dmitrijs2005/filehost/internal/timex"
)

// JsonConfig is the intermediate DTO for JSON configuration files. It uses
// timex.Duration for interval fields so JSON can specify either string
// values such as "24h" or integer nanoseconds; after unmarshalling the
// values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseFile            string         `json:"database_file"`
	UploadDir               string         `json:"upload_dir"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	MaxFileUploadSize       int64          `json:"max_file_upload_size"`
	MaxAppUploadSize        int64          `json:"max_app_upload_size"`
	AdminUsername           string         `json:"admin_username"`
	AdminPassword           string         `json:"admin_password"`
	AdminEmail              string         `json:"admin_email"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: a present but broken config
// file is a deployment error, not something to silently skip.
//
// Zero/absent JSON fields keep the value already in Config, so the file
// only needs to mention what it overrides.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseFile != "" {
		config.DatabaseFile = c.DatabaseFile
	}
	if c.UploadDir != "" {
		config.UploadDir = c.UploadDir
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	}
	if c.MaxFileUploadSize != 0 {
		config.MaxFileUploadSize = c.MaxFileUploadSize
	}
	if c.MaxAppUploadSize != 0 {
		config.MaxAppUploadSize = c.MaxAppUploadSize
	}
	if c.AdminUsername != "" {
		config.AdminUsername = c.AdminUsername
	}
	if c.AdminPassword != "" {
		config.AdminPassword = c.AdminPassword
	}
	if c.AdminEmail != "" {
		config.AdminEmail = c.AdminEmail
	}
}
