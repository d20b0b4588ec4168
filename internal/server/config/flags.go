package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/filehost/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line
// flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   path to the JSON database file
//	-u string   upload root directory
//	-s string   session token HMAC secret key
//	-t int      session validity, minutes
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
// Upload limits and the bootstrap admin account are JSON-config only.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-u", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseFile, "d", config.DatabaseFile, "path to database file")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "upload root directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidityDuration := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidityDuration) * time.Minute
}
