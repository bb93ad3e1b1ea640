// Package config provides configuration management for the game catalog service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live next to each field as `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: catalog database driver and connection details
//   - Storage: S3/MinIO credentials and bucket for processed media
//   - Provider: upstream catalog endpoints, identity header and rate limits
//   - Bus: asset event bus driver (memory, redis)
//   - Media: similarity threshold and box art canvas
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
