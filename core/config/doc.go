// Package config provides configuration management for Craftdex.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials and bucket settings for backups
//   - Log: Logging level and format
//   - Transfer: Import/export defaults (format, merge strategy, app version)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
