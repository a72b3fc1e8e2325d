// Package config provides configuration management for tablediff.
//
// Values come from environment variables, optionally seeded from a .env
// file, with defaults declared in `default:"..."` struct tags on each
// section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, retained background jobs
//   - Storage: S3/MinIO credentials and report bucket
//   - Database: run history driver and connection
//   - Log: logging level and format
//   - Diff: default source kind, delimiter, report directory, batch parallelism
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
