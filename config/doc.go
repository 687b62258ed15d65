// Package config provides configuration loading for applications embedding
// wirekit.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with optional .env loading via godotenv. Environment variables
// override file values using underscore-separated paths (e.g.
// WIREKIT_LOGGING_LEVEL).
//
// # Usage
//
//	var s config.Settings
//	err := config.Load("wirekit", &s)
package config
