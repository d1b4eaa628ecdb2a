// Package config loads environment variables into typed structs.
//
// Each struct type is parsed once with caarlos0/env and cached, so packages
// can call Load for the same type without re-reading the environment. A .env
// file in the working directory is loaded on first use when present.
//
//	type Config struct {
//		Server     server.Config
//		LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
//		MountsFile string `env:"STATIC_MOUNTS_FILE,required"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Different types are cached independently.
package config
