// Package config loads typed configuration from the environment.
//
// Structs are described with github.com/caarlos0/env/v11 tags and parsed
// once per type; a .env file is picked up automatically with
// github.com/joho/godotenv:
//
//	type AppConfig struct {
//		Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//		LangDir  string `env:"LANG_DIR" envDefault:"lang"`
//		Secret   string `env:"CSRF_SECRET,required"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Use LoadEnv to read env files from other locations and Reload to re-parse
// a type after the environment changed. Cached values are copies, so callers
// may modify what they receive.
package config
