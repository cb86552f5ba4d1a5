package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "Sistema Class")
	Conf.SetDefault("apiBaseUrl", "https://sistema-class-backend.vercel.app/api")
	Conf.SetDefault("requestTimeout", 30*time.Second)
	Conf.SetDefault("healthCheckInterval", 15*time.Second)
	Conf.SetDefault("distinguishedUser", "davi")
	Conf.SetDefault("sessionDir", defaultSessionDir())
	Conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case strings.ToUpper("TEST"):
		Conf.SetDefault("testMode", true)
	}
	Conf.SetEnvPrefix(env)
	Conf.SetDefault("env", env)
	Conf.SetDefault("build", "")

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		}
	}
	Conf.AutomaticEnv()
}

func defaultSessionDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".sistemaclass")
	}
	return filepath.Join(dir, "sistemaclass")
}
