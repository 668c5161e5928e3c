package main

import (
	"log"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/gifty-speed/counter"
	"github.com/gin-gonic/gin"
)

// Config is read from the environment; a .env file in the working directory
// is loaded first.
type Config struct {
	Port          string
	DBPath        string
	ContentFile   string
	AdminUsername string
	AdminPassword string
	FrameRate     int
}

func loadConfig() Config {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		DBPath:        os.Getenv("DB_PATH"),
		ContentFile:   os.Getenv("CONTENT_FILE"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		FrameRate:     counter.DefaultFrameRate,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "site.db"
	}
	if fps := os.Getenv("FRAME_RATE"); fps != "" {
		n, err := strconv.Atoi(fps)
		if err != nil || n <= 0 {
			log.Printf("Ignoring invalid FRAME_RATE %q", fps)
		} else {
			cfg.FrameRate = n
		}
	}

	// Default credentials for development (set both in production)
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return cfg
}
