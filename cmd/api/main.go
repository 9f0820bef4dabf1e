package main

import (
	"errors"
	"io/fs"
	"log"

	"RestaurantPOS/config"
	"RestaurantPOS/internal/api"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Env file error: %s", err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	api.Run(cfg)
}
