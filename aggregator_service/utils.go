package main

import (
	"log"
	"os"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
	"github.com/ShounakM04/Blog-Microservices/auth"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Service addresses and limits come from config.yaml; the shared token
// secret comes from the environment like every other service.
func LoadAppConfig(path string) (models.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AppConfig{}, err
	}
	var config models.AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return models.AppConfig{}, err
	}
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file, reading environment directly")
	}
	secret, err := auth.DecodeSecret(os.Getenv("JWT_SECRET"))
	if err != nil {
		return models.AppConfig{}, err
	}
	config.JWTSecret = secret
	return config, nil
}

func InitLogger() {
	f, _ := os.OpenFile("aggregator_service.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
