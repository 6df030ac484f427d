package main

import (
	"log"
	"os"

	"github.com/ShounakM04/Blog-Microservices/auth"
	"github.com/joho/godotenv"
)

func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
	config := Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		ServerPort: os.Getenv("SERVER_PORT"),
		ServerHost: os.Getenv("SERVER_HOST"),
	}
	secret, err := auth.DecodeSecret(os.Getenv("JWT_SECRET"))
	if err != nil {
		return Config{}, err
	}
	config.JWTSecret = secret
	return config, nil
}

func InitLogger() {
	f, _ := os.OpenFile("comment_service.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
