package main

import (
	"errors"
	"log"
	"os"
	"regexp"
	"time"

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

	config.TokenTTL = 24 * time.Hour
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, errors.New("invalid TOKEN_TTL value")
		}
		config.TokenTTL = parsed
	}
	return config, nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func check(user User) error {
	if len(user.Name) == 0 {
		return errors.New("name cannot be empty")
	}
	if len(user.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	if len(user.Email) == 0 {
		return errors.New("email cannot be empty")
	}
	if !emailRegex.MatchString(user.Email) {
		return errors.New("invalid email format")
	}
	if len(user.Password) < 4 {
		return errors.New("password must be at least 4 characters")
	}
	return nil
}
