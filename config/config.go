package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// Public base URL used when no CDN is configured for media
	PUBLIC_BASE_URL string
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// DigitalOcean Spaces (media storage)
	SPACES_ACCESS_KEY string
	SPACES_SECRET_KEY string
	SPACES_BUCKET     string
	SPACES_REGION     string
	SPACES_ENDPOINT   string
	SPACES_CDN_URL    string
	// Seed admin account
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:          os.Getenv("GO_ENV"),
		DB_USER_NAME:    os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		DB_HOST:         dbHost,
		DB_PORT:         dbPort,
		DB_SSL_MODE:     os.Getenv("DB_SSL_MODE"),
		PORT:            port,
		PUBLIC_BASE_URL: os.Getenv("PUBLIC_BASE_URL"),
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Spaces
		SPACES_ACCESS_KEY: os.Getenv("SPACES_ACCESS_KEY"),
		SPACES_SECRET_KEY: os.Getenv("SPACES_SECRET_KEY"),
		SPACES_BUCKET:     os.Getenv("SPACES_BUCKET"),
		SPACES_REGION:     os.Getenv("SPACES_REGION"),
		SPACES_ENDPOINT:   os.Getenv("SPACES_ENDPOINT"),
		SPACES_CDN_URL:    os.Getenv("SPACES_CDN_URL"),
		// Seed admin
		ADMIN_EMAIL:    os.Getenv("ADMIN_EMAIL"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
	}

	return envVariables, nil
}
