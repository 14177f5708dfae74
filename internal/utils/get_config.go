package utils

import (
	"gopkg.in/yaml.v2"
	"log"
	"os"
)

type Config struct {
	// Server configuration
	AppURL      string `yaml:"APP_URL"`
	AppPort     string `yaml:"APP_PORT"`
	RedirectURI string `yaml:"REDIRECT_URI"`
	AllowOrigin string `yaml:"ALLOW_ORIGIN"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Cognito configuration
	CognitoRegion     string `yaml:"COGNITO_REGION"`
	CognitoUserPoolID string `yaml:"COGNITO_USER_POOL_ID"`
	CognitoDomain     string `yaml:"COGNITO_DOMAIN"`
	ClientID          string `yaml:"CLIENT_ID"`
	ClientSecret      string `yaml:"CLIENT_SECRET"`

	// AWS S3 and Textract configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSRegion    string `yaml:"AWS_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_REGION", config.AWSRegion)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	os.Setenv("CLIENT_ID", config.ClientID)
	os.Setenv("CLIENT_SECRET", config.ClientSecret)
}

func GetConfig(key string) string {
	switch key {
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "REDIRECT_URI":
		return config.RedirectURI
	case "ALLOW_ORIGIN":
		return config.AllowOrigin
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "COGNITO_REGION":
		return config.CognitoRegion
	case "COGNITO_USER_POOL_ID":
		return config.CognitoUserPoolID
	case "COGNITO_DOMAIN":
		return config.CognitoDomain
	case "CLIENT_ID":
		return config.ClientID
	case "CLIENT_SECRET":
		return config.ClientSecret
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_REGION":
		return config.AWSRegion
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
