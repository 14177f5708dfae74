package config

import (
	"My-Tax-Tracker/internal/api/handlers"
	"My-Tax-Tracker/internal/api/routes"
	"My-Tax-Tracker/internal/middleware"
	"My-Tax-Tracker/internal/utils"
	"My-Tax-Tracker/internal/utils/ocr"
	"My-Tax-Tracker/internal/utils/storage"
	"My-Tax-Tracker/pkg/auth"
	"My-Tax-Tracker/pkg/receipt"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	extractor := ocr.NewTextractExtractor(s3.BucketName())

	// identity provider
	issuer := fmt.Sprintf(
		"https://cognito-idp.%s.amazonaws.com/%s",
		utils.GetConfig("COGNITO_REGION"),
		utils.GetConfig("COGNITO_USER_POOL_ID"),
	)
	keyCache := auth.NewKeyCache(auth.JWKSURL(issuer), nil, 15*time.Minute)
	authService := auth.NewAuthService(auth.ProviderConfig{
		Issuer:       issuer,
		Domain:       utils.GetConfig("COGNITO_DOMAIN"),
		ClientID:     utils.GetConfig("CLIENT_ID"),
		ClientSecret: utils.GetConfig("CLIENT_SECRET"),
	}, keyCache, nil)

	// Repository
	receiptRepository := receipt.NewReceiptRepository(db)
	revocationRepository := auth.NewRevocationRepository(db)

	// Service
	receiptService := receipt.NewReceiptService(receiptRepository, s3, extractor)
	revocationLedger := auth.NewRevocationLedger(revocationRepository)

	// Handler
	authHandler := handlers.NewAuthHandler(authService, revocationLedger)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		AuthHandler:      authHandler,
		ReceiptHandler:   receiptHandler,
		Middleware:       middlewares,
		AuthService:      authService,
		RevocationLedger: revocationLedger,
	}
	routesConfig.Setup()
	return app, nil
}
