package routes

import (
	"My-Tax-Tracker/internal/api/handlers"
	"My-Tax-Tracker/internal/middleware"
	"My-Tax-Tracker/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	AuthHandler      handlers.AuthHandler
	ReceiptHandler   handlers.ReceiptHandler
	Middleware       middleware.Middleware
	AuthService      auth.AuthService
	RevocationLedger auth.RevocationLedger
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Receipts()
}

func (c *Config) GuestRoute() {
	c.App.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(`<div style="font-family: Arial, sans-serif; text-align: center; margin-top: 50px;">
	<h1>My Tax Tracker API</h1>
	<p>Welcome to the API!</p>
	<p><a href="/health">Health Check</a></p>
</div>`)
	})
	c.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
}

func (c *Config) Auth() {
	authGroup := c.App.Group("/auth")
	{
		authGroup.Get("/login", c.AuthHandler.Login)
		authGroup.Get("/authorize", c.AuthHandler.Authorize)
		authGroup.Get("/logout", c.AuthHandler.Logout)
		authGroup.Post("/refresh", c.AuthHandler.Refresh)
		authGroup.Get("/me", c.AuthHandler.Me)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group(
		"/receipts",
		c.Middleware.AuthMiddleware(c.AuthService, c.RevocationLedger),
	)

	receipts.Post("/upload", c.ReceiptHandler.UploadReceipt)
	receipts.Get("/view", c.ReceiptHandler.GetReceipts)
	receipts.Get("/view/:id", c.ReceiptHandler.GetReceiptDetail)
	receipts.Put("/update/:id", c.ReceiptHandler.UpdateReceipt)
	receipts.Delete("/delete/:id", c.ReceiptHandler.DeleteReceipt)
	receipts.Get("/image/:id", c.ReceiptHandler.GetReceiptImage)
	receipts.Post("/status", c.ReceiptHandler.UpdateStatus)
	receipts.Get("/total-claims", c.ReceiptHandler.TotalClaims)
}
