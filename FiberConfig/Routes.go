package FiberConfig

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Hestia/Controllers"
	"Hestia/Models"
	"Hestia/middleware"
)

// Config carries the runtime settings the HTTP layer needs.
type Config struct {
	Port       string
	JWTSecret  []byte
	MonthlyFee float64
}

// SetupRoutes wires every controller onto the app
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg Config) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db, cfg.JWTSecret)
	residentController := Controllers.NewResidentController(db)
	paymentController := Controllers.NewPaymentController(db, cfg.MonthlyFee)
	expenseController := Controllers.NewExpenseController(db)
	summaryController := Controllers.NewSummaryController(db)

	verify := func(role string) fiber.Handler {
		return middleware.Verify(db, cfg.JWTSecret, role)
	}

	// API group
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Post("/register", verify(Models.RoleAdmin), authController.Register)

	// Resident routes
	users := api.Group("/users", verify(""))
	users.Get("/", residentController.GetResidents)
	users.Post("/", verify(Models.RoleAdmin), residentController.CreateResident)

	// Payment routes
	payments := api.Group("/payments", verify(""))
	payments.Get("/", paymentController.GetPayments)
	payments.Get("/status", paymentController.GetPaymentStatus)
	payments.Post("/", verify(Models.RoleAdmin), paymentController.RecordPayment)
	payments.Put("/:id", verify(Models.RoleAdmin), paymentController.UpdatePayment)

	// Expense routes
	expenses := api.Group("/expenses", verify(""))
	expenses.Get("/", expenseController.GetExpenses)
	expenses.Post("/", verify(Models.RoleAdmin), expenseController.CreateExpense)
	expenses.Delete("/:id", verify(Models.RoleAdmin), expenseController.DeleteExpense)

	// Summary routes
	summary := api.Group("/summary", verify(""))
	summary.Get("/", summaryController.GetSummary)
	summary.Get("/export", summaryController.ExportSummary)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})
}

// NewApp builds the Fiber application with the standard middleware chain.
// Split from Run so tests can exercise routes without binding a port.
func NewApp(db *gorm.DB, cfg Config) *fiber.App {
	app := fiber.New()

	app.Use(middleware.RequestLogger())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       300,
	}))

	SetupRoutes(app, db, cfg)
	return app
}

// Run starts the HTTP server
func Run(db *gorm.DB, cfg Config) error {
	fmt.Println("Server Up...")
	app := NewApp(db, cfg)
	return app.Listen(":" + cfg.Port)
}
