package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"Hestia/CronJobs"
	"Hestia/FiberConfig"
	"Hestia/Models"
)

const defaultMonthlyFee = 1000

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := Models.Connect()
	if err != nil {
		log.Fatal("Failed to set up database:", err)
	}

	if err := Models.SeedAdmin(db); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	fee := float64(defaultMonthlyFee)
	if raw := os.Getenv("MONTHLY_FEE"); raw != "" {
		fee, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatal("Invalid MONTHLY_FEE:", err)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	refresher := CronJobs.NewSummaryRefresher(db, true)
	if err := refresher.Start(); err != nil {
		log.Println("Failed to start summary refresher:", err)
	}
	defer refresher.Stop()

	cfg := FiberConfig.Config{
		Port:       port,
		JWTSecret:  []byte(secret),
		MonthlyFee: fee,
	}
	if err := FiberConfig.Run(db, cfg); err != nil {
		log.Fatal(err)
	}
}
