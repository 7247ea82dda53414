// Command devbackend serves an in-memory marketplace API for local
// development of the client.
package main

import (
	"fmt"
	"os"
	"time"

	"ev-marketplace/internal/config"
	market "ev-marketplace/internal/marketService"
	"ev-marketplace/internal/models"
	"ev-marketplace/internal/repository"
	"ev-marketplace/internal/server"
	"ev-marketplace/utils"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)

	repo := repository.NewMemoryRepo()
	svc := market.NewMarketService(repo, cfg.JWTSecret, cfg.TokenTTL)

	if err := prepopulate(svc, repo); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed data: %v\n", err)
		os.Exit(1)
	}

	router := server.SetupRouter(svc)

	fmt.Printf("Starting marketplace server on %s...\n", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulate adds an admin, a seller and two sample auctions.
func prepopulate(svc *market.MarketService, repo *repository.MemoryRepo) error {
	if _, err := svc.CreateAdmin(models.RegisterRequest{FullName: "Admin", Email: "admin@evmarket.local", Password: "admin123"}); err != nil {
		return err
	}
	seller, err := svc.Register(models.RegisterRequest{FullName: "Demo Seller", Email: "seller@evmarket.local", Phone: "0900000000", Password: "seller123"})
	if err != nil {
		return err
	}

	listings := []models.CreateListingRequest{
		{
			Category: models.CategoryBattery, Title: "LFP pack 48V 100Ah", Price: 18_000_000,
			Brand: "CATL", Year: 2022, Condition: "used",
			Battery: &models.BatterySpec{VoltageV: 48, CapacityAh: 100, HealthPercent: 91},
		},
		{
			Category: models.CategoryEBike, Title: "City e-bike", Price: 12_500_000,
			Brand: "VinFast", Model: "Klara S", Year: 2021, Condition: "good",
			EBike: &models.EBikeSpec{MotorPowerW: 1200, RangeKm: 90, MileageKm: 8400},
		},
	}

	now := time.Now()
	for i, req := range listings {
		l, err := svc.CreateListing(seller.ID, req)
		if err != nil {
			return err
		}
		_, err = svc.CreateAuction(seller.ID, models.CreateAuctionRequest{
			ListingID:     l.ID,
			StartingPrice: req.Price * 0.8,
			StartTime:     now.Add(-time.Hour),
			EndTime:       now.Add(time.Duration(24*(i+1)) * time.Hour),
		})
		if err != nil {
			return err
		}
	}
	utils.Info("seeded sample data", map[string]any{"auctions": len(repo.ListAuctions())})
	return nil
}
