package main

import (
	"context"
	"fmt"
	"log"

	"roomledger/internal/database"
	"roomledger/internal/domain"
	"roomledger/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("roomledger.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM settled_orders")
	db.Exec("DELETE FROM pending_orders")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)

	log.Println("Creating users...")

	hosts := make([]*domain.User, 0, 2)
	for i := 1; i <= 2; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("host123456"), bcrypt.DefaultCost)
		host := &domain.User{
			Email:         fmt.Sprintf("host%d@roomledger.dev", i),
			PasswordHash:  string(hash),
			Name:          fmt.Sprintf("Host %d", i),
			LedgerAddress: fmt.Sprintf("ldg-host-%d", i),
			Role:          domain.RoleHost,
		}
		if err := userRepo.Create(ctx, host); err != nil {
			log.Fatal("create host failed:", err)
		}
		hosts = append(hosts, host)
		log.Printf("Host created: %s / host123456", host.Email)
	}

	for i := 1; i <= 3; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("guest123456"), bcrypt.DefaultCost)
		guest := &domain.User{
			Email:         fmt.Sprintf("guest%d@roomledger.dev", i),
			PasswordHash:  string(hash),
			Name:          fmt.Sprintf("Guest %d", i),
			LedgerAddress: fmt.Sprintf("ldg-guest-%d", i),
			Role:          domain.RoleGuest,
		}
		if err := userRepo.Create(ctx, guest); err != nil {
			log.Fatal("create guest failed:", err)
		}
		log.Printf("Guest created: %s / guest123456", guest.Email)
	}

	log.Println("Creating rooms...")
	prices := []int64{10, 25, 40, 75, 120}
	for i, price := range prices {
		room := &domain.Room{
			Name:          fmt.Sprintf("Room %d", i+1),
			Description:   "Seeded room for local development",
			PricePerNight: price,
			OwnerID:       hosts[i%len(hosts)].ID,
			IsActive:      true,
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			log.Fatal("create room failed:", err)
		}
		log.Printf("Room created: %s (%d/night)", room.Name, room.PricePerNight)
	}

	log.Println("Seed complete.")
}
