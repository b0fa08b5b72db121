package main

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"equiprent/internal/database"
	"equiprent/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "equiprent.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservation_items")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM quote_items")
	db.Exec("DELETE FROM quotes")
	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := domain.User{
		Email:        "staff@equiprent.com.br",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
		Name:         "Operations Staff",
	}
	db.Create(&staff)
	log.Println("Staff created: staff@equiprent.com.br / staff123")

	clientHash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
	client := domain.User{
		Email:        "joao@example.com.br",
		PasswordHash: string(clientHash),
		Role:         domain.RoleClient,
		Name:         "Joao Pereira",
		Phone:        "+55 71 99123-4567",
	}
	db.Create(&client)
	log.Println("Client created: joao@example.com.br / client123")

	log.Println("Creating categories...")

	sound := domain.Category{Name: "Sound", Description: "PA systems, mixers and microphones", Active: true}
	lighting := domain.Category{Name: "Lighting", Description: "Stage and event lighting", Active: true}
	structures := domain.Category{Name: "Structures", Description: "Stages, tents and trusses", Active: true}
	db.Create(&sound)
	db.Create(&lighting)
	db.Create(&structures)

	log.Println("Creating equipment...")

	price := func(v float64) *float64 { return &v }
	serial := func(v string) *string { return &v }

	equipment := []domain.Equipment{
		{
			Name:           "Active PA Speaker 1000W",
			CategoryID:     sound.ID,
			Brand:          "JBL",
			Model:          "PRX815",
			Description:    "15 inch two-way powered loudspeaker",
			DailyPrice:     120,
			WeeklyPrice:    price(700),
			MonthlyPrice:   price(2500),
			State:          domain.EquipmentAvailable,
			AvailableCount: 8,
			TotalCount:     8,
			SerialNumber:   serial("SND-0001"),
			TechnicalSpecs: map[string]any{"power_w": 1000, "weight_kg": 19.5},
		},
		{
			Name:           "Digital Mixer 16ch",
			CategoryID:     sound.ID,
			Brand:          "Behringer",
			Model:          "X Air XR18",
			DailyPrice:     90,
			WeeklyPrice:    price(500),
			State:          domain.EquipmentAvailable,
			AvailableCount: 3,
			TotalCount:     3,
			SerialNumber:   serial("SND-0002"),
		},
		{
			Name:           "LED Moving Head",
			CategoryID:     lighting.ID,
			Brand:          "Chauvet",
			Model:          "Intimidator Spot 360",
			DailyPrice:     60,
			WeeklyPrice:    price(350),
			State:          domain.EquipmentAvailable,
			AvailableCount: 12,
			TotalCount:     12,
			SerialNumber:   serial("LGT-0001"),
		},
		{
			Name:           "Party Tent 10x10m",
			CategoryID:     structures.ID,
			DailyPrice:     300,
			WeeklyPrice:    price(1700),
			MonthlyPrice:   price(6000),
			State:          domain.EquipmentAvailable,
			AvailableCount: 2,
			TotalCount:     2,
			SerialNumber:   serial("STR-0001"),
		},
		{
			Name:           "Stage Platform 2x1m",
			CategoryID:     structures.ID,
			DailyPrice:     45,
			State:          domain.EquipmentMaintenance,
			AvailableCount: 0,
			TotalCount:     20,
			SerialNumber:   serial("STR-0002"),
		},
	}
	for i := range equipment {
		db.Create(&equipment[i])
	}

	log.Printf("Seed complete: %d categories, %d equipment items", 3, len(equipment))
}
