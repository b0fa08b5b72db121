package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"equiprent/internal/database"
	"equiprent/internal/middleware"
	"equiprent/internal/modules/auth"
	"equiprent/internal/modules/catalog"
	"equiprent/internal/modules/notify"
	"equiprent/internal/modules/quote"
	"equiprent/internal/modules/reservation"
	jwtsvc "equiprent/internal/pkg/jwt"
	"equiprent/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := notify.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(categoryRepo, equipmentRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	quoteService := quote.NewService(quoteRepo, equipmentRepo, reservationRepo, hub)
	quoteHandler := quote.NewHandler(quoteService)

	reservationService := reservation.NewService(reservationRepo, equipmentRepo, hub)
	reservationHandler := reservation.NewHandler(reservationService)

	notifyHandler := notify.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			quoteHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterProtectedRoutes(protected)
		}

		staff := v1.Group("/staff")
		staff.Use(middleware.JWTAuth(j), middleware.StaffOnly())
		{
			catalogHandler.RegisterStaffRoutes(staff)
			reservationHandler.RegisterStaffRoutes(staff)
			notifyHandler.RegisterStaffRoutes(staff)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
