package main

import (
	"log"
	"net/http"

	"distributor-be/internal/config"
	"distributor-be/internal/db"
	"distributor-be/internal/gst"
	"distributor-be/internal/httpapi"
	"distributor-be/internal/logger"
	"distributor-be/internal/mailer"
	"distributor-be/internal/order"
	"distributor-be/internal/product"
	"distributor-be/internal/user"
	"distributor-be/internal/wishlist"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg)
	} else {
		log.Println("SMTP_HOST not set, verification codes are logged instead of emailed")
	}

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, gst.NewMockVerifier(), mail, cfg.OTPTTL)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo, productRepo)

	router := httpapi.NewRouter(
		httpapi.NewUserHandler(userSvc),
		httpapi.NewProductHandler(productSvc),
		httpapi.NewOrderHandler(orderSvc),
		httpapi.NewWishlistHandler(wishlistSvc),
	)

	log.Printf("server listening on http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}
