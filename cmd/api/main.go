package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"fliptips/backend-go/internal/config"
	internalhttp "fliptips/backend-go/internal/http"
	"fliptips/backend-go/internal/services"
)

func main() {
	_ = godotenv.Load(".env", ".env.local")

	cfg := config.Load()
	cache := services.NewCache(cfg)
	feeds := services.NewFeedClient(cfg, cache)

	h := internalhttp.NewRouter(cfg, feeds)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("fliptips backend listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
