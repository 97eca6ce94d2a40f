package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/kintai-assist/kintai-backend-go/internal/config"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/jwt"
)

// Mints an access token for one of the UI surfaces. Run once per client and
// paste the token into its settings.
func main() {
	client := flag.String("client", "popup", "client name embedded in the token (popup, panel, agent)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("AUTH_SECRET_KEY is not set")
	}

	JWTService := jwt.NewJWTService(cfg.Auth.Secret, cfg.Auth.AccessExpiration)
	token, expiresAt, err := JWTService.GenerateAccessToken(*client)
	if err != nil {
		log.Fatal("Failed to generate token: ", err)
	}

	fmt.Println(token)
	fmt.Printf("expires: %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
