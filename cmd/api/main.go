package main

import (
	"context"
	"log"

	"github.com/spicehouse/storefront-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("storefront api failed: %v", err)
	}
}
