package main

import (
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"quoterelay/internal/config"
	"quoterelay/internal/httpx"
	"quoterelay/internal/relay"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		// Answer invocations with a configuration error rather than
		// crash-looping the function.
		log.Printf("warning: %v", err)
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	r, err := relay.FromConfig(cfg, httpClient)
	if err != nil {
		log.Fatalf("relay: %v", err)
	}

	lambda.Start(r.LambdaHandler())
}
