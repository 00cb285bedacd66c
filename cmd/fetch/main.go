package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quoterelay/internal/config"
	"quoterelay/internal/httpx"
	"quoterelay/internal/relay"
)

func main() {
	var symbol string
	var send bool
	var configPath string

	flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "AAPL"), "ticker symbol to fetch")
	flag.BoolVar(&send, "send", false, "also relay the message to the configured chat")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	r, err := relay.FromConfig(cfg, httpClient)
	if err != nil {
		log.Fatalf("relay: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	defer cancel()

	if send {
		resp, status := r.Handle(ctx, symbol)
		b, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(b))
		if status != 200 {
			os.Exit(1)
		}
		return
	}

	// Dry run: fetch and print the formatted message without sending.
	normalized, err := relay.NormalizeSymbol(symbol)
	if err != nil {
		log.Fatalf("symbol: %v", err)
	}
	q, err := r.Quotes.Fetch(ctx, normalized)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	fmt.Println(relay.FormatMessage(q, time.Now()))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
