package main

import (
	"log"
	"net/http"

	"docanalyst/internal/api"
	"docanalyst/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("docanalyst api listening on %s llm_providers=%q embed_providers=%q top_k=%d threshold=%.2f",
		cfg.APIAddr, cfg.LLMProviders, cfg.EmbedProviders, cfg.TopK, cfg.ScoreThreshold)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
