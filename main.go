package main

import (
	"log"
	"net/http"
	"os"

	"github.com/andrewpaige1/flashdeck-api/ai"
	"github.com/andrewpaige1/flashdeck-api/config"
	"github.com/andrewpaige1/flashdeck-api/handlers"
	"github.com/andrewpaige1/flashdeck-api/middleware"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/andrewpaige1/flashdeck-api/study"
	"github.com/andrewpaige1/flashdeck-api/viewcache"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := config.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	authMiddleware := middleware.EnsureValidToken(cfg)

	api := &handlers.API{
		Store:     store.New(db),
		Views:     viewcache.New(),
		Sessions:  study.NewManager(),
		Generator: ai.NewGenerator(ai.NewAnthropicCompleter(cfg.AnthropicModel)),
	}
	mux := http.NewServeMux()

	// Decks
	mux.HandleFunc("GET /api/decks", api.ListDecks)
	mux.HandleFunc("POST /api/decks", api.CreateDeck)
	mux.HandleFunc("GET /api/decks/{deckID}", api.GetDeck)
	mux.HandleFunc("PUT /api/decks/{deckID}", api.UpdateDeck)
	mux.HandleFunc("DELETE /api/decks/{deckID}", api.DeleteDeck)

	// Cards
	mux.HandleFunc("GET /api/decks/{deckID}/cards", api.ListCards)
	mux.HandleFunc("POST /api/decks/{deckID}/cards", api.CreateCard)
	mux.HandleFunc("PUT /api/decks/{deckID}/cards/{cardID}", api.UpdateCard)
	mux.HandleFunc("DELETE /api/decks/{deckID}/cards/{cardID}", api.DeleteCard)

	// AI generation
	mux.HandleFunc("POST /api/decks/{deckID}/generate", api.GenerateCards)

	// Study sessions
	mux.HandleFunc("POST /api/decks/{deckID}/study", api.StartStudySession)
	mux.HandleFunc("GET /api/study/{sessionID}", api.GetStudySession)
	mux.HandleFunc("POST /api/study/{sessionID}/flip", api.StudyFlip)
	mux.HandleFunc("POST /api/study/{sessionID}/next", api.StudyNext)
	mux.HandleFunc("POST /api/study/{sessionID}/previous", api.StudyPrevious)
	mux.HandleFunc("POST /api/study/{sessionID}/shuffle", api.StudyShuffle)
	mux.HandleFunc("POST /api/study/{sessionID}/judge", api.StudyJudge)
	mux.HandleFunc("POST /api/study/{sessionID}/restart", api.StudyRestart)
	mux.HandleFunc("DELETE /api/study/{sessionID}", api.EndStudySession)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	serverAddr := "0.0.0.0:" + cfg.Port
	log.Printf("listening on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal(err)
	}
}
