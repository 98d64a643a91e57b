package main

import (
	"net/http"

	"pool-engine-go/config"
	"pool-engine-go/database"
	"pool-engine-go/handlers"
	"pool-engine-go/logging"
	"pool-engine-go/middleware"
	"pool-engine-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Configure(cfg.ToLoggingConfig())
	logger := logging.WithPrefix("Main")

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.TestConnection(); err != nil {
		logger.Fatalf("Database test failed: %v", err)
	}

	// Repositories
	gameRepo := database.NewMongoGameRepository(db)
	resultRepo := database.NewMongoResultRepository(db)
	poolRepo := database.NewMongoPoolRepository(db)
	entryRepo := database.NewMongoEntryRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	gradeRepo := database.NewMongoGradeRepository(db)
	overrideRepo := database.NewMongoOverrideRepository(db)
	userRepo := database.NewMongoUserRepository(db)

	// Services
	gradingService := services.NewGradingService(gameRepo, resultRepo, pickRepo, entryRepo, poolRepo, gradeRepo)
	overrideService := services.NewOverrideService(gameRepo, pickRepo, gradeRepo, overrideRepo, db)
	standingsService := services.NewStandingsService(poolRepo, entryRepo, pickRepo, gradeRepo, gameRepo, db)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)

	// Handlers and middleware
	gradingHandler := handlers.NewGradingHandler(gradingService)
	overrideHandler := handlers.NewOverrideHandler(overrideService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	authHandler := handlers.NewAuthHandler(authService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	// Standings reads are public
	r.HandleFunc("/api/pools/{id:[0-9]+}/standings", standingsHandler.GetPoolStandings).Methods("GET")
	r.HandleFunc("/api/entries/{id:[0-9]+}", standingsHandler.GetEntryDetail).Methods("GET")

	// Grading and overrides require an authenticated operator
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(authMiddleware.RequireAuth)
	protected.HandleFunc("/games/{id:[0-9]+}/grade", gradingHandler.GradeGame).Methods("POST")
	protected.HandleFunc("/picks/{id:[0-9]+}/override", overrideHandler.OverridePick).Methods("POST")
	protected.HandleFunc("/games/{id:[0-9]+}/override", overrideHandler.OverrideGamePicks).Methods("POST")
	protected.HandleFunc("/picks/{id:[0-9]+}/overrides", overrideHandler.GetHistory).Methods("GET")
	protected.HandleFunc("/overrides/stats", overrideHandler.GetStats).Methods("GET")

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Server starting on %s", addr)
	logger.Fatalf("Server stopped: %v", http.ListenAndServe(addr, r))
}
