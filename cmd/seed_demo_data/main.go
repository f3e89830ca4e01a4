package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/moicalder/moimac.com/cmd/seed_demo_data/internal/seedmodels"
	"github.com/moicalder/moimac.com/internal/config"
	"github.com/moicalder/moimac.com/internal/database"
	"github.com/moicalder/moimac.com/internal/logger"
	"github.com/moicalder/moimac.com/internal/repository"
	"github.com/moicalder/moimac.com/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/demo_players.json"

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	seedFilePath := defaultSeedFilePath
	if len(os.Args) > 1 {
		seedFilePath = os.Args[1]
	}

	log.Info("Starting demo data seeding process...")
	db, err := database.NewPostgresDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var players []seedmodels.SeedPlayer
	if err := json.Unmarshal(byteValue, &players); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("players_loaded", len(players)))

	userRepository := repository.NewSQLXUserRepository(db)
	sessionRepository := repository.NewSQLXSessionRepository(db)
	s := newSeeder(
		service.NewUserService(userRepository),
		service.NewSessionService(repository.NewTransactionManagerAdapter(db), sessionRepository, userRepository),
		log,
	)

	failed := 0
	for _, p := range players {
		if err := s.seedPlayer(ctx, p); err != nil {
			failed++
			log.Error("Error seeding player", zap.String("user_id", p.UserID), zap.Error(err))
		}
	}
	log.Info("Demo data seeding process completed.", zap.Int("players", len(players)), zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}
