package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Jathol7/oz-baby-toys-store/mockapi"
	"github.com/Jathol7/oz-baby-toys-store/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("ENV") != "production")
	defer logger.Sync()

	repo := buildRepository()
	r := mockapi.NewRouter(repo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Info("Mock API listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("Server failed", zap.Error(err))
	}
}

// buildRepository picks Postgres when DATABASE_URL is set, otherwise the
// seeded in-memory catalog.
func buildRepository() mockapi.Repository {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Log.Info("Using seeded in-memory repository")
		return mockapi.NewSeededRepository()
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("DB connection failed", zap.Error(err))
	}
	repo, err := mockapi.NewGormRepository(db)
	if err != nil {
		logger.Log.Fatal("DB migration failed", zap.Error(err))
	}
	logger.Log.Info("Using Postgres repository")
	return repo
}
