package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
	"github.com/keyvez/vaan-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "vaan", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

// NewPostgresServiceWithDSN connects with an explicit DSN, bypassing the
// POSTGRES_* env vars. Used by the CLIs.
func NewPostgresServiceWithDSN(dsn string, log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &PostgresService{db: gdb, log: serviceLog}, nil
}

// Models lists every table the product owns, in migration order.
func Models() []any {
	return []any{
		&types.User{},
		&types.Lexeme{},
		&types.WordOfDayState{},
		&types.WordOfDayLog{},
		&types.BabyName{},
		&types.LearningProgress{},
		&types.WordProgress{},
		&types.QuizAttempt{},
		&types.Video{},
		&types.BlogPost{},
		&types.NewsItem{},
		&types.TranslationKey{},
		&types.Translation{},
		&types.AuditLog{},
	}
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(Models()...); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
