package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
	"github.com/bundleworks/commerce-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", log))
	if driver == "sqlite" {
		path := utils.GetEnv("SQLITE_PATH", "commerce.db", log)
		serviceLog.Info("Opening sqlite database", "path", path)
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return &PostgresService{db: db, log: serviceLog}, nil
	}

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "commerce", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.Store{},
		&types.Product{},
		&types.ProductVariation{},
		&types.ProductBundle{},
		&types.ProductBundleItem{},
		&types.StockLocation{},
		&types.StockTransaction{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	s.log.Info("Configuring foreign key relationships...")
	// Bundle exclusively owns its items: dropping a bundle drops the items.
	if err := s.db.Exec(`
		ALTER TABLE "product_bundle_item"
		DROP CONSTRAINT IF EXISTS "fk_product_bundle_item_bundle_id";
	`).Error; err != nil {
		return fmt.Errorf("failed to reset fk_product_bundle_item_bundle_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "product_bundle_item"
		ADD CONSTRAINT "fk_product_bundle_item_bundle_id"
		FOREIGN KEY ("bundle_id")
		REFERENCES "product_bundle"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_product_bundle_item_bundle_id: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
