package postgres

import (
	"errors"

	"coachhub/coaching-app/internal/config"
	"coachhub/coaching-app/internal/domain"
	"coachhub/coaching-app/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the postgres connection and migrates the schema.
func ConnectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.MuscleGroup{},
		&domain.Exercise{},
		&domain.TrainingPlan{},
		&domain.Training{},
		&domain.ExerciseOnTraining{},
		&domain.Diet{},
		&domain.DietDay{},
		&domain.Product{},
		&domain.CustomerHistoryProduct{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// DisconnectDB closes the underlying connection pool.
func DisconnectDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError maps gorm errors to the repository layer's sentinel errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	return err
}
