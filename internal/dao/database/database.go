// Package database opens the relational store and owns its lifecycle.
// It builds the DSN for the configured driver, sizes the connection pool,
// migrates the schema and hands out repository aggregates.
package database

import (
	"context"
	"fmt"
	"time"

	"caller_id_server/internal/config"
	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the pooled gorm handle. Create it once per process with Open
// and release it with Close.
type Store struct {
	DB    *gorm.DB
	Repos *repository.Repositories
}

// Open connects with the configured driver, pings, and optionally migrates.
func Open(ctx context.Context, conf *config.DatabaseConfig) (*Store, error) {
	dialector, err := Dialector(conf)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if conf.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	}
	if conf.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(conf.ConnMaxLifetime) * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", conf.Driver, err)
	}

	if conf.AutoMigrate {
		if err := Migrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	zap.L().Info("database connected",
		zap.String("driver", conf.Driver),
		zap.Int("max_open_conns", conf.MaxOpenConns),
	)
	return &Store{DB: db, Repos: repository.NewRepositories(db)}, nil
}

// Dialector builds the gorm dialector for conf.Driver.
func Dialector(conf *config.DatabaseConfig) (gorm.Dialector, error) {
	switch conf.Driver {
	case "", "postgres":
		dsn := conf.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
				conf.Host, conf.User, conf.Password, conf.DatabaseName, conf.Port, conf.SSLMode)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := conf.DSN
		if dsn == "" {
			// user:password@tcp(host:port)/database?params
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				conf.User, conf.Password, conf.Host, conf.Port, conf.DatabaseName)
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Migrate creates or updates the tables. It never drops columns or data.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Contact{},
		&model.SpamReport{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
