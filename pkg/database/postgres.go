package database

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Postgres is a lazily opened GORM handle with the same connect-once
// behaviour as Mongo.
type Postgres struct {
	dsn string

	once sync.Once
	db   *gorm.DB
	err  error
}

// NewPostgres returns an unopened handle.
func NewPostgres(dsn string) *Postgres {
	return &Postgres{dsn: dsn}
}

// DB opens the connection on first use.
func (p *Postgres) DB() (*gorm.DB, error) {
	p.once.Do(func() {
		p.db, p.err = p.open()
	})
	return p.db, p.err
}

func (p *Postgres) open() (*gorm.DB, error) {
	if p.dsn == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(p.dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Close closes the pool if it was opened.
func (p *Postgres) Close() error {
	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
