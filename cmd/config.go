package cmd

import (
	"fmt"

	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	SortColumn       string   `env:"SORT_COLUMN" envDefault:"sort_order"`
	SortKey          string   `env:"SORT_KEY"`
	SortRestrictions []string `env:"SORT_RESTRICTIONS" envDefault:"category_id" envSeparator:","`
	SortItemsParam   string   `env:"SORT_ITEMS_PARAM" envDefault:"sortItems"`
	SortLockOnInsert bool     `env:"SORT_LOCK_ON_INSERT" envDefault:"false"`

	GapRepairSchedule string `env:"GAP_REPAIR_SCHEDULE" envDefault:"@every 1m"`
}

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(file)
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return config, nil
}

// DSN returns the Postgres connection string for gorm's pgx driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Sortable returns the ordering config for the items table. An empty key is
// resolved from the table's primary key at startup. The items table stores
// positions only in sort_order, so any other column is rejected.
func (c Config) Sortable() (sortable.Config, error) {
	restrictions := make([]string, 0, len(c.SortRestrictions))
	for _, attr := range c.SortRestrictions {
		if attr != "" {
			restrictions = append(restrictions, attr)
		}
	}
	column := c.SortColumn
	if column == "" {
		column = item.AttrSortOrder
	}
	if column != item.AttrSortOrder {
		return sortable.Config{}, errs.NewConfigurationError("column",
			fmt.Sprintf("items are ordered by `%s`, got `%s`", item.AttrSortOrder, column))
	}
	return sortable.Config{
		Column:       column,
		Key:          c.SortKey,
		Restrictions: restrictions,
		ItemsParam:   c.SortItemsParam,
		LockOnInsert: c.SortLockOnInsert,
	}, nil
}
