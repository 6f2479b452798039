package main

import (
	"github.com/wib2/futsal-record/pkg/kvstore"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (app *App) initDB() (*gorm.DB, error) {
	dsn := app.Cfg.GetString("postgres.dsn")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (app *App) initKVStore() {
	app.KVStore = kvstore.NewRedis(
		app.Cfg.GetString("redis.addr"),
		app.Cfg.GetString("redis.password"),
		app.Cfg.GetInt("redis.db"),
	)
}
