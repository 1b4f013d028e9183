package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"shopease/config"
	"shopease/routers"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := config.SetupMySQLConnection(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer func() {
		if dbInstance, err := db.DB(); err == nil {
			_ = dbInstance.Close()
		}
	}()

	rdb := config.SetupRedisConnection(cfg.Redis)
	if rdb == nil {
		logrus.Warn("redis not configured; running without product cache and token revocation")
	} else {
		defer rdb.Close()
	}

	router := routers.SetupRouters(db, rdb, []byte(cfg.Server.JWTSecret))
	logrus.WithField("port", cfg.Server.Port).Info("starting server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
