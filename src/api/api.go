package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/defi-mexico/platform-backend/src/api/config"
	"github.com/defi-mexico/platform-backend/src/api/data"
	"github.com/defi-mexico/platform-backend/src/api/types"
	"github.com/defi-mexico/platform-backend/src/api/webserver"
)

var allModels = []interface{}{
	&types.User{}, &types.Setting{}, &types.Proposal{},
	&types.Startup{}, &types.Event{}, &types.Community{},
	&types.Referent{}, &types.Course{}, &types.BlogPost{}, &types.Job{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	db := data.MustMySQL(config.GetMySQLDSN())
	migrate(db)

	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	router := webserver.New(cfg, db, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("DeFi Mexico API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
