package main

import (
	"log"
	"os"
	"path/filepath"

	"machcrm/config"
	"machcrm/controllers"
	dbpkg "machcrm/db"
	"machcrm/router"
	"machcrm/workers"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg := config.Get(configPath)

	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err == nil {
			if f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				log.SetOutput(f)
			} else {
				log.Printf("could not open log file %s: %v", cfg.LogPath, err)
			}
		}
	}

	controllers.SetConfigurations(cfg)
	dbpkg.SetConfigurations(cfg)

	db, err := dbpkg.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	workers.StartNotifier(db, cfg)

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	router.Initialize(r, cfg)

	log.Printf("Listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatal(err)
	}
}
