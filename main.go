package main

import (
	"embed"
	"io"
	"log"
	"net/http"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

//go:embed schema.sql config.sample.toml
var setupFS embed.FS

func runApp(configFilePath string) {
	cfg := initConfig(configFilePath)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("error while building logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	app, err := NewApp(cfg, sugar)
	if err != nil {
		sugar.Fatalw("error while building app", "error", err)
	}

	srv := &http.Server{
		Handler:      app.Router(cfg),
		Addr:         cfg.HTTPAddr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	sugar.Infow("starting server", "addr", cfg.HTTPAddr)
	sugar.Fatalw("server stopped", "error", srv.ListenAndServe())
}

// initApp bootstraps a working directory: database with schema, a sample
// config and the icon output directory.
func initApp() {
	initDB("app.db")

	outCfgFile, err := os.Create("config.toml")
	if err != nil {
		log.Fatal(err)
	}
	defer outCfgFile.Close()

	setupCfgFile, err := setupFS.Open("config.sample.toml")
	if err != nil {
		log.Fatal(err)
	}
	defer setupCfgFile.Close()

	if _, err := io.Copy(outCfgFile, setupCfgFile); err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll("icons", 0o755); err != nil {
		log.Fatal(err)
	}

	log.Println("config.toml, app.db and icons/ generated.")
}

func main() {
	configFilePath := flag.String("config", "config.toml", "path to config file")
	initMode := flag.Bool("init", false, "app initialization, creates a db, config file and icon dir in current dir")

	flag.Parse()

	if *initMode {
		initApp()
		return
	}

	runApp(*configFilePath)
}
