package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"cotizador/go_backend/internal/app/config"
	apphttp "cotizador/go_backend/internal/app/http"
	"cotizador/go_backend/internal/infra/db/postgres"
)

func Run() {
	cfg := config.MustLoad()

	var db *postgres.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = db.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("db schema: %v", err)
		}
		log.Printf("archiving exported documents to postgres")
	}

	router := apphttp.NewRouter(cfg, db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s paper=%s export_dir=%q", cfg.HTTPAddr, cfg.PaperSize, cfg.ExportDir)
	log.Fatal(srv.ListenAndServe())
}
