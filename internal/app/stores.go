package app

import (
	"log"

	"medisynth/internal/config"
	"medisynth/internal/document"
	"medisynth/internal/history"
)

// newHistoryStore prefers postgres when a DSN is configured and reachable;
// anything else falls back to the single-file JSON store so the app keeps
// working on a laptop with no database around.
func newHistoryStore(cfg *config.Config) history.Store {
	if cfg.HistoryDSN == "" {
		return history.NewFileStore(cfg.HistoryPath)
	}
	s, err := history.NewPostgresStore(cfg.HistoryDSN)
	if err != nil {
		log.Printf("history: postgres unavailable, using file store: %v", err)
		return history.NewFileStore(cfg.HistoryPath)
	}
	log.Printf("history: using postgres backend")
	return s
}

func newDocumentStore(cfg *config.Config) document.Store {
	if !cfg.Document.CanUseS3() {
		return document.NewMemoryStore()
	}
	s, err := document.NewS3Store(document.S3Config{
		Endpoint:  cfg.Document.Endpoint,
		Region:    cfg.Document.Region,
		AccessKey: cfg.Document.AccessKey,
		SecretKey: cfg.Document.SecretKey,
		Bucket:    cfg.Document.Bucket,
		UseSSL:    cfg.Document.UseSSL,
	})
	if err != nil {
		log.Printf("documents: s3 unavailable, using in-memory store: %v", err)
		return document.NewMemoryStore()
	}
	log.Printf("documents: using s3 bucket %q", cfg.Document.Bucket)
	return s
}
