package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medreminder/internal/config"
	"medreminder/internal/handlers"
	"medreminder/internal/logger"
	"medreminder/internal/notify"
	"medreminder/internal/storage"
	"medreminder/internal/sweeper"

	"github.com/gorilla/mux"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")

	// Storage flags
	storageType := flag.String("storage", "file", "storage backend to use: memory, file, sqlite, postgres, or mongo")
	filePath := flag.String("file-path", "reminders.json", "reminder file path (used when storage=file)")
	sqlitePath := flag.String("sqlite-path", "reminders.db", "SQLite database path (used when storage=sqlite)")
	postgresURL := flag.String("postgres-url", "postgres://localhost:5432/medreminder?sslmode=disable", "PostgreSQL connection string (used when storage=postgres)")
	mongoConnString := flag.String("mongo-conn", "mongodb://localhost:27017", "MongoDB connection string (used when storage=mongo)")
	mongoDatabase := flag.String("mongo-db", "medreminder", "MongoDB database name (used when storage=mongo)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Log

	// Initialize storage based on type
	var store storage.Storage

	switch *storageType {
	case "memory":
		log.Info("Using memory storage")
		store = storage.NewMemoryStorage()
	case "file":
		log.Infof("Using file storage (%s)", *filePath)
		store = storage.NewFileStorage(*filePath)
	case "sqlite":
		log.Infof("Using SQLite storage (%s)", *sqlitePath)
		s, err := storage.NewSQLiteStorage(*sqlitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite storage: %v", err)
		}
		defer s.Close()
		store = s
	case "postgres":
		log.Info("Using PostgreSQL storage")
		s, err := storage.NewPostgresStorage(*postgresURL)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL storage: %v", err)
		}
		defer s.Close()
		store = s
	case "mongo":
		log.Infof("Using MongoDB storage (connection: %s, database: %s)", *mongoConnString, *mongoDatabase)
		s, err := storage.NewMongoStorage(*mongoConnString, *mongoDatabase)
		if err != nil {
			log.Fatalf("Failed to initialize MongoDB storage: %v", err)
		}
		defer s.Close(context.Background())
		store = s
	default:
		log.Fatalf("Invalid storage type: %s. Valid options are: memory, file, sqlite, postgres, mongo", *storageType)
	}

	handlers.Store = store

	// The sweeper is owned here and started exactly once.
	notifier := notify.New(cfg, log)
	sw := sweeper.New(store, notifier, log, cfg.SweepCronSpec)
	if err := sw.Start(); err != nil {
		log.Fatalf("Failed to start sweeper: %v", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/reminders", handlers.CreateReminderHandler).Methods("POST")
	r.HandleFunc("/reminders", handlers.ListRemindersHandler).Methods("GET")
	r.HandleFunc("/tips", handlers.DailyTipHandler).Methods("GET")

	srv := &http.Server{Addr: *addr, Handler: r}
	go func() {
		log.Infof("Starting medication reminder service on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	sw.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown: %v", err)
	}
	log.Info("Shut down gracefully")
}
