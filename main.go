package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"table-ordering-api/auth"
	"table-ordering-api/config"
	"table-ordering-api/handlers"
	"table-ordering-api/media"
	"table-ordering-api/models"
	"table-ordering-api/routes"
	"table-ordering-api/seed"
	"table-ordering-api/store"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

func main() {
	var (
		addr     = pflag.String("addr", "", "listen address (default :$PORT)")
		dbPath   = pflag.String("db", "", "sqlite database path (default $DB_PATH)")
		envFile  = pflag.String("env-file", ".env", "dotenv file to load")
		seedMenu = pflag.Bool("seed", false, "replace the menu with the bundled starter menu and exit")
		seedFile = pflag.String("seed-file", "", "replace the menu with items from this YAML file and exit")
	)
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *addr == "" {
		*addr = ":" + cfg.Port
	}

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	orders := store.NewOrders(db)
	menu := store.NewMenu(db)

	if *seedMenu || *seedFile != "" {
		if err := runSeed(menu, *seedFile); err != nil {
			log.Fatal("Seeding failed: ", err)
		}
		return
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.Credentials)

	var rdb redis.Cmdable
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️  Redis unreachable at %s, login throttling disabled: %v", cfg.Redis.Addr, err)
			client.Close()
		} else {
			log.Println("✅ Redis connected, login throttling enabled")
			rdb = client
			defer client.Close()
		}
		cancel()
	}

	var images handlers.ImageStore
	if cfg.Minio.Enabled() {
		ms, err := media.NewMinioStore(cfg.Minio)
		if err == nil {
			err = ms.EnsureBucket(context.Background())
		}
		if err != nil {
			log.Printf("⚠️  Image storage unavailable: %v", err)
		} else {
			log.Println("✅ Connected to MinIO:", cfg.Minio.Endpoint)
			images = ms
		}
	}

	h := handlers.New(orders, menu, issuer, images, handlers.Options{
		SecureCookies:     cfg.Production,
		StrictTransitions: cfg.StrictTransitions,
		VerifyOrderTotal:  cfg.VerifyOrderTotal,
		PublicURL:         cfg.PublicURL,
	})

	r, err := routes.NewRouter(routes.Deps{
		Handler:       h,
		Verifier:      issuer,
		Redis:         rdb,
		SecureCookies: cfg.Production,
		CORSOrigins:   cfg.CORSOrigins,
	})
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server running on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Forced shutdown: %v", err)
	}
}

func runSeed(menu *store.Menu, path string) error {
	load := seed.DefaultMenu
	if path != "" {
		load = func() ([]models.MenuItem, error) { return seed.LoadFile(path) }
	}
	items, err := load()
	if err != nil {
		return err
	}
	if err := menu.Replace(context.Background(), items); err != nil {
		return err
	}
	log.Printf("✅ Seeded %d menu items", len(items))
	return nil
}
