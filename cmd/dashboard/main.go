package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"ProductDashboard/internal/auth"
	"ProductDashboard/internal/catalog"
	"ProductDashboard/internal/config"
	"ProductDashboard/internal/dashboard"
	"ProductDashboard/internal/session"
	"ProductDashboard/internal/view"
	"ProductDashboard/pkg/kit"
)

const dbConnectTimeout = 5 * time.Second

func main() {
	service := "dashboard"

	cfg, err := config.Load(".env")
	if err != nil {
		log := kit.NewLogger(service, "info")
		log.Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, users, closeDB := openStores(ctx, cfg, log)
	defer closeDB()

	if cfg.AdminUser != "" {
		created, err := auth.SeedUser(ctx, users, cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			log.Fatal("seed admin failed", zap.Error(err))
		}
		log.Info("admin account ready", zap.String("username", cfg.AdminUser), zap.Bool("created", created))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions := session.NewManager(session.Options{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})
	views := view.MustNew()

	s := &dashboard.Server{
		Log:      log,
		Store:    store,
		Sessions: sessions,
		Views:    views,
	}
	a := &auth.Server{
		Log:              log,
		Users:            users,
		Sessions:         sessions,
		Views:            views,
		LoginLimitPerMin: cfg.LoginLimitPerMin,
		TrustProxy:       cfg.TrustProxy,
	}

	h := dashboard.NewHandler(s, a, dashboard.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsToken != "",
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(ctx, ":"+cfg.Port, h, log, cfg.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openStores picks Postgres when DATABASE_URL is set and the JSON document
// plus in-memory users otherwise.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (catalog.Store, auth.UserStore, func()) {
	if !cfg.UsePostgres() {
		log.Info("using file catalog", zap.String("path", cfg.DataFile))
		return catalog.NewFileStore(cfg.DataFile), auth.NewMemStore(), func() {}
	}

	db, err := kit.OpenPostgres(ctx, cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		log.Fatal("connect postgres failed", zap.Error(err))
	}

	products := catalog.NewPostgresStore(db)
	if err := products.Migrate(ctx); err != nil {
		log.Fatal("migrate products failed", zap.Error(err))
	}

	users := auth.NewPostgresStore(db)
	if err := users.Migrate(ctx); err != nil {
		log.Fatal("migrate users failed", zap.Error(err))
	}

	log.Info("using postgres catalog")
	return products, users, closer(db, log)
}

func closer(db *sql.DB, log *zap.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn("close postgres", zap.Error(err))
		}
	}
}
