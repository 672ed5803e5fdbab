package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/edustack/catalog-backend/internal/adapter/blobstore"
	"github.com/edustack/catalog-backend/internal/adapter/postgres"
	mediarepo "github.com/edustack/catalog-backend/internal/adapter/postgres/media"
	namespacerepo "github.com/edustack/catalog-backend/internal/adapter/postgres/namespace"
	noderepo "github.com/edustack/catalog-backend/internal/adapter/postgres/node"
	projectrepo "github.com/edustack/catalog-backend/internal/adapter/postgres/project"
	"github.com/edustack/catalog-backend/internal/config"
	"github.com/edustack/catalog-backend/internal/service/catalog"
	"github.com/edustack/catalog-backend/internal/service/project"
	"github.com/edustack/catalog-backend/internal/service/tree"
	"github.com/edustack/catalog-backend/internal/transport/middleware"
	"github.com/edustack/catalog-backend/internal/transport/rest"
	"github.com/edustack/catalog-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, wires the services and handlers, and
// serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	blobs, err := blobstore.NewFS(cfg.Media.RootDir)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	nodes := noderepo.New(pool)
	namespaces := namespacerepo.New(pool)
	projects := projectrepo.New(pool)
	media := mediarepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	treeSvc := tree.NewService(logger, nodes, namespaces, projects, media, blobs, txManager,
		tree.Limits{MaxNodesPerNamespace: cfg.Catalog.MaxNodesPerNamespace})
	catalogSvc := catalog.NewService(logger, namespaces, nodes, media, blobs, txManager)
	projectSvc := project.NewService(logger, projects, nodes, media, blobs, txManager,
		project.Limits{MaxProjectsPerNode: cfg.Catalog.MaxProjectsPerNode})

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Namespace: rest.NewNamespaceHandler(catalogSvc, logger),
		Node:      rest.NewNodeHandler(treeSvc, logger),
		Project:   rest.NewProjectHandler(projectSvc, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	// Late async errors from the listener goroutine, if any.
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	logger.Info("stopped")
	return nil
}
