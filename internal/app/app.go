package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcardenas/techstore/internal/handler"
	"github.com/jcardenas/techstore/internal/health"
	"github.com/jcardenas/techstore/internal/metrics"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/jcardenas/techstore/internal/repository"
	"github.com/jcardenas/techstore/internal/repository/memory"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// App owns the wired application: storage, services, HTTP router.
type App struct {
	cfg    Config
	logger *logrus.Logger
	pool   *pgxpool.Pool
	server *http.Server
}

func New(ctx context.Context, cfg Config, logger *logrus.Logger) (*App, error) {
	var (
		customers port.CustomerRepository
		products  port.ProductRepository
		carts     port.CartRepository
		orders    port.OrderRepository
		pool      *pgxpool.Pool
		checkers  []health.Checker
	)

	switch cfg.StorageBackend {
	case BackendPostgres:
		var err error
		pool, err = repository.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("repository.Connect: %w", err)
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("repository.Migrate: %w", err)
		}

		customers = repository.NewCustomer(pool)
		products = repository.NewProduct(pool)
		carts = repository.NewCart(pool)
		orders = repository.NewOrder(pool)
		checkers = append(checkers, health.CheckerFunc{
			CheckerName: "postgres",
			Fn:          pool.Ping,
		})

	case BackendMemory:
		store := memory.NewStore()
		customers = store.Customers()
		products = store.Products()
		carts = store.Carts()
		orders = store.Orders()

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	m := metrics.New()

	customerSvc := service.NewCustomer(customers, m, logger)
	productSvc := service.NewProduct(products, m, logger)
	cartSvc := service.NewCart(carts, products, logger)
	orderSvc := service.NewOrderService(orders, m, logger)

	sessions := handler.NewSessions(cfg.SessionSecret)

	engine := handler.NewRouter(handler.RouterConfig{
		Customers:     handler.NewCustomerHandler(customerSvc, logger),
		Products:      handler.NewProductHandler(productSvc, cfg.DefaultCurrency, logger),
		Carts:         handler.NewCartHandler(cartSvc, logger),
		Orders:        handler.NewOrderHandler(orderSvc, logger),
		Storefront:    handler.NewStorefrontHandler(customerSvc, productSvc, cartSvc, orderSvc, sessions, logger),
		Metrics:       m,
		Logger:        logger,
		Checkers:      checkers,
		TemplatesGlob: cfg.TemplatesGlob,
		StaticDir:     cfg.StaticDir,
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: engine,
		},
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.WithFields(logrus.Fields{
			"addr":    a.cfg.HTTPAddr,
			"backend": a.cfg.StorageBackend,
		}).Info("http server starting")

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	a.logger.Info("http server stopped")
	return nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
