package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "greenhouse_monitor/docs"
	"greenhouse_monitor/internal/config"
	"greenhouse_monitor/internal/generator"
	"greenhouse_monitor/internal/handlers"
	"greenhouse_monitor/internal/hub"
	"greenhouse_monitor/internal/logger"
	"greenhouse_monitor/internal/models"
	"greenhouse_monitor/internal/repository"
	"greenhouse_monitor/internal/repository/db"
	"greenhouse_monitor/internal/server"
	"greenhouse_monitor/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const streamBuffer = 32

var configPath string

// rootCmd serves the dashboard API until SIGINT/SIGTERM.
var rootCmd = &cobra.Command{
	Use:   "greenhouse-monitor",
	Short: "Serve the micro-greenhouse monitoring dashboard",
	Long: `Generate synthetic readings for a fleet of micro greenhouses, classify them
against their optimal bands and serve them over HTTP and WebSocket.

Examples:
  greenhouse-monitor
  greenhouse-monitor --config ./configs/config.yml
  GREENHOUSE_REFRESH_INTERVAL=10s greenhouse-monitor`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default ./configs/config.yml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// load config.yml + env
	cfg, err := config.Load(viper.New(), configPath)
	if err != nil {
		return err
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open stores
	repos, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Errorw("failed to open stores", "err", err)
		return err
	}
	defer closeStores()

	// wire dependencies
	events := hub.New(streamBuffer)
	services, err := service.NewService(repos, service.Options{
		PlantTypes:            cfg.Greenhouses.PlantTypes,
		Interval:              cfg.Refresh.Interval,
		ReconnectDelay:        cfg.Refresh.ReconnectDelay,
		DisconnectProbability: cfg.Refresh.DisconnectProbability,
		TrendPoints:           cfg.Refresh.TrendPoints,
		Rand:                  generator.NewRand(cfg.Refresh.Seed),
	}, events, log)
	if err != nil {
		log.Errorw("invalid metric catalog", "err", err)
		return err
	}
	services.OnTick(func(s models.Snapshot) {
		events.Publish(hub.Event{Type: hub.EventSnapshot, Data: s})
	})
	services.OnConnection(func(c models.ConnectionState) {
		events.Publish(hub.Event{Type: hub.EventConnection, Data: c})
	})
	apiHandler := handlers.NewHandler(services, events, log.Named("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// start refresh scheduler
	if err := services.Start(ctx); err != nil {
		log.Errorw("failed to start scheduler", "err", err)
		return err
	}
	defer services.Stop()

	// start HTTP server
	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	serveErr := runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	return waitForShutdown(cancel, srv, services, serveErr, cfg, log)
}

// openStores builds the configured actuator and snapshot stores and returns a
// closer for whatever connections they hold.
func openStores(ctx context.Context, cfg config.Config, log *logger.Logger) (*repository.Repository, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var actuators repository.ActuatorRepo = repository.NewActuatorMemory()
	if cfg.Store.Actuators == config.DriverSQLite {
		sqlDB, err := openDB(cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite: %w", err)
		}
		closers = append(closers, func() {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		})
		actuators = repository.NewActuatorSQLite(sqlDB)
	}

	var snapshots repository.SnapshotRepo = repository.NewSnapshotMemory()
	if cfg.Store.Snapshots == config.DriverRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			closeAll()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Infow("connected to redis", "addr", cfg.Redis.Addr)
		closers = append(closers, func() { _ = client.Close() })
		snapshots = repository.NewSnapshotRedis(client, cfg.Redis.TTL)
	}

	return repository.NewRepository(actuators, snapshots), closeAll, nil
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "greenhouse.db")
		dbPath = "greenhouse.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine and reports
// a failure to listen on the returned channel.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errc := make(chan error, 1)
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	return errc
}

// waitForShutdown blocks until a termination signal or a server failure, then
// stops the scheduler and drains in-flight requests.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, services *service.Service, serveErr <-chan error, cfg config.Config, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		log.Infow("shutting down server...")
	case err := <-serveErr:
		log.Errorw("error starting server", "err", err)
		runErr = err
	}

	// stop background goroutines
	services.Stop()
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
