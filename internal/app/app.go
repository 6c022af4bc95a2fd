// Package app собирает OrderService: хранилище, интеграции, фоновые воркеры,
// gRPC API, HTTP-шлюз и служебный HTTP-сервер с метриками и health checks.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	healthcheck "github.com/vladislavdragonenkov/oms/internal/health"
	"github.com/vladislavdragonenkov/oms/internal/metrics"
	grpcsvc "github.com/vladislavdragonenkov/oms/internal/service/grpc"
	"github.com/vladislavdragonenkov/oms/internal/service/idempotency"
	"github.com/vladislavdragonenkov/oms/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/oms/internal/service/outbox"
	"github.com/vladislavdragonenkov/oms/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/oms/internal/version"
	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

const defaultShutdownTimeout = 5 * time.Second

// Run запускает сервис и блокируется до отмены ctx или ошибки gRPC-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger.WithField("layer", "storage"))
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	if err := seedPromotions(ctx, deps.promotionRepo, cfg.PromotionsFile, logger); err != nil {
		return err
	}

	ext, err := initIntegrations(cfg, deps.returnRepo, logger.WithField("layer", "integrations"))
	if err != nil {
		return err
	}
	defer ext.close(logger)

	controller, err := lifecycle.NewController(lifecycle.Dependencies{
		Orders:         deps.repo,
		Promotions:     deps.promotionRepo,
		Returns:        deps.returnRepo,
		Tx:             deps.tx,
		Sequence:       deps.sequence,
		Events:         outbox.NewSink(deps.outboxRepo),
		Inventory:      ext.inventory,
		Metrics:        metrics.NewLifecycle(),
		Logger:         logger.WithField("component", "lifecycle"),
		RestockTimeout: cfg.RestockTimeout,
	})
	if err != nil {
		return err
	}
	guard := idempotency.NewGuard(deps.idempotencyRepo, cfg.IdempotencyTTL, logger.WithField("component", "idempotency"))
	orderService := grpcsvc.NewOrderService(controller, guard, logger.WithField("layer", "grpc"))

	// Воркеры живут дольше ctx: их останавливают после gRPC, чтобы дослать outbox.
	workerCtx, cancelWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelWorkers()
	outboxDone := startOutboxWorker(workerCtx, cfg, deps, ext, logger)
	cleanupDone := startBackground(func() {
		idempotency.NewCleanupWorker(deps.idempotencyRepo, idempotency.CleanupConfig{
			Interval:  cfg.IdempotencyCleanupInterval,
			BatchSize: cfg.IdempotencyCleanupBatchSize,
		}, logger.WithField("component", "idempotency-cleanup")).Run(workerCtx)
	})
	ext.startConsumer(workerCtx, logger)

	grpcServer, grpcHealth := newGRPCServer(orderService, logger)

	healthHandler := healthcheck.NewHandler(version.Current().Version)
	registerCheckers(healthHandler, cfg, deps)
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	gatewaySrv := startGatewayServer(cfg.HTTPAddr, orderService, logger)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		shutdownHTTP(gatewaySrv, logger)
		shutdownHTTP(metricsSrv, logger)
		shutdownOutboxWorker(cancelWorkers, outboxDone, logger)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("gRPC сервер слушает %s", lis.Addr())
		errCh <- grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		grpcHealth.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		shutdownHTTP(gatewaySrv, logger)
		stopGRPC(grpcServer, shutdownTimeout, logger)
		shutdownOutboxWorker(cancelWorkers, outboxDone, logger)
		<-cleanupDone
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(gatewaySrv, logger)
		shutdownOutboxWorker(cancelWorkers, outboxDone, logger)
		<-cleanupDone
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

func newGRPCServer(orderService omsv1.OrderServiceServer, logger *log.Entry) (*grpc.Server, *health.Server) {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()))
	omsv1.RegisterOrderServiceServer(server, orderService)
	grpcMetrics.InitializeMetrics(server)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(omsv1.OrderService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
	return server, healthServer
}

// stopGRPC ждёт завершения активных RPC, по таймауту останавливает сервер принудительно.
func stopGRPC(server *grpc.Server, timeout time.Duration, logger *log.Entry) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		server.Stop()
	}
}

func registerCheckers(handler *healthcheck.Handler, cfg Config, deps *runtimeDependencies) {
	if deps.storageChecker != nil {
		handler.RegisterChecker("storage", deps.storageChecker)
	}
	if deps.sequenceChecker != nil {
		handler.RegisterChecker("sequence", deps.sequenceChecker)
	}
	if cfg.OutboxMaxPending > 0 {
		handler.RegisterChecker("outbox", healthcheck.NewBacklogChecker("outbox", cfg.OutboxMaxPending,
			func(ctx context.Context) (int, error) {
				backlog, err := deps.outboxRepo.Backlog(ctx)
				return backlog.Pending, err
			}))
	}
}

func startOutboxWorker(ctx context.Context, cfg Config, deps *runtimeDependencies, ext *integrations, logger *log.Entry) <-chan struct{} {
	options := []outbox.Option{
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithMetrics(metrics.NewOutbox(prometheus.DefaultRegisterer)),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
		outbox.WithRetention(cfg.OutboxRetention),
	}
	if ext.dlqPublisher != nil {
		options = append(options, outbox.WithDLQPublisher(ext.dlqPublisher))
	}
	worker := outbox.NewWorker(deps.outboxRepo, ext.outboxPublisher, options...)
	return startBackground(func() { worker.Run(ctx) })
}

func startBackground(fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return done
}

// shutdownOutboxWorker отменяет воркер и ждёт завершения текущего батча.
func shutdownOutboxWorker(cancel context.CancelFunc, done <-chan struct{}, logger *log.Entry) {
	if cancel != nil {
		cancel()
	}
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info("outbox worker stopped")
	case <-time.After(defaultShutdownTimeout):
		logger.Warn("outbox worker did not stop in time")
	}
}

// startGatewayServer поднимает HTTP/JSON шлюз. Пустой адрес отключает шлюз.
func startGatewayServer(addr string, orders omsv1.OrderServiceServer, logger *log.Entry) *http.Server {
	if addr == "" {
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewHandler(orders, logger.WithField("layer", "http")).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Infof("HTTP шлюз слушает %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("http gateway failed")
		}
	}()
	return srv
}

// startMetricsServer запускает служебный HTTP: /metrics, /healthz, /readyz, /livez.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).WithField("addr", srv.Addr).Warn("http shutdown with error")
	}
}
