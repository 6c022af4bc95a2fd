// Команда loadtest гоняет сценарии жизненного цикла заказа против gRPC-сервиса
// и печатает сводку по задержкам и кодам ответов.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

type config struct {
	addr        string
	total       int
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	mode        scenarioMode
	returnRate  int
	currency    string
	product     string
	priceMinor  int64
	promotions  []string
	outputPath  string
}

func parseConfig(args []string, output io.Writer) (config, error) {
	var (
		cfg        config
		mode       string
		promotions string
	)

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "scenarios to run; with -duration acts as an upper bound when > 0")
	fs.DurationVar(&cfg.duration, "duration", 0, "run for a fixed time instead of a fixed count")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&mode, "mode", string(modeCreate), "scenario: create | confirm-cancel | fulfil")
	fs.IntVar(&cfg.returnRate, "return-rate", 0, "percent of fulfil scenarios that end with a return (0..100)")
	fs.StringVar(&cfg.currency, "currency", "VND", "order currency")
	fs.StringVar(&cfg.product, "product", "SKU-LOAD", "product reference of the single order line")
	fs.Int64Var(&cfg.priceMinor, "price-minor", 150000, "unit price in minor units")
	fs.StringVar(&promotions, "promotions", "", "comma-separated promotion ids applied on create")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report path")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	parsed, err := parseMode(mode)
	if err != nil {
		return config{}, err
	}
	cfg.mode = parsed
	for _, id := range strings.Split(promotions, ",") {
		if id = strings.TrimSpace(id); id != "" {
			cfg.promotions = append(cfg.promotions, id)
		}
	}

	switch {
	case cfg.duration < 0:
		return config{}, errors.New("duration must be >= 0")
	case cfg.duration == 0 && cfg.total <= 0:
		return config{}, errors.New("total must be > 0 without -duration")
	case cfg.concurrency <= 0:
		return config{}, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return config{}, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return config{}, errors.New("timeout must be > 0")
	case cfg.priceMinor < 0:
		return config{}, errors.New("price-minor must be >= 0")
	case cfg.returnRate < 0 || cfg.returnRate > 100:
		return config{}, errors.New("return-rate must be between 0 and 100")
	case strings.TrimSpace(cfg.currency) == "":
		return config{}, errors.New("currency is required")
	case strings.TrimSpace(cfg.product) == "":
		return config{}, errors.New("product is required")
	}
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fail("invalid config: %v", err)
	}

	clients := make([]omsv1.OrderServiceClient, 0, cfg.connections)
	for i := 0; i < cfg.connections; i++ {
		conn, err := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			fail("create grpc connection: %v", err)
		}
		defer conn.Close()
		clients = append(clients, omsv1.NewOrderServiceClient(conn))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := run(ctx, cfg, clients)
	printReport(os.Stdout, cfg, result)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			fail("write report: %v", err)
		}
	}
	if result.FailedScenarios > 0 {
		os.Exit(1)
	}
}

// run раздаёт сценарии воркерам, воркеры делят клиентов по кругу.
func run(ctx context.Context, cfg config, clients []omsv1.OrderServiceClient) report {
	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()

	jobs := make(chan int, cfg.concurrency*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.concurrency; w++ {
		sc := scenario{client: clients[w%len(clients)], cfg: cfg, runID: runID, col: col}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				_ = sc.run(ctx, index)
			}
		}()
	}

	dispatchJobs(ctx, jobs, cfg)
	wg.Wait()

	return col.report(startedAt, time.Since(startedAt))
}

func dispatchJobs(ctx context.Context, jobs chan<- int, cfg config) {
	defer close(jobs)

	var deadline <-chan time.Time
	if cfg.duration > 0 {
		timer := time.NewTimer(cfg.duration)
		defer timer.Stop()
		deadline = timer.C
	}

	for i := 0; cfg.total <= 0 || i < cfg.total; i++ {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case jobs <- i:
		}
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
