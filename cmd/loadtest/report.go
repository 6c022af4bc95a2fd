package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
)

const scenarioMethod = "scenario"

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type methodReport struct {
	Calls     int64            `json:"calls"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Codes     map[string]int64 `json:"codes"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time               `json:"started_at"`
	DurationSeconds   float64                 `json:"duration_seconds"`
	TotalScenarios    int64                   `json:"total_scenarios"`
	FailedScenarios   int64                   `json:"failed_scenarios"`
	ErrorRate         float64                 `json:"error_rate"`
	ScenariosPerSec   float64                 `json:"scenarios_per_sec"`
	ScenarioLatencyMs latencySummary          `json:"scenario_latency_ms"`
	Methods           map[string]methodReport `json:"methods"`
}

type samples struct {
	codes     map[codes.Code]int64
	latencies []float64
}

// collector копит задержки по методам. Безопасен для конкурентных воркеров.
type collector struct {
	mu      sync.Mutex
	methods map[string]*samples
}

func newCollector() *collector {
	return &collector{methods: make(map[string]*samples)}
}

func (c *collector) record(method string, latency time.Duration, code codes.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.methods[method]
	if !ok {
		s = &samples{codes: make(map[codes.Code]int64)}
		c.methods[method] = s
	}
	s.codes[code]++
	s.latencies = append(s.latencies, float64(latency.Microseconds())/1000)
}

func (c *collector) report(startedAt time.Time, elapsed time.Duration) report {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: elapsed.Seconds(),
		Methods:         make(map[string]methodReport, len(c.methods)),
	}
	for name, s := range c.methods {
		m := s.summary()
		if name == scenarioMethod {
			result.TotalScenarios = m.Calls
			result.FailedScenarios = m.Failed
			result.ErrorRate = m.ErrorRate
			result.ScenarioLatencyMs = m.LatencyMs
			continue
		}
		result.Methods[name] = m
	}
	if elapsed > 0 {
		result.ScenariosPerSec = float64(result.TotalScenarios) / elapsed.Seconds()
	}
	return result
}

func (s *samples) summary() methodReport {
	m := methodReport{
		Calls:     int64(len(s.latencies)),
		Codes:     make(map[string]int64, len(s.codes)),
		LatencyMs: summarize(s.latencies),
	}
	for code, n := range s.codes {
		m.Codes[code.String()] = n
		if code != codes.OK {
			m.Failed += n
		}
	}
	if m.Calls > 0 {
		m.ErrorRate = float64(m.Failed) / float64(m.Calls)
	}
	return m
}

func summarize(values []float64) latencySummary {
	if len(values) == 0 {
		return latencySummary{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

// percentile интерполирует между соседними рангами отсортированной выборки.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo, hi := int(math.Floor(rank)), int(math.Ceil(rank))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}

func printReport(w io.Writer, cfg config, r report) {
	fmt.Fprintf(w, "mode=%s scenarios=%d failed=%d error_rate=%.4f\n",
		cfg.mode, r.TotalScenarios, r.FailedScenarios, r.ErrorRate)
	fmt.Fprintf(w, "duration=%.2fs scenarios/s=%.2f\n", r.DurationSeconds, r.ScenariosPerSec)
	fmt.Fprintf(w, "scenario ms: p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
		r.ScenarioLatencyMs.P50, r.ScenarioLatencyMs.P95, r.ScenarioLatencyMs.P99, r.ScenarioLatencyMs.Max)

	names := make([]string, 0, len(r.Methods))
	for name := range r.Methods {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		m := r.Methods[name]
		fmt.Fprintf(w, "%s: calls=%d failed=%d p95=%.2fms codes=%v\n", name, m.Calls, m.Failed, m.LatencyMs.P95, m.Codes)
	}
}

func writeJSONReport(path string, r report) error {
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path must stay inside the working directory: %s", path)
	}

	// #nosec G304 -- путь задаёт оператор через -output.
	file, err := os.Create(clean)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
