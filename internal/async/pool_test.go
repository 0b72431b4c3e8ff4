package async

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"idextract/internal/extract"
	"idextract/internal/results"
)

// gatedInferrer tracks how many Infer calls run at once and fails any call
// whose payload carries the "fail" marker.
type gatedInferrer struct {
	mu       sync.Mutex
	inFlight int32
	peak     int32
	delay    time.Duration
}

func (g *gatedInferrer) Infer(_ context.Context, dataURL string) ([]byte, error) {
	cur := atomic.AddInt32(&g.inFlight, 1)
	defer atomic.AddInt32(&g.inFlight, -1)

	g.mu.Lock()
	if cur > g.peak {
		g.peak = cur
	}
	g.mu.Unlock()

	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	if strings.Contains(dataURL, "fail") {
		return nil, errors.New("simulated transport error")
	}
	return []byte(`{"ID_type":"DL","name":"OK","dob":"1990-01-01","altered":false}`), nil
}

func makeJobs(n int) []extract.Job {
	jobs := make([]extract.Job, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("img%02d.png", i)
		jobs = append(jobs, extract.Job{Filename: name, Path: name, DataURL: "data:ok"})
	}
	return jobs
}

func TestPoolRespectsConcurrencyBudget(t *testing.T) {
	inf := &gatedInferrer{delay: 30 * time.Millisecond}
	pool := NewPool(extract.NewExtractor(inf, "", nil), nil, WithWorkers(2))
	agg := results.NewAggregator()

	if err := pool.Run(context.Background(), makeJobs(10), agg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if inf.peak > 2 {
		t.Errorf("peak concurrent inference calls = %d, want <= 2", inf.peak)
	}
	if agg.Len() != 10 {
		t.Errorf("result set has %d entries, want 10", agg.Len())
	}
}

func TestPoolCardinalityWithFailures(t *testing.T) {
	inf := &gatedInferrer{}
	pool := NewPool(extract.NewExtractor(inf, "", nil), nil, WithWorkers(3))
	agg := results.NewAggregator()

	jobs := makeJobs(3)
	jobs[1].DataURL = "data:fail" // one transport failure out of three

	if err := pool.Run(context.Background(), jobs, agg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	set := agg.ResultSet()
	if len(set) != 3 {
		t.Fatalf("result set has %d entries, want 3 (failures keep their slot)", len(set))
	}

	failed := set[jobs[1].Filename]
	if failed.IDType != "na" || failed.Name != "na" || failed.Altered || failed.FaceBBox != nil {
		t.Errorf("failed image should hold an all-default record, got %+v", failed)
	}
	ok := set[jobs[0].Filename]
	if ok.Name != "OK" {
		t.Errorf("successful record lost: %+v", ok)
	}

	succeeded, failures := agg.Counts()
	if succeeded != 2 || failures != 1 {
		t.Errorf("counts = %d/%d, want 2/1", succeeded, failures)
	}
}

func TestPoolAllFailuresStillFillSet(t *testing.T) {
	inf := &gatedInferrer{}
	pool := NewPool(extract.NewExtractor(inf, "", nil), nil, WithWorkers(2))
	agg := results.NewAggregator()

	jobs := makeJobs(5)
	for i := range jobs {
		jobs[i].DataURL = "data:fail"
	}

	if err := pool.Run(context.Background(), jobs, agg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if agg.Len() != 5 {
		t.Errorf("result set has %d entries, want 5 even at 100%% failure", agg.Len())
	}
}

func TestPoolTaskTimeoutBecomesFailure(t *testing.T) {
	inf := &gatedInferrer{delay: 200 * time.Millisecond}
	slow := &timeoutInferrer{inner: inf}
	pool := NewPool(extract.NewExtractor(slow, "", nil), nil,
		WithWorkers(1), WithTaskTimeout(20*time.Millisecond))
	agg := results.NewAggregator()

	if err := pool.Run(context.Background(), makeJobs(1), agg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if agg.Len() != 1 {
		t.Fatalf("result set has %d entries, want 1", agg.Len())
	}
	_, failed := agg.Counts()
	if failed != 1 {
		t.Errorf("timed-out task should be recorded as a failure, failed = %d", failed)
	}
}

// timeoutInferrer honors context cancellation while delegating to inner.
type timeoutInferrer struct {
	inner *gatedInferrer
}

func (t *timeoutInferrer) Infer(ctx context.Context, dataURL string) ([]byte, error) {
	done := make(chan struct{})
	var (
		b   []byte
		err error
	)
	go func() {
		b, err = t.inner.Infer(ctx, dataURL)
		close(done)
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		return b, err
	}
}
