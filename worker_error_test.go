package pymp_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classner/pymp"
)

func TestWorkerErrorWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	we := &pymp.WorkerError{ThreadNum: 3, Err: cause}

	if !errors.Is(we, cause) {
		t.Fatal("WorkerError must unwrap to its cause")
	}
	if got := we.Error(); !strings.Contains(got, "worker 3") {
		t.Fatalf("error text %q does not name the worker", got)
	}
}

func TestRegionErrorCarriesOnlyCounts(t *testing.T) {
	re := &pymp.RegionError{Failed: 2, Workers: 4}

	want := "pymp: 2 of 4 workers failed in parallel region"
	if got := re.Error(); got != want {
		t.Fatalf("error text %q, want %q", got, want)
	}
	if errors.Unwrap(re) != nil {
		t.Fatal("RegionError must not expose per-worker detail")
	}
}

func TestErrorPredicates(t *testing.T) {
	re := fmt.Errorf("outer: %w", &pymp.RegionError{Failed: 1, Workers: 2})
	ce := fmt.Errorf("outer: %w", &pymp.ConfigError{Setting: "PYMP_NESTED", Reason: "bad"})

	if !pymp.IsRegionError(re) || pymp.IsRegionError(ce) {
		t.Fatal("IsRegionError misclassified")
	}
	if !pymp.IsConfigError(ce) || pymp.IsConfigError(re) {
		t.Fatal("IsConfigError misclassified")
	}
	if pymp.IsRegionError(nil) || pymp.IsConfigError(nil) {
		t.Fatal("nil must not classify as any failure")
	}
}

func TestPanicDetailStaysOutOfAggregate(t *testing.T) {
	err := pymp.Run(1, func(p *pymp.Parallel) error {
		panic("kaboom")
	}, conf(pymp.Config{NumThreads: []int{1}}), quiet())

	// The region reports counts only; the panic text lives in the logs.
	if !pymp.IsRegionError(err) {
		t.Fatalf("expected *RegionError, got %T: %v", err, err)
	}
	if strings.Contains(err.Error(), "kaboom") {
		t.Fatal("aggregate error must not leak panic detail")
	}
}

func TestWorkerFailureIsLoggedWithAttribution(t *testing.T) {
	var logged bytes.Buffer
	logger := zerolog.New(&logged)

	err := pymp.Run(2, func(p *pymp.Parallel) error {
		if p.ThreadNum() == 1 {
			return errors.New("sensor offline")
		}
		return nil
	}, conf(pymp.Config{NumThreads: []int{2}}), pymp.WithLogger(logger))

	if !pymp.IsRegionError(err) {
		t.Fatalf("expected *RegionError, got %T: %v", err, err)
	}

	out := logged.String()
	for _, want := range []string{"sensor offline", `"thread_num":1`, `"level":"fatal"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}
