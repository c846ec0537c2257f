package pymp

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/classner/pymp/shared"
)

// BodyFunc is a region body. It is executed once per worker, each
// invocation receiving that worker's [*Parallel] view of the region.
//
// An error return or a panic marks the executing worker as failed; it
// does not interrupt sibling workers.
type BodyFunc func(p *Parallel) error

// region is the per-entry state shared by all workers of one region.
type region struct {
	conf    *Config
	logger  zerolog.Logger
	name    string
	depth   int
	threads int
	parent  *region
	lock    *shared.Mutex
	agg     *aggregator

	schedMu sync.Mutex
	cursors []*cursor
}

// Parallel is one worker's view of an active region. It is valid only
// for the duration of the body invocation it was passed to and must not
// be shared between workers.
type Parallel struct {
	r         *region
	threadNum int
	loops     int
}

// Run enters a top-level parallel region: it resolves the effective
// worker count from requested and the configuration, executes body once
// per worker (worker 0 on the calling goroutine, the rest on their own
// goroutines), and joins every worker before returning.
//
// requested must be positive; the resolved count may be lower when the
// configuration clamps it. If one or more workers fail, Run returns a
// single [*RegionError] after all workers have joined.
//
//	buf := shared.NewBuffer[float64](100)
//	err := pymp.Run(4, func(p *pymp.Parallel) error {
//	    for _, i := range p.Range(buf.Len()) {
//	        buf.Set(compute(i), i)
//	    }
//	    return nil
//	})
func Run(requested int, body BodyFunc, opts ...Option) error {
	cfg := defaultRegionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	conf := cfg.conf
	if conf == nil {
		var err error
		if conf, err = DefaultConfig(); err != nil {
			return err
		}
	}

	return enter(nil, 0, requested, conf, cfg.logger, cfg.name, body)
}

// Run enters a region nested inside p's region, at one greater nesting
// depth. It inherits the enclosing region's configuration handle and
// logger; the configuration's current values are consulted anew, so a
// nested region observes mutations made since the outer entry.
//
// With [Config.Nested] false, every nested region resolves to a single
// worker running the body inline.
func (p *Parallel) Run(requested int, body BodyFunc) error {
	r := p.r
	return enter(r, r.depth+1, requested, r.conf, r.logger, r.name, body)
}

func enter(parent *region, depth, requested int, conf *Config, logger zerolog.Logger, name string, body BodyFunc) error {
	threads, err := resolveThreadCount(conf, depth, requested)
	if err != nil {
		return err
	}

	if name != "" {
		logger = logger.With().Str("region", name).Logger()
	}

	r := &region{
		conf:    conf,
		logger:  logger,
		name:    name,
		depth:   depth,
		threads: threads,
		parent:  parent,
		lock:    shared.NewMutex(),
		agg:     newAggregator(threads),
	}

	r.logger.Debug().
		Int("depth", depth).
		Int("requested", requested).
		Int("threads", threads).
		Msg("entering parallel region")

	var wg sync.WaitGroup
	for tn := 1; tn < threads; tn++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.runWorker(tn, body)
		}()
	}
	r.runWorker(0, body)

	// Join every worker before consulting the failure counter, even
	// when worker 0 already failed.
	wg.Wait()

	r.logger.Debug().
		Int("depth", depth).
		Int("threads", threads).
		Int("failed", r.agg.failureCount()).
		Msg("parallel region joined")

	return r.agg.regionError(threads)
}

// resolveThreadCount applies the configuration to a requested worker
// count: nested regions degrade to 1 when nesting is disabled, the
// per-depth counts clamp (reusing the last entry beyond the list), and
// the thread limit caps the result. The result is always at least 1.
func resolveThreadCount(conf *Config, depth, requested int) (int, error) {
	if requested <= 0 {
		return 0, &ConfigError{"thread count",
			fmt.Sprintf("must be positive, got %d", requested)}
	}
	if err := conf.validate("configuration"); err != nil {
		return 0, err
	}

	if depth > 0 && !conf.Nested {
		return 1, nil
	}

	threads := requested
	if len(conf.NumThreads) > 0 {
		idx := depth
		if idx >= len(conf.NumThreads) {
			idx = len(conf.NumThreads) - 1
		}
		if c := conf.NumThreads[idx]; c < threads {
			threads = c
		}
	}
	if conf.ThreadLimit > 0 && conf.ThreadLimit < threads {
		threads = conf.ThreadLimit
	}
	if threads < 1 {
		threads = 1
	}
	return threads, nil
}

func (r *region) runWorker(threadNum int, body BodyFunc) {
	p := &Parallel{r: r, threadNum: threadNum}

	if err := r.exec(p, body); err != nil {
		r.agg.record(threadNum, err)
		r.logger.WithLevel(zerolog.FatalLevel).
			Int("thread_num", threadNum).
			Int("depth", r.depth).
			Err(err).
			Msg("uncaught failure in parallel worker")
	}
}

// exec runs the body with panic recovery.
func (r *region) exec(p *Parallel, body BodyFunc) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newPanicError(rec)
		}
	}()
	return body(p)
}

// ThreadNum returns the calling worker's identity within the region,
// in [0, NumThreads()). The worker that entered the region is always 0.
func (p *Parallel) ThreadNum() int {
	return p.threadNum
}

// NumThreads returns the region's resolved worker count.
func (p *Parallel) NumThreads() int {
	return p.r.threads
}

// Depth returns the region's nesting depth, 0 for a top-level region.
func (p *Parallel) Depth() int {
	return p.r.depth
}

// Lock returns the region's default lock, shared by all its workers.
func (p *Parallel) Lock() *shared.Mutex {
	return p.r.lock
}

var (
	printMu sync.Mutex
	printTo io.Writer = os.Stdout
)

// Print writes its arguments like fmt.Println, serialized against Print
// and Printf calls from every worker of every region.
func (p *Parallel) Print(args ...any) {
	printMu.Lock()
	defer printMu.Unlock()
	fmt.Fprintln(printTo, args...)
}

// Printf writes like fmt.Printf, serialized against Print and Printf
// calls from every worker of every region.
func (p *Parallel) Printf(format string, args ...any) {
	printMu.Lock()
	defer printMu.Unlock()
	fmt.Fprintf(printTo, format, args...)
}
