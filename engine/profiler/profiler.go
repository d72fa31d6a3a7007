package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer"
)

// Stats is a snapshot of one profiling interval.
type Stats struct {
	Presented int
	Skipped   int
	Recovered int
	FPS       float64
	Elapsed   time.Duration

	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame outcomes, frame rate and memory statistics for performance monitoring.
// Outputs stats to the shared logger at a configurable interval.
type Profiler struct {
	counts         map[renderer.FrameStatus]int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now func() time.Time
}

// ProfilerOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often the profiler logs its statistics.
// Non-positive values keep the default of one second.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerOption: a function that applies the interval option to a profiler
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// withClock replaces the time source.
func withClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options configuring the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		counts:         make(map[renderer.FrameStatus]int),
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per rendered frame with the frame's outcome.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, frame outcomes, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - status: the outcome of the frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(status renderer.FrameStatus) bool {
	p.counts[status]++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	stats := Stats{
		Presented: p.counts[renderer.FrameStatusPresented],
		Skipped:   p.counts[renderer.FrameStatusSkipped],
		Recovered: p.counts[renderer.FrameStatusRecovered],
		Elapsed:   elapsed,
	}
	stats.FPS = float64(stats.Presented) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows, Sys is the process footprint.
	stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	stats.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	stats.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	stats.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > stats.MaxPauseUs {
				stats.MaxPauseUs = pause
			}
		}
	}

	common.Logger().Info("frame stats",
		"fps", stats.FPS,
		"presented", stats.Presented,
		"skipped", stats.Skipped,
		"recovered", stats.Recovered,
		"heap_mb", stats.HeapMB,
		"alloc_rate_mb_s", stats.AllocRateMB,
		"gc", stats.GCCount,
		"gc_last_us", stats.LastPauseUs,
		"gc_max_us", stats.MaxPauseUs,
		"sys_mb", stats.SysMB,
	)

	clear(p.counts)
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = stats
	return true
}

// Last returns the statistics of the most recently logged interval.
//
// Returns:
//   - Stats: the last logged snapshot, zero before the first interval elapses
func (p *Profiler) Last() Stats {
	return p.last
}
