package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-tri/common"
	"github.com/Carmen-Shannon/oxy-tri/engine/renderer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	prev := common.Logger()
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(prev) })

	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(time.Second), withClock(clock.now))

	statuses := []renderer.FrameStatus{
		renderer.FrameStatusPresented,
		renderer.FrameStatusPresented,
		renderer.FrameStatusSkipped,
		renderer.FrameStatusRecovered,
	}
	for _, s := range statuses {
		clock.advance(200 * time.Millisecond)
		if p.Tick(s) {
			t.Fatalf("Tick(%v) logged before the interval elapsed", s)
		}
	}

	clock.advance(200 * time.Millisecond)
	if !p.Tick(renderer.FrameStatusPresented) {
		t.Fatal("Tick() did not log after the interval elapsed")
	}

	got := p.Last()
	if got.Presented != 3 || got.Skipped != 1 || got.Recovered != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/1/1", got.Presented, got.Skipped, got.Recovered)
	}
	if got.Elapsed != time.Second {
		t.Errorf("Elapsed = %v, want 1s", got.Elapsed)
	}
	if got.FPS != 3 {
		t.Errorf("FPS = %v, want 3", got.FPS)
	}
	if n := strings.Count(buf.String(), "frame stats"); n != 1 {
		t.Errorf("logged %d times, want 1:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "skipped=1") {
		t.Errorf("log line missing skipped count:\n%s", buf.String())
	}
}

func TestTickResetsCounts(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(withClock(clock.now))

	clock.advance(time.Second)
	p.Tick(renderer.FrameStatusSkipped)

	clock.advance(time.Second)
	if !p.Tick(renderer.FrameStatusPresented) {
		t.Fatal("Tick() did not log after the second interval")
	}
	if got := p.Last(); got.Skipped != 0 || got.Presented != 1 {
		t.Errorf("counts after reset = %+v, want one presented frame", got)
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
