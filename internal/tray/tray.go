// Package tray samples CPU and memory load for the taskbar tray.
package tray

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HistorySize is the number of CPU samples kept for the tray graph.
const HistorySize = 8

// sampleTimeout bounds one gopsutil read.
const sampleTimeout = time.Second

// Reading is one tray sample. Percentages are 0 to 100.
type Reading struct {
	CPU    float64
	Memory float64
	At     time.Time
}

// Sampler reads system load.
type Sampler interface {
	Sample(ctx context.Context) (Reading, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(ctx context.Context) (Reading, error)

func (f SamplerFunc) Sample(ctx context.Context) (Reading, error) { return f(ctx) }

// System samples the host through gopsutil.
var System Sampler = SamplerFunc(Sample)

// Sample returns CPU usage since the previous call and current memory use.
func Sample(ctx context.Context) (Reading, error) {
	cpus, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return Reading{}, fmt.Errorf("cpu percent: %w", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Reading{}, fmt.Errorf("virtual memory: %w", err)
	}
	r := Reading{Memory: vm.UsedPercent, At: time.Now()}
	if len(cpus) > 0 {
		r.CPU = cpus[0]
	}
	return r, nil
}

// Msg carries a reading into the Bubble Tea update loop.
type Msg struct {
	Reading
	Err error
}

// Tick samples after interval and delivers the result as a Msg.
func Tick(interval time.Duration, s Sampler) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
		defer cancel()
		r, err := s.Sample(ctx)
		if r.At.IsZero() {
			r.At = t
		}
		return Msg{Reading: r, Err: err}
	})
}

// History is a fixed-size window of CPU samples, oldest first.
type History struct {
	samples []float64
}

// Push appends a sample, dropping the oldest when full.
func (h *History) Push(v float64) {
	h.samples = append(h.samples, max(0, min(100, v)))
	if len(h.samples) > HistorySize {
		h.samples = h.samples[len(h.samples)-HistorySize:]
	}
}

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

var (
	bars      = []rune(" ▁▂▃▄▅▆▇█")
	asciiBars = []rune(" .:-=+*#@")
)

// Graph renders the history as one bar per sample, left padded to HistorySize.
func (h *History) Graph(asciiOnly bool) string {
	set := bars
	if asciiOnly {
		set = asciiBars
	}
	var sb strings.Builder
	for range HistorySize - len(h.samples) {
		sb.WriteRune(set[0])
	}
	step := 100.0 / float64(len(set)-1)
	for _, v := range h.samples {
		sb.WriteRune(set[int(v/step+0.5)])
	}
	return sb.String()
}

// HostInfo describes the machine for `deskos info`.
type HostInfo struct {
	Hostname string
	Platform string
	Uptime   time.Duration
	CPUs     int
}

// Host reads static host details.
func Host(ctx context.Context) (HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return HostInfo{}, fmt.Errorf("host info: %w", err)
	}
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		n = 0
	}
	return HostInfo{
		Hostname: info.Hostname,
		Platform: strings.TrimSpace(info.Platform + " " + info.PlatformVersion),
		Uptime:   time.Duration(info.Uptime) * time.Second,
		CPUs:     n,
	}, nil
}
