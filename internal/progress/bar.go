package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Bar is a simple terminal progress bar tracking processed triplets.
type Bar struct {
	total     int
	current   int
	mu        sync.Mutex
	startTime time.Time
	done      bool
}

// New creates a new progress bar for the given number of units.
func New(total int) *Bar {
	return &Bar{
		total:     total,
		startTime: time.Now(),
	}
}

// Increment advances the bar by one unit and redraws it.
func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	b.render()
}

// Finish completes the bar and moves to a fresh line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.done {
		b.current = b.total
		b.render()
		fmt.Println()
		b.done = true
	}
}

func (b *Bar) render() {
	if b.done || b.total == 0 {
		return
	}

	percentage := float64(b.current) / float64(b.total) * 100
	elapsed := time.Since(b.startTime)

	const width = 40
	filled := width * b.current / b.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	fmt.Printf("\r[%s] %d/%d (%.1f%%) - Elapsed: %s   ",
		bar, b.current, b.total, percentage, formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
