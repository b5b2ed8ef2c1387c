package heartbeat

import (
	"context"
	"sync/atomic"
	"time"

	"keypad-motor-go/services/scanner"
	"keypad-motor-go/x/logx"
)

// Source supplies the counters reported on each beat.
type Source interface {
	Stats() scanner.Stats
}

type Service struct {
	src      Source
	interval time.Duration
	beats    atomic.Uint32
}

func New(src Source, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Second
	}
	return &Service{src: src, interval: interval}
}

func (s *Service) serviceLoop(ctx context.Context) {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	// loop until context is cancelled, report on each tick
	for {
		select {
		case <-ctx.Done():
			logx.Println("heartbeat", "stopping")
			return
		case <-tick.C:
			s.Beat()
		}
	}
}

// Beat logs one status line.
func (s *Service) Beat() {
	n := s.beats.Add(1)
	st := s.src.Stats()
	logx.Println("heartbeat",
		logx.Uint(uint64(n)),
		"captures="+logx.Uint(uint64(st.Captures)),
		"drops="+logx.Uint(uint64(st.Drops)),
		"faults="+logx.Uint(uint64(st.Faults)),
	)
}

// Beats counts status lines written.
func (s *Service) Beats() uint32 { return s.beats.Load() }

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context) error {
	go s.serviceLoop(ctx)
	return nil
}
