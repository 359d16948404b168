package cleanup

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// SessionSweeper drops idle games and reports how many went.
type SessionSweeper interface {
	CleanupOldSessions(maxIdle time.Duration) int
}

type Worker struct {
	Sessions SessionSweeper
	MaxIdle  time.Duration
	Interval time.Duration
}

func NewWorker(sessions SessionSweeper, maxIdle, interval time.Duration) *Worker {
	return &Worker{Sessions: sessions, MaxIdle: maxIdle, Interval: interval}
}

// Start runs one sweep immediately and then every Interval until ctx is done.
// A non-positive Interval leaves only the first sweep.
func (w *Worker) Start(ctx context.Context) {
	w.runCleanup()

	if w.Interval <= 0 {
		log.Printf("[CLEANUP] Invalid interval %s, periodic cleanup disabled", w.Interval)
		return
	}

	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	log.Printf("[CLEANUP] Background worker started (every %s, idle limit %s)", w.Interval, w.MaxIdle)
}

func (w *Worker) runCleanup() {
	log.Debug("[CLEANUP] Starting scheduled cleanup task...")

	if removed := w.Sessions.CleanupOldSessions(w.MaxIdle); removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle game sessions", removed)
	}
}
