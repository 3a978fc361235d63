package jobs

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modaline/whatsapp-support-bot/internal/storage"
)

// SessionCleanupJob periodically evicts expired sessions so the store stays
// bounded regardless of how many senders ever wrote in.
type SessionCleanupJob struct {
	store    storage.Store
	log      *logrus.Logger
	interval time.Duration
	stop     chan struct{}
}

// NewSessionCleanupJob creates the sweeper.
func NewSessionCleanupJob(store storage.Store, log *logrus.Logger, interval time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{
		store:    store,
		log:      log,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (j *SessionCleanupJob) Start() {
	j.log.Infof("Starting session cleanup job (every %s)", j.interval)
	go j.run()
}

// Stop halts the sweep.
func (j *SessionCleanupJob) Stop() {
	close(j.stop)
}

func (j *SessionCleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := j.store.DeleteExpiredSessions()
			if err != nil {
				j.log.Errorf("Session cleanup failed: %v", err)
				continue
			}
			if removed > 0 {
				j.log.Infof("Cleaned up %d expired sessions", removed)
			}
		case <-j.stop:
			return
		}
	}
}
