package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Exporter provides the serialized collection snapshot to back up.
type Exporter interface {
	ExportJSON() ([]byte, error)
}

// Scheduler writes periodic export snapshots to the backup directory and
// optionally mails them. Backup failures are logged, never fatal: a
// missed snapshot must not disturb the wallet itself.
type Scheduler struct {
	exporter Exporter
	dir      string
	mailer   *Mailer
	log      *logrus.Logger
	cron     *cron.Cron
}

// NewScheduler initializes a backup scheduler. mailer may be nil when
// email delivery is not configured.
func NewScheduler(exporter Exporter, dir string, mailer *Mailer, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		dir:      dir,
		mailer:   mailer,
		log:      log,
		cron:     cron.New(),
	}
}

// Start registers the backup job under the given cron spec and starts the
// scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("invalid backup schedule: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Backup scheduler started: %s", spec)
	return nil
}

// Stop halts the scheduler. A job already running finishes normally.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run() {
	if err := s.Snapshot(); err != nil {
		s.log.Errorf("Backup failed: %v", err)
	}
}

// Snapshot exports the collection to a timestamped file and, when a
// mailer is configured, sends it as an attachment.
func (s *Scheduler) Snapshot() error {
	data, err := s.exporter.ExportJSON()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}
	name := filepath.Join(s.dir, time.Now().Format("20060102-150405")+"-cards.json")
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	s.log.Infof("Backup written: %s", name)

	if s.mailer != nil {
		if err := s.mailer.SendBackup(filepath.Base(name), data); err != nil {
			return err
		}
	}
	return nil
}
