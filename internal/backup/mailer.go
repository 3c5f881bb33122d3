package backup

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/mkotov/card-wallet/internal/config"
	"github.com/sirupsen/logrus"
)

// Mailer delivers backup snapshots by email via SMTP
type Mailer struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewMailer creates a new backup mailer
func NewMailer(cfg *config.Config, logger *logrus.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBackup sends the export snapshot as a JSON attachment
func (m *Mailer) SendBackup(filename string, data []byte) error {
	e := email.NewEmail()
	e.From = m.cfg.SenderEmail
	e.To = []string{m.cfg.BackupEmail}
	e.Subject = "Card wallet backup"

	body := fmt.Sprintf(
		"Attached is the card wallet export created on %s.\n"+
			"Import it from the wallet to restore your cards.\n",
		time.Now().Format("2006-01-02 15:04:05"),
	)
	e.Text = []byte(body)

	if _, err := e.Attach(bytes.NewReader(data), filename, "application/json"); err != nil {
		return fmt.Errorf("failed to attach backup: %w", err)
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		m.logger.Errorf("Failed to send backup to %s: %v", m.cfg.BackupEmail, err)
		return fmt.Errorf("failed to send backup email: %w", err)
	}

	m.logger.Infof("Backup emailed to %s", m.cfg.BackupEmail)
	return nil
}
