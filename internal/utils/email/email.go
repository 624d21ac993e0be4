package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendPanchangDigest mails the daily panchang to every recipient
func (s *Sender) SendPanchangDigest(to []string, d models.DailyPanchang) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = to
	e.Subject = fmt.Sprintf("Panchang for %s", d.Date)
	e.Text = []byte(digestBody(d))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send panchang digest to %s: %v", strings.Join(to, ","), err)
		return fmt.Errorf("failed to send panchang digest: %w", err)
	}

	s.logger.Infof("Email sent to %d recipients: %s", len(to), e.Subject)
	return nil
}

func digestBody(d models.DailyPanchang) string {
	p := d.Panchang
	var b strings.Builder
	fmt.Fprintf(&b, "Panchang for %s (%s, %.4f, %.4f)\n\n", d.Date, d.Timezone, d.Location.Latitude, d.Location.Longitude)
	fmt.Fprintf(&b, "Vara:      %s\n", p.Vara)
	fmt.Fprintf(&b, "Tithi:     %s (%s paksha, %d)\n", p.Tithi, p.Paksha, p.TithiNumber)
	fmt.Fprintf(&b, "Nakshatra: %s\n", p.Nakshatra)
	fmt.Fprintf(&b, "Yoga:      %s\n", p.Yoga)
	fmt.Fprintf(&b, "Karana:    %s\n", p.Karana)
	fmt.Fprintf(&b, "Moon:      %s\n", p.MoonPhase)
	if p.Sunrise != "" {
		fmt.Fprintf(&b, "Sunrise:   %s\nSunset:    %s\n", p.Sunrise, p.Sunset)
	} else {
		b.WriteString("The Sun does not rise today; values are taken at local noon.\n")
	}
	b.WriteString("\nBest regards,\nKundli Service")
	return b.String()
}
