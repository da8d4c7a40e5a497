package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/truledger/loanboard/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// ScheduleDigest summarizes one owner's due and overdue records for a
// reminder email.
type ScheduleDigest struct {
	WeekLabel       string
	DueLoans        int
	DueLoanAmount   float64
	DueReserves     int
	DueReserveTotal float64
	OverdueLoans    int
	OverdueEvents   int
}

// SendScheduleDigest sends a weekly schedule summary to an owner
func (s *Sender) SendScheduleDigest(to, username string, d ScheduleDigest) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if d.OverdueLoans > 0 {
		e.Subject = fmt.Sprintf("Loanboard: %d overdue loans need attention", d.OverdueLoans)
	} else {
		e.Subject = "Loanboard: your week ahead"
	}

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += fmt.Sprintf("Schedule summary for %s:\n\n", d.WeekLabel)
	body += fmt.Sprintf(
		"Loan payments due this week: %d totaling %.2f\n"+
			"Reserve deductions due: %d totaling %.2f\n",
		d.DueLoans, d.DueLoanAmount, d.DueReserves, d.DueReserveTotal,
	)
	if d.OverdueLoans > 0 {
		body += fmt.Sprintf(
			"\n%d loans are behind their original schedule (%d missed installments in total).\n"+
				"Please review them on the dashboard.\n",
			d.OverdueLoans, d.OverdueEvents,
		)
	}
	body += "\nBest regards,\nLoanboard"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
