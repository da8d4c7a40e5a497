// Package reminder runs the scheduled digest job: each run scans every
// owner's open records and emails a summary of the week's obligations.
package reminder

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/report"
	"github.com/truledger/loanboard/internal/repository"
	"github.com/truledger/loanboard/internal/schedule"
	"github.com/truledger/loanboard/internal/utils/email"
)

// Job owns the cron schedule for digest delivery
type Job struct {
	repo   *repository.Repository
	sender *email.Sender
	log    *logrus.Logger
	cron   *cron.Cron
}

// NewJob creates a reminder job
func NewJob(repo *repository.Repository, sender *email.Sender, log *logrus.Logger) *Job {
	return &Job{repo: repo, sender: sender, log: log, cron: cron.New()}
}

// Start schedules the job with a standard cron spec
func (j *Job) Start(spec string) error {
	if _, err := j.cron.AddFunc(spec, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Infof("Reminder job scheduled: %s", spec)
	return nil
}

// Stop halts the cron scheduler
func (j *Job) Stop() {
	j.cron.Stop()
}

func (j *Job) run() {
	asOf := schedule.Today()
	users, err := j.repo.Users()
	if err != nil {
		j.log.Errorf("Reminder scan failed: %v", err)
		return
	}
	for _, u := range users {
		loans, err := j.repo.Loans(u.ID)
		if err != nil {
			j.log.Errorf("Reminder: loans for %s: %v", u.ID, err)
			continue
		}
		reserves, err := j.repo.Reserves(u.ID)
		if err != nil {
			j.log.Errorf("Reminder: reserves for %s: %v", u.ID, err)
			continue
		}
		digest, ok := buildDigest(loans, reserves, asOf)
		if !ok {
			continue
		}
		if err := j.sender.SendScheduleDigest(u.Email, u.Username, digest); err != nil {
			j.log.Errorf("Reminder: send to %s: %v", u.Email, err)
		}
	}
}

// buildDigest folds an owner's records into a digest. ok is false when
// nothing is due or overdue, in which case no mail is sent.
func buildDigest(loans []models.Loan, reserves []models.Reserve, asOf string) (email.ScheduleDigest, bool) {
	d := email.ScheduleDigest{WeekLabel: report.WeekRangeLabel(asOf)}

	loanRecs := make([]schedule.Record, len(loans))
	for i := range loans {
		loanRecs[i] = loans[i].Schedule()
		if overdue := schedule.OverdueCount(loanRecs[i], asOf); overdue > 0 {
			d.OverdueLoans++
			d.OverdueEvents += overdue
		}
	}
	reserveRecs := make([]schedule.Record, len(reserves))
	for i := range reserves {
		reserveRecs[i] = reserves[i].Schedule()
	}

	d.DueLoanAmount, d.DueLoans = report.WeekDueTotal(loanRecs, schedule.KindLoan, asOf)
	d.DueReserveTotal, d.DueReserves = report.WeekDueTotal(reserveRecs, schedule.KindReserve, asOf)

	ok := d.DueLoans > 0 || d.DueReserves > 0 || d.OverdueLoans > 0
	return d, ok
}
