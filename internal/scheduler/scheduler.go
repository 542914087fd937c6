package scheduler

import (
	"context"
	"fmt"

	"github.com/centavo/centavo/pkg/rollover"
	"github.com/centavo/centavo/pkg/transfer"
	"github.com/centavo/centavo/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs the rollover and transfer jobs on their cron schedules,
// once per registered user. Rollover is always scheduled before transfers
// so a freshly opened period is funded at its target before any cadence
// amount lands on top of it.
type Scheduler struct {
	cron            *cron.Cron
	userService     user.Service
	rolloverService rollover.Service
	transferService transfer.Service
}

func NewScheduler(
	userService user.Service,
	rolloverService rollover.Service,
	transferService transfer.Service,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		userService:     userService,
		rolloverService: rolloverService,
		transferService: transferService,
	}
}

// RegisterAll registers both jobs. Specs use the standard five field cron
// format.
func (s *Scheduler) RegisterAll(rolloverCron, transferCron string) error {
	if _, err := s.cron.AddFunc(rolloverCron, s.rolloverTask); err != nil {
		return fmt.Errorf("register rollover task: %w", err)
	}
	if _, err := s.cron.AddFunc(transferCron, s.transferTask); err != nil {
		return fmt.Errorf("register transfer task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Info("scheduler stopped")
}

func (s *Scheduler) rolloverTask() {
	log.Info("running scheduled rollover job")
	s.forEachUser(func(ctx context.Context, u user.User) {
		created, err := s.rolloverService.Run(ctx)
		if err != nil {
			log.Errorf("rollover job failed for user %d: %v", u.Id, err)
			return
		}
		if created > 0 {
			log.Infof("rollover created %d budget items for user %d", created, u.Id)
		}
	})
}

func (s *Scheduler) transferTask() {
	log.Info("running scheduled transfer job")
	s.forEachUser(func(ctx context.Context, u user.User) {
		processed, err := s.transferService.ProcessTransfers(ctx)
		if err != nil {
			log.Errorf("transfer job failed for user %d: %v", u.Id, err)
			return
		}
		if processed > 0 {
			log.Infof("transfer job credited %d budget items for user %d", processed, u.Id)
		}
	})
}

// forEachUser runs fn with each user set on the context. A failure for one
// user never stops the job for the others.
func (s *Scheduler) forEachUser(fn func(ctx context.Context, u user.User)) {
	ctx := context.Background()
	users, err := s.userService.GetAllUsers(ctx)
	if err != nil {
		log.Errorf("could not list users for scheduled job: %v", err)
		return
	}
	for _, u := range users {
		fn(user.WithUser(ctx, u), u)
	}
}
