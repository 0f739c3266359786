// Package jobs holds the scheduled background work of the front desk.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-front-desk/internal/model"
)

// OverdueLister lists in-house reservations that should have checked out
// before day.
type OverdueLister interface {
	Overdue(ctx context.Context, day time.Time) ([]model.Reservation, error)
}

// OverdueSweep reports guests still checked in after their check-out date
// so the desk can follow up.  It never changes a reservation: check-out
// needs a payment, which only staff can take.
type OverdueSweep struct {
	repo OverdueLister
	log  *zap.Logger
	now  func() time.Time
}

func NewOverdueSweep(repo OverdueLister, log *zap.Logger) *OverdueSweep {
	return &OverdueSweep{repo: repo, log: log, now: time.Now}
}

// Run performs one sweep and returns the number of overdue reservations.
func (s *OverdueSweep) Run(ctx context.Context) (int, error) {
	today := model.DateOnly(s.now())
	list, err := s.repo.Overdue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("overdue sweep: %w", err)
	}
	for _, r := range list {
		s.log.Warn("guest past check-out date",
			zap.Uint64("reservation_id", r.ID),
			zap.String("guest", r.GuestName),
			zap.String("room", r.RoomNumber),
			zap.String("check_out", r.CheckOut.Format(time.DateOnly)),
			zap.Int("days_overdue", int(today.Sub(r.CheckOut).Hours()/24)))
	}
	s.log.Info("overdue sweep finished", zap.Int("overdue", len(list)))
	return len(list), nil
}

// Schedule registers the sweep on a new cron scheduler using spec (standard
// five-field syntax) and starts it.  Stop the returned scheduler on
// shutdown.
func Schedule(spec string, sweep *OverdueSweep, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := sweep.Run(ctx); err != nil {
			log.Error("cron job failed", zap.String("job", "overdue_sweep"), zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule overdue sweep %q: %w", spec, err)
	}
	c.Start()
	log.Info("cron scheduler started", zap.String("overdue_sweep", spec))
	return c, nil
}
