package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically re-runs webhook registration. Registration is
// idempotent, so a tick is a no-op unless Telegram lost the webhook.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	register func() (bool, error)
}

func New(spec string, register func() (bool, error)) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		spec:     spec,
		register: register,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		changed, err := s.register()
		if err != nil {
			log.Printf("scheduled webhook check failed: %v", err)
			return
		}
		if changed {
			log.Printf("scheduled webhook check re-registered the webhook")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("webhook self-heal scheduled (%s)", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
