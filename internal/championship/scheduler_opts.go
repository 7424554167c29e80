package championship

import "time"

type SchedulerOpt func(*Scheduler)

func WithInterval(interval time.Duration) SchedulerOpt {
	return func(s *Scheduler) {
		s.interval = interval
	}
}

// WithMatchLimit stops scheduling after n matches. 0 means no limit.
func WithMatchLimit(n int) SchedulerOpt {
	return func(s *Scheduler) {
		s.limit = n
	}
}
