package server

import "time"

type SubscriptionsOpt func(*Subscriptions)

// WithConfirmDelay sets how long to wait before the first liveness check of a new subscriber
func WithConfirmDelay(d time.Duration) SubscriptionsOpt {
	return func(s *Subscriptions) {
		s.delay = d
	}
}
