package server

import "time"

type RouterOpt func(*Router)

// WithReceiveTimeout sets how long the router waits for a complete request
func WithReceiveTimeout(d time.Duration) RouterOpt {
	return func(r *Router) {
		r.timeout = d
	}
}
