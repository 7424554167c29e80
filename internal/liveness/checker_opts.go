package liveness

import "time"

type CheckerOpt func(*Checker)

// WithTimeout sets how long a probe may take to connect and to receive its reply
func WithTimeout(d time.Duration) CheckerOpt {
	return func(c *Checker) {
		c.timeout = d
	}
}
