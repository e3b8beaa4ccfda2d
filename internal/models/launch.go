package models

import "time"

// LaunchRecord - one detached server start.
type LaunchRecord struct {
	ID        int64
	PID       int
	Port      int
	URL       string
	Ready     bool
	StartedAt time.Time
}
