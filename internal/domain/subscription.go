package domain

import (
	"errors"
	"time"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

// Subscription is a captured marketing-email signup.
type Subscription struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HealthCheckLog records a client-reported health ping.
type HealthCheckLog struct {
	ID        string
	Status    string
	Error     *string
	Timestamp time.Time
	CreatedAt time.Time
}
