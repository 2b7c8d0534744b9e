package cmd

import (
	"errors"
	"time"
)

var ErrInvalidArgs = errors.New("arguments invalid")

type Clock interface {
	Now() time.Time
}

type defaultClock struct{}

func (c *defaultClock) Now() time.Time {
	return time.Now()
}
