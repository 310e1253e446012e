// internal/spacestate/pollperiod.go
package spacestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PathPollPeriod is the device endpoint for the space-state poll period.
// PUT takes the new value as a trailing path segment.
const PathPollPeriod = "/api/space/state/config/poll_period"

// Poll period bounds, in seconds. Zero disables polling.
const (
	PollPeriodDisabled = 0
	MinPollPeriod      = 5
	MaxPollPeriod      = 600
)

var (
	ErrEmpty      = errors.New("poll period: value required")
	ErrNotNumber  = errors.New("poll period: please enter a valid number")
	ErrOutOfRange = fmt.Errorf("poll period: value must be between %d-%d seconds, or 0 to disable", MinPollPeriod, MaxPollPeriod)
)

// ValidatePollPeriod parses user input. 0 disables polling; any other
// value must be within [MinPollPeriod, MaxPollPeriod].
func ValidatePollPeriod(input string) (int, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return 0, ErrEmpty
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrNotNumber
	}
	if n == PollPeriodDisabled {
		return n, nil
	}
	if n < MinPollPeriod || n > MaxPollPeriod {
		return 0, ErrOutOfRange
	}
	return n, nil
}

// Getter is the transport the client needs. device.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string) ([]byte, error)
}

type Client struct {
	getter Getter
}

func NewClient(getter Getter) *Client {
	return &Client{getter: getter}
}

// PollPeriod reads the current period in seconds (0 = disabled).
func (c *Client) PollPeriod(ctx context.Context) (int, error) {
	body, err := c.getter.Get(ctx, PathPollPeriod)
	if err != nil {
		return 0, err
	}
	var payload struct {
		Seconds *int `json:"poll_period_seconds"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("poll period: decode: %w", err)
	}
	if payload.Seconds == nil {
		return 0, errors.New("poll period: device response has no poll_period_seconds")
	}
	return *payload.Seconds, nil
}

// SetPollPeriod validates input and forwards it to the device.
// Invalid input never reaches the device.
func (c *Client) SetPollPeriod(ctx context.Context, input string) (int, error) {
	n, err := ValidatePollPeriod(input)
	if err != nil {
		return 0, err
	}
	if _, err := c.getter.Put(ctx, PathPollPeriod+"/"+strconv.Itoa(n)); err != nil {
		return 0, err
	}
	return n, nil
}

// IsValidation reports whether err came from ValidatePollPeriod.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmpty) || errors.Is(err, ErrNotNumber) || errors.Is(err, ErrOutOfRange)
}
