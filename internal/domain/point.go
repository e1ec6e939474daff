// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPointOverflow indicates that a charge would push the balance above the maximum.
	ErrPointOverflow = errors.New("maximum point limit exceeded")
	// ErrInsufficientPoints indicates that a deduct amount exceeds the current balance.
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Balance holds point balance data for a single user.
type Balance struct {
	UserID    int64     `json:"user_id"`
	Points    int64     `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OverflowError rejects a charge that would exceed the configured maximum balance.
// Remaining is the largest amount that still could have been charged, so the caller
// learns the room left rather than the shortfall.
type OverflowError struct {
	Remaining int64
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("maximum point limit exceeded: you can charge up to %d more", e.Remaining)
}

// Is matches the ErrPointOverflow sentinel so callers can switch on the kind
// without unpacking the struct.
func (e OverflowError) Is(target error) bool {
	return target == ErrPointOverflow
}

// InsufficientPointsError rejects a deduct larger than the current balance.
// Current carries the pre-operation balance.
type InsufficientPointsError struct {
	Current int64
}

func (e InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: your current balance is %d", e.Current)
}

// Is matches the ErrInsufficientPoints sentinel.
func (e InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}
