package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInterval    = errors.New("invalid interval")
	ErrInvalidShiftInput  = errors.New("invalid shift input")
	ErrOverlapConflict    = errors.New("overlap conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrShiftLoadFailed    = errors.New("load shift failed")
	ErrShiftPersistFailed = errors.New("persist shift failed")
)

// OverlapConflictError names the committed shift a candidate collides with.
type OverlapConflictError struct {
	ShiftID   string
	DayOfWeek int
	StartMin  int
	EndMin    int
}

func (err *OverlapConflictError) Error() string {
	return fmt.Sprintf("overlap conflict with shift %s (day %d, %d-%d)", err.ShiftID, err.DayOfWeek, err.StartMin, err.EndMin)
}

func (err *OverlapConflictError) Is(target error) bool {
	return target == ErrOverlapConflict
}
