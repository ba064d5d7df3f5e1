package weather

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Query describes a single weather request: where, optionally for which day,
// and in which unit system the report should be expressed.
type Query struct {
	Location Location   `validate:"required"`
	Date     string     `validate:"omitempty,datetime=2006-01-02"`
	Units    UnitSystem `validate:"omitempty,oneof=metric imperial"`
}

// Timed reports whether the query targets a specific day rather than the
// current conditions.
func (q Query) Timed() bool { return q.Date != "" }

// Day returns the targeted day parsed as a UTC calendar date.
func (q Query) Day() (time.Time, error) {
	day, err := time.Parse(DateLayout, q.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrConfiguration, q.Date)
	}
	return day, nil
}

// Validate checks the query shape before any network call is made.
func (q Query) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}
