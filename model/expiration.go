package model

import "time"

// DaysPerYear is the fixed day-count convention used everywhere.
const DaysPerYear = 365.0

// ExpirationDate is either a number of days to expiration or an absolute
// timestamp. Both reduce to a year fraction under the 365-day convention.
type ExpirationDate struct {
	days *Positive
	at   *time.Time
}

// ExpirationInDays builds a relative expiration.
func ExpirationInDays(days Positive) ExpirationDate {
	return ExpirationDate{days: &days}
}

// ExpirationAt builds an absolute expiration.
func ExpirationAt(t time.Time) ExpirationDate {
	return ExpirationDate{at: &t}
}

// DaysLeft is the remaining calendar days as of now, floored at zero.
func (e ExpirationDate) DaysLeft(now time.Time) Positive {
	if e.days != nil {
		return *e.days
	}
	if e.at == nil {
		return PZero
	}
	d := e.at.Sub(now).Hours() / 24
	if d < 0 {
		return PZero
	}
	return MustPositive(d)
}

// YearFraction is DaysLeft / 365.
func (e ExpirationDate) YearFraction(now time.Time) float64 {
	return e.DaysLeft(now).Float64() / DaysPerYear
}

// IsExpired reports whether no time remains.
func (e ExpirationDate) IsExpired(now time.Time) bool {
	return e.DaysLeft(now).IsZero()
}

func (e ExpirationDate) String() string {
	if e.at != nil {
		return e.at.Format("2006-01-02")
	}
	return e.DaysLeft(time.Now()).String() + "d"
}
