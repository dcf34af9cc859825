package dao

import (
	"database/sql"
	"time"
)

type NullTime struct {
	sql.NullTime
}

// AsTimePtr if parent is null, returns nil
func (nt *NullTime) AsTimePtr() *time.Time {
	if !nt.NullTime.Valid {
		return nil
	}
	t := nt.NullTime.Time
	return &t
}

// NullTimeFromPtr builds a driver-friendly value from an optional time
func NullTimeFromPtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
