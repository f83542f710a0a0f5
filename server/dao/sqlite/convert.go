package sqlite

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

// times are stored as unix seconds; the zero time is stored as 0.
func convertToDB_Time(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	if i == 0 {
		*target = time.Time{}
		return nil
	}
	*target = time.Unix(i, 0)
	return nil
}

// logout times are compared to the nanosecond when signing tokens, so they
// keep full precision.
func convertToDB_NanoTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func convertFromDB_NanoTime(i int64, target *time.Time) {
	if i == 0 {
		*target = time.Time{}
		return
	}
	*target = time.Unix(0, i)
}

func convertToDB_Duration(d time.Duration) int64 {
	return d.Nanoseconds()
}

func convertFromDB_Duration(i int64, target *time.Duration) error {
	if i < 0 {
		return fmt.Errorf("negative duration")
	}
	*target = time.Duration(i)
	return nil
}

// CNF grammars are stored as base64 of their REZI binary encoding.
func convertToDB_CNF(c grammar.CNF) string {
	return base64.StdEncoding.EncodeToString(rezi.EncBinary(c))
}

func convertFromDB_CNF(s string, target *grammar.CNF) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}

	var c grammar.CNF
	if _, err := rezi.DecBinary(data, &c); err != nil {
		return err
	}
	*target = c
	return nil
}
