package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DayType classifies a calendar day for an employee.
type DayType string

const (
	UnjustifiedAbsence DayType = "Unjustified Absence"
	JustifiedAbsence   DayType = "Justified Absence"
	Suspension         DayType = "Suspension"
	Vacation           DayType = "Vacation"
	Holiday            DayType = "Holiday"
	Rest               DayType = "Rest"
	Work               DayType = "Work"
)

// ErrInvalidDayType is returned by ParseDayType for unknown names.
var ErrInvalidDayType = errors.New("invalid day type")

// DayTypes lists every day type from highest to lowest precedence.
var DayTypes = []DayType{
	UnjustifiedAbsence,
	JustifiedAbsence,
	Suspension,
	Vacation,
	Holiday,
	Rest,
	Work,
}

// dayTypeRanks holds the precedence of each day type. Lower wins.
var dayTypeRanks = map[DayType]int{
	UnjustifiedAbsence: 1,
	JustifiedAbsence:   2,
	Suspension:         3,
	Vacation:           4,
	Holiday:            5,
	Rest:               6,
	Work:               7,
}

// UnknownRank is the rank of a day type missing from the table.
// It loses against every known type.
const UnknownRank = 8

// dayTypeAliases maps lowercase spellings, including the Spanish names used
// by the paper forms, to canonical day types.
var dayTypeAliases = map[string]DayType{
	"unjustified absence": UnjustifiedAbsence,
	"unjustified_absence": UnjustifiedAbsence,
	"falta injustificada": UnjustifiedAbsence,
	"justified absence":   JustifiedAbsence,
	"justified_absence":   JustifiedAbsence,
	"falta justificada":   JustifiedAbsence,
	"suspension":          Suspension,
	"suspensión":          Suspension,
	"vacation":            Vacation,
	"vacaciones":          Vacation,
	"holiday":             Holiday,
	"feriado":             Holiday,
	"rest":                Rest,
	"descanso":            Rest,
	"work":                Work,
	"trabajo":             Work,
}

// ParseDayType resolves a canonical name or a known alias.
func ParseDayType(s string) (DayType, error) {
	if dt, ok := dayTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return dt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDayType, s)
}

// Rank returns the precedence of d. Unknown types get UnknownRank.
func (d DayType) Rank() int {
	if r, ok := dayTypeRanks[d]; ok {
		return r
	}
	return UnknownRank
}

// Valid reports whether d is one of the known day types.
func (d DayType) Valid() bool {
	_, ok := dayTypeRanks[d]
	return ok
}

// NeedsHours reports whether a row of this type carries working time.
func (d DayType) NeedsHours(workedOnHoliday bool) bool {
	return d == Work || (d == Holiday && workedOnHoliday)
}

func (d DayType) String() string {
	return string(d)
}
