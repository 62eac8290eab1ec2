package models

import "github.com/google/uuid"

// Id prefixes per entity.
const (
	PrefixProgramme  = "prog"
	PrefixAttendance = "att"
	PrefixReminder   = "rem"
	PrefixFeedback   = "fb"
	PrefixKPI        = "kpi"
	PrefixResource   = "res"
	PrefixBooking    = "bkg"
	PrefixTemplate   = "tpl"
	PrefixCategory   = "cat"
	PrefixTag        = "tag"
)

// IDGenerator allocates entity identifiers.
type IDGenerator func(prefix string) string

// NewID returns "<prefix>-<uuid v4>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
