package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// CanonicalTimes is the fixed, ordered set of bookable times of day
var CanonicalTimes = []types.TimeString{
	"09:00",
	"11:00",
	"13:00",
	"15:00",
	"17:00",
	"19:00",
	"21:00",
	"23:00",
}

// SlotIndexes is the fixed set of parallel slots at every date and time
var SlotIndexes = []SlotIndex{1, 2, 3}

// Default configuration values
const (
	DefaultWindowDays = 7
	DefaultTopN       = 5
	DefaultMaxRetries = 5
)

// Business validation constants
const (
	MinWindowDays        = 1
	MaxWindowDays        = 366
	MaxPage              = 520
	MinTopN              = 1
	MinPasswordLength    = 8
	MaxPasswordLength    = 32
	MaxUsernameLength    = 64
	MaxConfirmAttempts   = 3
	ReservationsDocument = "reservations"
	UsersDocument        = "users"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsCanonicalTime returns true if t is one of the canonical times of day
func IsCanonicalTime(t types.TimeString) bool {
	for _, canonical := range CanonicalTimes {
		if t == canonical {
			return true
		}
	}
	return false
}
