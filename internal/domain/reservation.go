package domain

import (
	"sort"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Identity is an opaque, non-empty user token supplied by the authenticator
type Identity string

// SlotIndex is one of the parallel booking lanes available at a date and time
type SlotIndex int

// IsValid returns true if the slot index is one of the canonical slots
func (s SlotIndex) IsValid() bool {
	for _, slot := range SlotIndexes {
		if s == slot {
			return true
		}
	}
	return false
}

// Reservation represents a booked slot. Reservations are never mutated in place.
type Reservation struct {
	Date     types.Date
	Time     types.TimeString
	Slot     SlotIndex
	Username Identity
}

// Key returns the reservation key the reservation belongs to
func (r Reservation) Key() ReservationKey {
	return ReservationKey{Date: r.Date, Time: r.Time}
}

// Matches returns true if the reservation is exactly (date, time, slot, username)
func (r Reservation) Matches(key ReservationKey, slot SlotIndex, username Identity) bool {
	return r.Key() == key && r.Slot == slot && r.Username == username
}

// ReservationKey identifies a bookable time window: a date and a time of day
type ReservationKey struct {
	Date types.Date
	Time types.TimeString
}

// String returns the durable form of the key: "<YYYY-MM-DD> <HH:MM>"
func (k ReservationKey) String() string {
	return k.Date.String() + " " + k.Time.String()
}

// Less orders keys chronologically
func (k ReservationKey) Less(other ReservationKey) bool {
	if c := k.Date.Compare(other.Date); c != 0 {
		return c < 0
	}
	return k.Time.IsBefore(other.Time)
}

// ReservationSet maps a reservation key to the reservations occupying its slots.
// Within one key slot values are unique and a key never maps to an empty list.
type ReservationSet map[ReservationKey][]Reservation

// NewReservationSet returns an empty reservation set
func NewReservationSet() ReservationSet {
	return make(ReservationSet)
}

// Keys returns all keys in chronological order
func (s ReservationSet) Keys() []ReservationKey {
	keys := make([]ReservationKey, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
	return keys
}

// IsOccupied returns true if a reservation already holds (key, slot)
func (s ReservationSet) IsOccupied(key ReservationKey, slot SlotIndex) bool {
	for _, r := range s[key] {
		if r.Slot == slot {
			return true
		}
	}
	return false
}

// Add appends a reservation to its key.
// Callers must check IsOccupied first; Add does not enforce slot uniqueness.
func (s ReservationSet) Add(r Reservation) {
	key := r.Key()
	s[key] = append(s[key], r)
}

// Remove deletes the reservation matching (key, slot, username).
// The key is dropped when its list becomes empty. Returns false if nothing matched.
func (s ReservationSet) Remove(key ReservationKey, slot SlotIndex, username Identity) bool {
	list, ok := s[key]
	if !ok {
		return false
	}

	for i, r := range list {
		if !r.Matches(key, slot, username) {
			continue
		}

		rest := make([]Reservation, 0, len(list)-1)
		rest = append(rest, list[:i]...)
		rest = append(rest, list[i+1:]...)

		if len(rest) == 0 {
			delete(s, key)
		} else {
			s[key] = rest
		}
		return true
	}

	return false
}

// All returns every reservation in chronological key order, insertion order within a key
func (s ReservationSet) All() []Reservation {
	result := make([]Reservation, 0, len(s))
	for _, key := range s.Keys() {
		result = append(result, s[key]...)
	}
	return result
}

// Len returns the total number of reservations
func (s ReservationSet) Len() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// Clone returns a deep copy of the set
func (s ReservationSet) Clone() ReservationSet {
	clone := make(ReservationSet, len(s))
	for key, list := range s {
		clone[key] = append([]Reservation(nil), list...)
	}
	return clone
}

// Snapshot is a reservation set together with the durable version it was read at.
// Version 0 means the durable record does not exist yet.
type Snapshot struct {
	Set     ReservationSet
	Version int64
}

// Horizon partitions a user's reservations relative to "now"
type Horizon string

const (
	HorizonPast   Horizon = "past"
	HorizonFuture Horizon = "future"
)

// IsValid returns true for a known horizon
func (h Horizon) IsValid() bool {
	return h == HorizonPast || h == HorizonFuture
}
