package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func key(date string, time types.TimeString) ReservationKey {
	return ReservationKey{Date: types.MustDate(date), Time: time}
}

func TestReservationKey_String(t *testing.T) {
	assert.Equal(t, "2024-08-04 10:00", key("2024-08-04", "10:00").String())
}

func TestReservationSet_KeysAreChronological(t *testing.T) {
	set := NewReservationSet()
	set.Add(Reservation{Date: types.MustDate("2024-08-05"), Time: "09:00", Slot: 1, Username: "a"})
	set.Add(Reservation{Date: types.MustDate("2024-08-04"), Time: "23:00", Slot: 1, Username: "a"})
	set.Add(Reservation{Date: types.MustDate("2024-08-04"), Time: "09:00", Slot: 2, Username: "b"})

	assert.Equal(t, []ReservationKey{
		key("2024-08-04", "09:00"),
		key("2024-08-04", "23:00"),
		key("2024-08-05", "09:00"),
	}, set.Keys())
	assert.Equal(t, 3, set.Len())
}

func TestReservationSet_RemoveDropsEmptyKey(t *testing.T) {
	set := NewReservationSet()
	r := Reservation{Date: types.MustDate("2024-08-04"), Time: "09:00", Slot: 2, Username: "a"}
	set.Add(r)

	require.True(t, set.IsOccupied(r.Key(), 2))
	assert.False(t, set.Remove(r.Key(), 2, "someone-else"))
	assert.True(t, set.Remove(r.Key(), 2, "a"))

	_, ok := set[r.Key()]
	assert.False(t, ok)
	assert.Equal(t, 0, set.Len())
}

func TestReservationSet_RemoveKeepsOtherOccupants(t *testing.T) {
	set := NewReservationSet()
	k := key("2024-08-04", "09:00")
	set.Add(Reservation{Date: k.Date, Time: k.Time, Slot: 1, Username: "a"})
	set.Add(Reservation{Date: k.Date, Time: k.Time, Slot: 2, Username: "b"})
	set.Add(Reservation{Date: k.Date, Time: k.Time, Slot: 3, Username: "c"})

	require.True(t, set.Remove(k, 2, "b"))

	assert.Equal(t, []Reservation{
		{Date: k.Date, Time: k.Time, Slot: 1, Username: "a"},
		{Date: k.Date, Time: k.Time, Slot: 3, Username: "c"},
	}, set[k])
}

func TestReservationSet_CloneIsIndependent(t *testing.T) {
	set := NewReservationSet()
	k := key("2024-08-04", "09:00")
	set.Add(Reservation{Date: k.Date, Time: k.Time, Slot: 1, Username: "a"})

	clone := set.Clone()
	clone.Add(Reservation{Date: k.Date, Time: k.Time, Slot: 2, Username: "b"})

	assert.Len(t, set[k], 1)
	assert.Len(t, clone[k], 2)
}

func TestSlotIndex_IsValid(t *testing.T) {
	assert.True(t, SlotIndex(1).IsValid())
	assert.True(t, SlotIndex(3).IsValid())
	assert.False(t, SlotIndex(0).IsValid())
	assert.False(t, SlotIndex(4).IsValid())
}
