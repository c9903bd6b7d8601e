package reservation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// entry элемент списка бронирований под ключом "<YYYY-MM-DD> <HH:MM>"
type entry struct {
	Slot     *int    `json:"slot"`
	Username *string `json:"username"`
}

// Encode сериализует набор. Ключи объекта сортируются (для этого формата это хронологический порядок),
// порядок бронирований внутри ключа сохраняется.
func Encode(set domain.ReservationSet) ([]byte, error) {
	raw := make(map[string][]entry, len(set))
	for key, list := range set {
		if len(list) == 0 {
			continue
		}
		entries := make([]entry, 0, len(list))
		for _, r := range list {
			slot := int(r.Slot)
			username := string(r.Username)
			entries = append(entries, entry{Slot: &slot, Username: &username})
		}
		raw[key.String()] = entries
	}

	payload, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return append(payload, '\n'), nil
}

// Decode разбирает и проверяет документ. Любое нарушение формата или инвариантов - ErrMalformedDocument.
func Decode(payload []byte) (domain.ReservationSet, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}

	var raw map[string][]entry
	if err := document.DecodeJSON(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrMalformedDocument)
	}

	set := domain.NewReservationSet()
	for rawKey, entries := range raw {
		key, err := parseKey(rawKey)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w: key %q has no reservations", ErrMalformedDocument, rawKey)
		}

		for i, e := range entries {
			r, err := toReservation(key, e)
			if err != nil {
				return nil, fmt.Errorf("%w (key %q, entry %d)", err, rawKey, i)
			}
			if set.IsOccupied(key, r.Slot) {
				return nil, fmt.Errorf("%w: key %q has slot %d twice", ErrMalformedDocument, rawKey, r.Slot)
			}
			set.Add(r)
		}
	}

	return set, nil
}

func parseKey(raw string) (domain.ReservationKey, error) {
	datePart, timePart, ok := strings.Cut(raw, " ")
	if !ok {
		return domain.ReservationKey{}, fmt.Errorf("%w: invalid key %q", ErrMalformedDocument, raw)
	}

	date, err := types.ParseDate(datePart)
	if err != nil {
		return domain.ReservationKey{}, fmt.Errorf("%w: invalid key %q: %v", ErrMalformedDocument, raw, err)
	}
	t, err := types.NewTimeStringFromString(timePart)
	if err != nil {
		return domain.ReservationKey{}, fmt.Errorf("%w: invalid key %q: %v", ErrMalformedDocument, raw, err)
	}

	key := domain.ReservationKey{Date: date, Time: t}
	// Ключ должен быть в канонической записи, иначе повторная запись изменит документ
	if key.String() != raw {
		return domain.ReservationKey{}, fmt.Errorf("%w: non-canonical key %q", ErrMalformedDocument, raw)
	}
	return key, nil
}

func toReservation(key domain.ReservationKey, e entry) (domain.Reservation, error) {
	if e.Slot == nil {
		return domain.Reservation{}, fmt.Errorf("%w: missing slot", ErrMalformedDocument)
	}
	if e.Username == nil {
		return domain.Reservation{}, fmt.Errorf("%w: missing username", ErrMalformedDocument)
	}

	slot := domain.SlotIndex(*e.Slot)
	if !slot.IsValid() {
		return domain.Reservation{}, fmt.Errorf("%w: slot %d out of range", ErrMalformedDocument, *e.Slot)
	}
	if strings.TrimSpace(*e.Username) == "" {
		return domain.Reservation{}, fmt.Errorf("%w: empty username", ErrMalformedDocument)
	}

	return domain.Reservation{
		Date:     key.Date,
		Time:     key.Time,
		Slot:     slot,
		Username: domain.Identity(*e.Username),
	}, nil
}
