package reports

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type counted[K comparable] struct {
	key   K
	count int
}

// rank считает бронирования по ключу keyOf и возвращает top-n по убыванию.
// Равные счетчики упорядочены по первому появлению ключа при обходе набора
// в хронологическом порядке ключей бронирований (внутри ключа - порядок вставки).
// n <= 0 возвращает все строки.
func rank[K comparable](set domain.ReservationSet, username *domain.Identity, n int, keyOf func(domain.Reservation) K) []counted[K] {
	index := make(map[K]int)
	rows := make([]counted[K], 0)

	for _, r := range set.All() {
		if username != nil && r.Username != *username {
			continue
		}

		k := keyOf(r)
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, counted[K]{key: k})
		}
		rows[i].count++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].count > rows[j].count
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// RankByDayOfWeek ранжирует дни недели по числу бронирований
func RankByDayOfWeek(set domain.ReservationSet, username *domain.Identity, n int) []domain.DayCount {
	rows := rank(set, username, n, func(r domain.Reservation) time.Weekday { return r.Date.Weekday() })

	result := make([]domain.DayCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.DayCount{Day: row.key, Count: row.count})
	}
	return result
}

// RankByTimeOfDay ранжирует время суток по числу бронирований
func RankByTimeOfDay(set domain.ReservationSet, username *domain.Identity, n int) []domain.TimeCount {
	rows := rank(set, username, n, func(r domain.Reservation) types.TimeString { return r.Time })

	result := make([]domain.TimeCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.TimeCount{Time: row.key, Count: row.count})
	}
	return result
}

// RankByDayAndTime ранжирует пары (день недели, время) по числу бронирований
func RankByDayAndTime(set domain.ReservationSet, username *domain.Identity, n int) []domain.DayTimeCount {
	rows := rank(set, username, n, func(r domain.Reservation) domain.DayTime {
		return domain.DayTime{Day: r.Date.Weekday(), Time: r.Time}
	})

	result := make([]domain.DayTimeCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.DayTimeCount{DayTime: row.key, Count: row.count})
	}
	return result
}
