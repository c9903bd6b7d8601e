package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// MsgNoReservations выводится, когда в выборке нет бронирований
const MsgNoReservations = "No reservations found."

// Table таблица для вывода в терминал
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RightAligned номера колонок (с 1), выровненных вправо: счетчики и номера слотов
	RightAligned []int
}

// RenderTable выводит заголовок (если задан) и таблицу в рамке
func RenderTable(w io.Writer, t Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(t.Headers))
	for _, h := range t.Headers {
		header = append(header, h)
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		cells := make(table.Row, 0, len(row))
		for _, c := range row {
			cells = append(cells, c)
		}
		tw.AppendRow(cells)
	}

	configs := make([]table.ColumnConfig, 0, len(t.RightAligned))
	for _, number := range t.RightAligned {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// FormatSlots "1, 2, 3"
func FormatSlots(slots []domain.SlotIndex) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		parts = append(parts, strconv.Itoa(int(s)))
	}
	return strings.Join(parts, ", ")
}
