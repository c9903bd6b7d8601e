package book_slot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookSlot "github.com/m04kA/SMC-ReservationService/internal/usecase/book_slot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	calls []*bookSlot.Request
	err   error
}

func (s *stubUseCase) Execute(_ context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return &bookSlot.Response{Reservation: domain.Reservation{
		Date: req.Date, Time: req.Time, Slot: req.Slot, Username: req.Username,
	}}, nil
}

func run(t *testing.T, uc *stubUseCase, input string, identity domain.Identity, args ...string) (string, error) {
	t.Helper()

	cmd := NewHandler(uc, nopLogger{}).Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)

	ctx := context.Background()
	if identity != "" {
		ctx = middleware.WithIdentity(ctx, identity)
	}
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestBook_WithYesFlag(t *testing.T) {
	uc := &stubUseCase{}

	out, err := run(t, uc, "", "alice", "--date", "2024-08-04", "--time", "11:00", "--slot", "2", "--yes")
	require.NoError(t, err)

	require.Len(t, uc.calls, 1)
	assert.Equal(t, domain.Identity("alice"), uc.calls[0].Username)
	assert.Equal(t, domain.SlotIndex(2), uc.calls[0].Slot)
	assert.Contains(t, out, "Booked slot 2 on 2024-08-04 (Sunday) at 11:00.")
}

func TestBook_Confirmation(t *testing.T) {
	t.Run("confirmed after a wrong answer", func(t *testing.T) {
		uc := &stubUseCase{}
		out, err := run(t, uc, "sure\nyes\n", "alice", "--date", "2024-08-04", "--time", "11:00", "--slot", "1")

		require.NoError(t, err)
		assert.Len(t, uc.calls, 1)
		assert.Contains(t, out, "Please answer yes or no.")
	})

	t.Run("declined", func(t *testing.T) {
		uc := &stubUseCase{}
		out, err := run(t, uc, "no\n", "alice", "--date", "2024-08-04", "--time", "11:00", "--slot", "1")

		require.NoError(t, err)
		assert.Empty(t, uc.calls)
		assert.Contains(t, out, msgAborted)
	})

	t.Run("no valid answer", func(t *testing.T) {
		uc := &stubUseCase{}
		_, err := run(t, uc, "a\nb\nc\n", "alice", "--date", "2024-08-04", "--time", "11:00", "--slot", "1")

		assert.Equal(t, commands.ExitInvalidInput, commands.ExitCode(err))
		assert.Empty(t, uc.calls)
	})
}

func TestBook_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		identity domain.Identity
		args     []string
		wantCode int
	}{
		{name: "not logged in", identity: "", wantCode: commands.ExitUnauthorized},
		{name: "bad date", identity: "alice", args: []string{"--date", "04/08/2024"}, wantCode: commands.ExitInvalidInput},
		{name: "bad slot", identity: "alice", args: []string{"--slot", "7"}, wantCode: commands.ExitInvalidInput},
		{name: "slot taken", identity: "alice", err: bookSlot.ErrSlotUnavailable, wantCode: commands.ExitConflict},
		{name: "rejected input", identity: "alice", err: bookSlot.ErrInvalidInput, wantCode: commands.ExitInvalidInput},
		{name: "storage failure", identity: "alice", err: fmt.Errorf("%w: disk full", bookSlot.ErrPersistence), wantCode: commands.ExitUnavailable},
		{name: "retries exhausted", identity: "alice", err: bookSlot.ErrRetryExhausted, wantCode: commands.ExitUnavailable},
		{name: "unexpected", identity: "alice", err: assert.AnError, wantCode: commands.ExitInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			args := []string{"--date", "2024-08-04", "--time", "11:00", "--slot", "1", "--yes"}
			args = append(args, tt.args...)

			_, err := run(t, uc, "", tt.identity, args...)
			assert.Equal(t, tt.wantCode, commands.ExitCode(err))
		})
	}
}
