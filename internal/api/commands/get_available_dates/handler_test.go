package get_available_dates

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	getAvailableDates "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	last *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	s.last = req
	return s.resp, s.err
}

func execute(t *testing.T, uc *stubUseCase, args ...string) (string, error) {
	t.Helper()
	cmd := NewHandler(uc, nopLogger{}).Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDates_RendersWindow(t *testing.T) {
	start := types.MustDate("2024-08-05")
	uc := &stubUseCase{resp: &getAvailableDates.Response{
		Start:       start,
		WindowDays:  7,
		Page:        1,
		HasPrevious: true,
		Dates: []getAvailableDates.AvailableDate{
			{Date: start, Weekday: time.Monday},
			{Date: start.AddDays(2), Weekday: time.Wednesday},
		},
	}}

	out, err := execute(t, uc, "--page", "1", "--from", "2024-07-29")
	require.NoError(t, err)

	require.NotNil(t, uc.last.Start)
	assert.Equal(t, types.MustDate("2024-07-29"), *uc.last.Start)
	assert.Equal(t, 1, uc.last.Page)

	assert.Contains(t, out, "Available dates 2024-08-05 - 2024-08-11 (page 1):")
	assert.Regexp(t, `2024-08-05\s*│\s*Monday`, out)
	assert.Regexp(t, `2024-08-07\s*│\s*Wednesday`, out)
	assert.Contains(t, out, "Previous window: --page 0, next window: --page 2")
}

func TestDates_EmptyWindow(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{Start: types.MustDate("2024-08-05"), WindowDays: 7}}

	out, err := execute(t, uc)
	require.NoError(t, err)
	assert.Nil(t, uc.last.Start)
	assert.Contains(t, out, msgNoDates)
}

func TestDates_Errors(t *testing.T) {
	_, err := execute(t, &stubUseCase{err: getAvailableDates.ErrInvalidInput}, "--page", "-1")
	assert.Equal(t, commands.ExitInvalidInput, commands.ExitCode(err))

	_, err = execute(t, &stubUseCase{err: getAvailableDates.ErrPersistence})
	assert.Equal(t, commands.ExitUnavailable, commands.ExitCode(err))

	_, err = execute(t, &stubUseCase{}, "--from", "tomorrow")
	assert.Equal(t, commands.ExitInvalidInput, commands.ExitCode(err))
}
