package sign_up

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-ReservationService/internal/api/commands"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/document"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/service/auth"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler() (*Handler, *user.Repository) {
	repo := user.NewRepository(document.NewMemoryStore())
	svc := auth.NewService(repo, txmanager.NewTransactionManager(txmanager.NewLocalLocker()), bcrypt.MinCost, nopLogger{})
	return NewHandler(svc, nopLogger{}), repo
}

func execute(t *testing.T, h *Handler, input string, args ...string) (string, error) {
	t.Helper()
	cmd := h.Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSignUp(t *testing.T) {
	h, repo := newHandler()

	out, err := execute(t, h, "wonder1and\n", "--username", "alice", "--first-name", "Alice", "--last-name", "Liddell")
	require.NoError(t, err)
	assert.Contains(t, out, "Account alice created.")

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Liddell", stored.LastName)
}

func TestSignUp_Errors(t *testing.T) {
	h, _ := newHandler()
	base := []string{"--username", "alice", "--first-name", "Alice", "--last-name", "Liddell"}

	_, err := execute(t, h, "", append(base, "--password", "short1")...)
	assert.Equal(t, commands.ExitInvalidInput, commands.ExitCode(err))

	_, err = execute(t, h, "", append(base, "--password", "wonder1and")...)
	require.NoError(t, err)

	_, err = execute(t, h, "", append(base, "--password", "wonder1and")...)
	assert.Equal(t, commands.ExitConflict, commands.ExitCode(err))

	_, err = execute(t, h, "", "--username", "bob", "--first-name", " ", "--last-name", "B", "--password", "builder12")
	assert.Equal(t, commands.ExitInvalidInput, commands.ExitCode(err))
}
