package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harmonic-pos/salonledger/internal/auth"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := newRoot(&cli{now: func() time.Time { return testNow }})
	var out bytes.Buffer
	root.SetIn(bytes.NewBufferString(input))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// mustRun runs a command against dir and fails the test on error.
func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := execute(t, append([]string{"--dir", dir}, args...)...)
	require.NoError(t, err, out)
	return out
}

func initDir(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	out, err := execute(t, append([]string{"init", dir, "--name", "Test Salon"}, extra...)...)
	require.NoError(t, err, out)
	return dir
}
