package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelmon-go/internal/infrastructure/pidfile"
)

func readPID(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	return pid
}

func TestAcquire_WritesCurrentPID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuelmon.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())
	assert.Equal(t, os.Getpid(), readPID(t, path))

	require.NoError(t, p.Release())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquire_ReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuelmon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))

	require.NoError(t, pidfile.New(path).Acquire())
	assert.Equal(t, os.Getpid(), readPID(t, path))
}

func TestAcquire_RejectsLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuelmon.pid")
	// The parent of the test binary is alive for the duration of the test
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())+"\n"), 0o644))

	err := pidfile.New(path).Acquire()
	require.Error(t, err)
	assert.ErrorIs(t, err, pidfile.ErrAlreadyRunning)
	assert.Equal(t, os.Getppid(), readPID(t, path))
}

func TestAcquire_ReacquireBySameProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fuelmon.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())
	require.NoError(t, p.Acquire())
	assert.Equal(t, path, p.Path())
}

func TestRelease_MissingFileIsFine(t *testing.T) {
	p := pidfile.New(filepath.Join(t.TempDir(), "absent.pid"))
	assert.NoError(t, p.Release())
}
