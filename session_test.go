package tuidrive_test

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuidrive/tuidrive"
)

var simBinary string

func TestMain(m *testing.M) {
	// Build the fixture TUI binary.
	dir, err := os.MkdirTemp("", "tuidrive-squadsim-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	binPath := filepath.Join(dir, "squadsim")
	cmd := exec.Command("go", "build", "-o", binPath, "./internal/squadsim")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build squadsim: %v\n", err)
		os.Exit(1)
	}

	simBinary = binPath
	os.Exit(m.Run())
}

func startSim(t *testing.T) *tuidrive.Session {
	t.Helper()

	sess := tuidrive.New(tuidrive.WithSize(120, 30))
	require.NoError(t, sess.Start(simBinary))
	t.Cleanup(sess.Stop)

	// An undrawn grid is also stable, so wait for the first paint before
	// waiting for the UI to settle.
	require.True(t, sess.WaitForMatch(tuidrive.Text("Instances"), 5*time.Second),
		"fixture UI never painted")
	require.True(t, sess.WaitForStable(5*time.Second, 300*time.Millisecond),
		"fixture UI never settled")
	return sess
}

func TestStartUnknownCommand(t *testing.T) {
	sess := tuidrive.New()

	err := sess.Start("tuidrive-no-such-binary")
	require.Error(t, err)

	var spawnErr *tuidrive.SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, "tuidrive-no-such-binary", spawnErr.Command)
	assert.False(t, sess.Running())
}

func TestSendWithoutSession(t *testing.T) {
	sess := tuidrive.New()

	assert.ErrorIs(t, sess.Send(tuidrive.Down), tuidrive.ErrNotRunning)
	assert.ErrorIs(t, sess.SendText("hello"), tuidrive.ErrNotRunning)
}

func TestStartTwice(t *testing.T) {
	sess := startSim(t)
	require.Error(t, sess.Start(simBinary))
}

func TestCaptureState(t *testing.T) {
	sess := startSim(t)

	st := sess.CaptureState()
	require.Len(t, st.Instances, 3)

	first := st.Instances[0]
	assert.Equal(t, "agent-one", first.Name)
	assert.Equal(t, tuidrive.StatusReady, first.Status)
	assert.Equal(t, "alpha", first.Project)
	assert.Equal(t, "main", first.Branch)
	assert.Equal(t, tuidrive.GitStats{Added: 5, Removed: 3}, first.Stats)

	assert.Equal(t, tuidrive.StatusPaused, st.Instances[1].Status)
	assert.Equal(t, tuidrive.StatusStopped, st.Instances[2].Status)

	assert.Equal(t, 0, st.Selected)
	assert.Equal(t, tuidrive.TabPreview, st.Tab)
	assert.Contains(t, st.MenuItems, "q quit")
	assert.Empty(t, st.ErrorMessage)
}

func TestCaptureStateIdempotent(t *testing.T) {
	sess := startSim(t)

	first := sess.CaptureState()
	second := sess.CaptureState()
	assert.Equal(t, first, second)
}

func TestNavigationMovesSelection(t *testing.T) {
	sess := startSim(t)

	updated, err := sess.SendAndWait(tuidrive.Down)
	require.NoError(t, err)
	require.True(t, updated, "screen did not update after key press")

	assert.Equal(t, 1, sess.CaptureState().Selected)
}

func TestTabSwitch(t *testing.T) {
	sess := startSim(t)

	require.NoError(t, sess.Send(tuidrive.Tab))
	require.True(t, sess.WaitForMatch(sess.Parser().TabIs(tuidrive.TabDiff), 3*time.Second))

	st := sess.CaptureState()
	assert.Equal(t, tuidrive.TabDiff, st.Tab)
	assert.Contains(t, st.TabContent, "Diff: content line 1")
}

func TestErrorBanner(t *testing.T) {
	sess := startSim(t)

	// "e" is an application hotkey, delivered via literal pass-through.
	require.NoError(t, sess.Send(tuidrive.Key("e")))
	require.True(t, sess.WaitForMatch(tuidrive.Text("Error: simulated failure"), 3*time.Second))

	assert.Equal(t, "Error: simulated failure", sess.CaptureState().ErrorMessage)
}

func TestWaitForUpdateTimesOutOnIdleScreen(t *testing.T) {
	sess := startSim(t)

	// No input sent, nothing redraws.
	assert.False(t, sess.WaitForUpdate(500*time.Millisecond))
}

func TestStopIdempotent(t *testing.T) {
	sess := startSim(t)

	sess.Stop()
	assert.False(t, sess.Running())

	// Stopping again is a no-op.
	sess.Stop()
	assert.False(t, sess.Running())
}

func TestStopEscalatesOnStubbornProcess(t *testing.T) {
	// -stubborn makes the fixture ignore quit keys and swallow SIGTERM, so
	// Stop has to walk the whole ladder and finish the process with SIGKILL.
	sess := tuidrive.New(
		tuidrive.WithSize(120, 30),
		tuidrive.WithStopPhaseTimeout(200*time.Millisecond),
	)
	require.NoError(t, sess.Start(simBinary, "-stubborn"))
	t.Cleanup(sess.Stop)

	require.True(t, sess.WaitForMatch(tuidrive.Text("Instances"), 5*time.Second),
		"fixture UI never painted")

	start := time.Now()
	sess.Stop()
	elapsed := time.Since(start)

	assert.False(t, sess.Running())
	// Two grace periods burn on the quit key and SIGTERM phases; SIGKILL
	// then takes the process down almost immediately.
	assert.Less(t, elapsed, 3*time.Second, "stop took %v", elapsed)
}

func TestStopAfterProcessExit(t *testing.T) {
	sess := startSim(t)

	// Quit the application out from under the session.
	require.NoError(t, sess.Send(tuidrive.Key("q")))
	require.Eventually(t, func() bool { return !sess.Running() },
		3*time.Second, 50*time.Millisecond)

	// Stop after external exit must not block or panic.
	sess.Stop()
	assert.False(t, sess.Running())
}

func TestInstanceLifecycleKeys(t *testing.T) {
	sess := startSim(t)

	// Add an instance.
	updated, err := sess.SendAndWait(tuidrive.Key("n"))
	require.NoError(t, err)
	require.True(t, updated)
	require.Len(t, sess.CaptureState().Instances, 4)

	// Kill the selected instance.
	updated, err = sess.SendAndWait(tuidrive.Key("D"))
	require.NoError(t, err)
	require.True(t, updated)
	assert.Len(t, sess.CaptureState().Instances, 3)
}

func TestScreenSnapshotOfFixture(t *testing.T) {
	sess := startSim(t)

	scr := sess.Screen()
	assert.True(t, scr.Contains("Instances"))

	ok, _ := tuidrive.All(
		tuidrive.Text("agent-one"),
		tuidrive.Not(tuidrive.Text("Error")),
	)(scr)
	assert.True(t, ok)
}

func TestSendAfterStop(t *testing.T) {
	sess := startSim(t)
	sess.Stop()

	err := sess.Send(tuidrive.Down)
	assert.True(t, errors.Is(err, tuidrive.ErrNotRunning))
}
