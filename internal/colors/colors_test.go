package colors

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*target = w
	defer func() { *target = old }()

	fn()
	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

type recordingLogger struct {
	entries []string
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.entries = append(r.entries, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.entries = append(r.entries, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.entries = append(r.entries, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.entries = append(r.entries, "error:"+msg) }

func TestError(t *testing.T) {
	output := capture(t, &os.Stderr, func() { Error("something went wrong") })

	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "something went wrong")
	assert.Contains(t, output, Red)
}

func TestWarning(t *testing.T) {
	output := capture(t, &os.Stderr, func() { Warning("careful", "now") })

	assert.Contains(t, output, "Warning:")
	assert.Contains(t, output, "careful now")
	assert.Contains(t, output, Yellow)
}

func TestSuccess(t *testing.T) {
	output := capture(t, &os.Stdout, func() { Success("theme saved") })

	assert.Contains(t, output, checkmark)
	assert.Contains(t, output, "theme saved")
	assert.Contains(t, output, Green)
}

func TestInfo(t *testing.T) {
	output := capture(t, &os.Stdout, func() { Info("preference: system") })

	assert.Contains(t, output, "preference: system")
	assert.Contains(t, output, Blue)
}

func TestQuietSuppressesInfoAndSuccess(t *testing.T) {
	SetQuiet(true)
	defer SetQuiet(false)

	out := capture(t, &os.Stdout, func() {
		Info("hidden")
		Success("hidden too")
	})
	assert.Empty(t, out)

	errOut := capture(t, &os.Stderr, func() { Warning("still shown") })
	assert.Contains(t, errOut, "still shown")
}

func TestDebugToggle(t *testing.T) {
	SetDebug(false)
	assert.Empty(t, capture(t, &os.Stderr, func() { Debug("nope") }))

	SetDebug(true)
	defer SetDebug(false)
	output := capture(t, &os.Stderr, func() { Debug("visible") })
	assert.Contains(t, output, "Debug:")
	assert.Contains(t, output, "visible")
}

func TestMessagesMirrorToLogger(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	capture(t, &os.Stderr, func() {
		Error("e")
		Warning("w")
	})
	capture(t, &os.Stdout, func() {
		Info("i")
		Success("s")
	})

	assert.Equal(t, []string{"error:e", "warn:w", "info:i", "info:s"}, rec.entries)
}
