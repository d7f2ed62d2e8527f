package theme

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/csf-dashboard/internal/logging"
	"github.com/cristianoliveira/csf-dashboard/internal/platform"
	"github.com/cristianoliveira/csf-dashboard/internal/preferences"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heldScheme keeps every callback it was given, even after unsubscribe, so a
// test can deliver the late events a real platform may still have in flight.
type heldScheme struct {
	mu        sync.Mutex
	dark      bool
	callbacks []func(bool)
	active    int
}

func (h *heldScheme) Name() string    { return "held" }
func (h *heldScheme) Available() bool { return true }

func (h *heldScheme) QueryDarkPreferred() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dark
}

func (h *heldScheme) Subscribe(fn func(bool)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, fn)
	h.active++
	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			h.active--
			h.mu.Unlock()
		})
	}
}

func (h *heldScheme) fire(i int, dark bool) {
	h.mu.Lock()
	h.dark = dark
	fn := h.callbacks[i]
	h.mu.Unlock()
	fn(dark)
}

// slowScheme blocks QueryDarkPreferred until release is closed, the way a
// terminal background query waits for the terminal's reply.
type slowScheme struct {
	heldScheme
	querying chan struct{}
	release  chan struct{}
}

func newSlowScheme(dark bool) *slowScheme {
	return &slowScheme{
		heldScheme: heldScheme{dark: dark},
		querying:   make(chan struct{}, 8),
		release:    make(chan struct{}),
	}
}

func (s *slowScheme) QueryDarkPreferred() bool {
	s.querying <- struct{}{}
	<-s.release
	return s.heldScheme.QueryDarkPreferred()
}

// blockingStore blocks Set until release is closed.
type blockingStore struct {
	*preferences.MemoryStore
	setting chan struct{}
	release chan struct{}
}

func (b *blockingStore) Set(key, value string) error {
	b.setting <- struct{}{}
	<-b.release
	return b.MemoryStore.Set(key, value)
}

// within fails the test when fn does not return in time.
func within(t *testing.T, d time.Duration, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("%s blocked for more than %s", what, d)
	}
}

type failingStore struct {
	getErr error
	setErr error
	sets   []string
}

func (f *failingStore) Get(string) (string, bool, error) { return "", false, f.getErr }
func (f *failingStore) Set(_ string, v string) error {
	f.sets = append(f.sets, v)
	return f.setErr
}
func (f *failingStore) Close() error { return nil }

func TestInitializeDefaultsToSystem(t *testing.T) {
	scheme := platform.NewManual(true)
	c := NewController(preferences.NewMemoryStore(), scheme)

	assert.Equal(t, PreferenceSystem, c.Initialize())
	assert.Equal(t, ModeDark, c.EffectiveMode())
	assert.Equal(t, 1, scheme.Subscribers())
}

func TestInitializeReadsPersistedPreference(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   Preference
		mode   Mode
		subs   int
	}{
		{name: "light", stored: "light", want: PreferenceLight, mode: ModeLight, subs: 0},
		{name: "dark", stored: "dark", want: PreferenceDark, mode: ModeDark, subs: 0},
		{name: "system", stored: "system", want: PreferenceSystem, mode: ModeDark, subs: 1},
		{name: "corrupt", stored: "\x00purple", want: PreferenceSystem, mode: ModeDark, subs: 1},
		{name: "padded", stored: " Light ", want: PreferenceLight, mode: ModeLight, subs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := preferences.NewMemoryStore()
			require.NoError(t, store.Set(DefaultKey, tt.stored))
			scheme := platform.NewManual(true)
			c := NewController(store, scheme)

			assert.Equal(t, tt.want, c.Initialize())
			assert.Equal(t, tt.mode, c.EffectiveMode())
			assert.Equal(t, tt.subs, scheme.Subscribers())

			raw, _, _ := store.Get(DefaultKey)
			assert.Equal(t, tt.stored, raw, "initialize must not rewrite storage")
		})
	}
}

func TestInitializeStoreErrorIsAbsent(t *testing.T) {
	var buf bytes.Buffer
	store := &failingStore{getErr: errors.New("disk on fire")}
	c := NewController(store, platform.Static(false), WithLogger(logging.NewWriter(&buf, "debug")))

	assert.Equal(t, PreferenceSystem, c.Initialize())
	assert.Equal(t, ModeLight, c.EffectiveMode())
	assert.Contains(t, buf.String(), "disk on fire")
	assert.Empty(t, store.sets)
}

func TestInitializeIsIdempotent(t *testing.T) {
	store := preferences.NewMemoryStore()
	require.NoError(t, store.Set(DefaultKey, "system"))
	scheme := platform.NewManual(false)
	c := NewController(store, scheme)

	first := c.Initialize()
	second := c.Initialize()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, scheme.Subscribers())
}

func TestSetThemeFixedModesIgnorePlatform(t *testing.T) {
	scheme := platform.NewManual(true)
	c := NewController(preferences.NewMemoryStore(), scheme)
	c.Initialize()

	require.NoError(t, c.SetTheme(PreferenceLight))
	assert.Equal(t, ModeLight, c.EffectiveMode())
	require.NoError(t, c.SetTheme(PreferenceDark))
	assert.Equal(t, ModeDark, c.EffectiveMode())

	scheme.Set(false)
	assert.Equal(t, ModeDark, c.EffectiveMode())
	assert.Equal(t, 0, scheme.Subscribers())
}

func TestSetThemeSystemTracksPlatform(t *testing.T) {
	scheme := platform.NewManual(false)
	c := NewController(preferences.NewMemoryStore(), scheme)
	require.NoError(t, c.SetTheme(PreferenceDark))

	scheme.Set(true)
	require.NoError(t, c.SetTheme(PreferenceSystem))
	assert.Equal(t, ModeDark, c.EffectiveMode())

	scheme.Set(false)
	assert.Equal(t, ModeLight, c.EffectiveMode())
	scheme.Set(true)
	assert.Equal(t, ModeDark, c.EffectiveMode())

	require.NoError(t, c.SetTheme(PreferenceLight))
	assert.Equal(t, ModeLight, c.EffectiveMode())
	scheme.Set(false)
	scheme.Set(true)
	assert.Equal(t, ModeLight, c.EffectiveMode())
	assert.Equal(t, 0, scheme.Subscribers())
}

func TestSetThemeSystemTwiceKeepsOneSubscription(t *testing.T) {
	scheme := platform.NewManual(false)
	c := NewController(preferences.NewMemoryStore(), scheme)

	require.NoError(t, c.SetTheme(PreferenceSystem))
	require.NoError(t, c.SetTheme(PreferenceSystem))
	assert.Equal(t, 1, scheme.Subscribers())

	scheme.Set(true)
	assert.Equal(t, ModeDark, c.EffectiveMode())
}

func TestLateCallbacksAreDropped(t *testing.T) {
	scheme := &heldScheme{}
	c := NewController(preferences.NewMemoryStore(), scheme)

	require.NoError(t, c.SetTheme(PreferenceSystem)) // callback 0
	require.NoError(t, c.SetTheme(PreferenceLight))

	scheme.fire(0, true)
	assert.Equal(t, ModeLight, c.EffectiveMode(), "callback after leaving system")

	require.NoError(t, c.SetTheme(PreferenceSystem)) // callback 1
	assert.Equal(t, ModeDark, c.EffectiveMode())

	scheme.fire(0, false)
	assert.Equal(t, ModeDark, c.EffectiveMode(), "callback from an earlier subscription")

	scheme.fire(1, false)
	assert.Equal(t, ModeLight, c.EffectiveMode())
	assert.Equal(t, 1, scheme.active)
}

func TestSetThemeWritesThrough(t *testing.T) {
	store := preferences.NewMemoryStore()
	c := NewController(store, platform.Static(false), WithKey("ui.theme"))

	for _, p := range Preferences() {
		require.NoError(t, c.SetTheme(p))
		raw, ok, err := store.Get("ui.theme")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, string(p), raw)
	}

	reloaded := NewController(store, platform.Static(false), WithKey("ui.theme"))
	assert.Equal(t, PreferenceSystem, reloaded.Initialize())
}

func TestSetThemeRejectsInvalid(t *testing.T) {
	store := &failingStore{}
	c := NewController(store, platform.Static(true))
	require.NoError(t, c.SetTheme(PreferenceDark))

	err := c.SetTheme(Preference("sepia"))
	assert.ErrorIs(t, err, ErrInvalidPreference)
	assert.Equal(t, PreferenceDark, c.Preference())
	assert.Equal(t, []string{"dark"}, store.sets)
}

func TestSetThemeStoreFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	store := &failingStore{setErr: errors.New("read-only filesystem")}
	c := NewController(store, platform.Static(false), WithLogger(logging.NewWriter(&buf, "info")))

	require.NoError(t, c.SetTheme(PreferenceDark))
	assert.Equal(t, ModeDark, c.EffectiveMode())
	assert.Contains(t, buf.String(), "read-only filesystem")
	assert.Contains(t, buf.String(), `"slot":"theme"`)
}

func TestUnavailableSchemeActsAsLight(t *testing.T) {
	scheme := platform.NewManual(true)
	scheme.SetAvailable(false)
	c := NewController(preferences.NewMemoryStore(), scheme)

	c.Initialize()
	assert.Equal(t, ModeLight, c.EffectiveMode())
	assert.Equal(t, 0, scheme.Subscribers())
	assert.Equal(t, "static-light", c.SchemeName())

	scheme.SetAvailable(true)
	require.NoError(t, c.SetTheme(PreferenceDark))
	require.NoError(t, c.SetTheme(PreferenceSystem))
	assert.Equal(t, ModeDark, c.EffectiveMode())
	assert.Equal(t, "manual", c.SchemeName())
}

func TestNilDependencies(t *testing.T) {
	c := NewController(nil, nil)
	assert.Equal(t, PreferenceSystem, c.Initialize())
	assert.Equal(t, ModeLight, c.EffectiveMode())
	require.NoError(t, c.SetTheme(PreferenceDark))
	assert.Equal(t, State{Preference: PreferenceDark, Mode: ModeDark}, c.State())
}

func TestSubscribeReceivesChanges(t *testing.T) {
	scheme := platform.NewManual(false)
	c := NewController(preferences.NewMemoryStore(), scheme)
	var got []State
	unsubscribe := c.Subscribe(func(s State) { got = append(got, s) })

	c.Initialize()
	require.NoError(t, c.SetTheme(PreferenceDark))
	require.NoError(t, c.SetTheme(PreferenceSystem))
	scheme.Set(true)
	scheme.Set(true)

	assert.Equal(t, []State{
		{Preference: PreferenceSystem, Mode: ModeLight},
		{Preference: PreferenceDark, Mode: ModeDark},
		{Preference: PreferenceSystem, Mode: ModeLight},
		{Preference: PreferenceSystem, Mode: ModeDark},
	}, got)

	unsubscribe()
	unsubscribe()
	require.NoError(t, c.SetTheme(PreferenceLight))
	assert.Len(t, got, 4)
}

func TestObserverMayCallBack(t *testing.T) {
	c := NewController(preferences.NewMemoryStore(), platform.Static(false))
	var modes []Mode
	c.Subscribe(func(State) { modes = append(modes, c.EffectiveMode()) })

	require.NoError(t, c.SetTheme(PreferenceDark))
	assert.Equal(t, []Mode{ModeDark}, modes)
}

func TestClose(t *testing.T) {
	scheme := platform.NewManual(false)
	c := NewController(preferences.NewMemoryStore(), scheme)
	c.Initialize()
	notified := 0
	c.Subscribe(func(State) { notified++ })

	c.Close()
	c.Close()
	assert.Equal(t, 0, scheme.Subscribers())
	assert.ErrorIs(t, c.SetTheme(PreferenceDark), ErrClosed)

	scheme.Set(true)
	assert.Equal(t, ModeLight, c.EffectiveMode())
	assert.Equal(t, 0, notified)
}

func TestConcurrentPlatformEventsAndSetTheme(t *testing.T) {
	scheme := platform.NewManual(false)
	c := NewController(preferences.NewMemoryStore(), scheme)
	c.Initialize()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			scheme.Set(i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = c.SetTheme(Preferences()[i%3])
		}
	}()
	wg.Wait()

	require.NoError(t, c.SetTheme(PreferenceLight))
	scheme.Set(!scheme.QueryDarkPreferred())
	assert.Equal(t, ModeLight, c.EffectiveMode())
	assert.Equal(t, 0, scheme.Subscribers())
}

func TestSlowSchemeDoesNotBlockReads(t *testing.T) {
	scheme := newSlowScheme(true)
	c := NewController(preferences.NewMemoryStore(), scheme)
	require.NoError(t, c.SetTheme(PreferenceLight))

	setDone := make(chan error, 1)
	go func() { setDone <- c.SetTheme(PreferenceSystem) }()
	<-scheme.querying

	within(t, time.Second, "reading state during a platform query", func() {
		assert.Equal(t, PreferenceSystem, c.Preference())
		assert.Equal(t, ModeLight, c.EffectiveMode())
		_ = c.State()
		_ = c.SchemeName()
	})

	close(scheme.release)
	require.NoError(t, <-setDone)
	assert.Equal(t, ModeDark, c.EffectiveMode())
	assert.Equal(t, 1, scheme.active)
}

func TestSlowStoreDoesNotBlockReads(t *testing.T) {
	store := &blockingStore{
		MemoryStore: preferences.NewMemoryStore(),
		setting:     make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
	c := NewController(store, platform.Static(false))

	setDone := make(chan error, 1)
	go func() { setDone <- c.SetTheme(PreferenceDark) }()
	<-store.setting

	within(t, time.Second, "reading state during a store write", func() {
		assert.Equal(t, State{Preference: PreferenceDark, Mode: ModeDark}, c.State())
	})

	close(store.release)
	require.NoError(t, <-setDone)
	raw, ok, err := store.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", raw)
}

func TestSupersededSubscriptionIsReleased(t *testing.T) {
	scheme := newSlowScheme(true)
	c := NewController(preferences.NewMemoryStore(), scheme)
	require.NoError(t, c.SetTheme(PreferenceLight))

	setDone := make(chan error, 1)
	go func() { setDone <- c.SetTheme(PreferenceSystem) }()
	<-scheme.querying

	require.NoError(t, c.SetTheme(PreferenceDark))
	scheme.fire(0, false)
	close(scheme.release)
	require.NoError(t, <-setDone)

	assert.Equal(t, State{Preference: PreferenceDark, Mode: ModeDark}, c.State())
	assert.Equal(t, 0, scheme.active, "the subscription made for the superseded call is dropped")
}

func TestPlatformEventDuringQueryWins(t *testing.T) {
	scheme := newSlowScheme(false)
	c := NewController(preferences.NewMemoryStore(), scheme)
	require.NoError(t, c.SetTheme(PreferenceLight))

	setDone := make(chan error, 1)
	go func() { setDone <- c.SetTheme(PreferenceSystem) }()
	<-scheme.querying

	// The query started before this change and reports the older value.
	scheme.callbacks[0](true)
	close(scheme.release)
	require.NoError(t, <-setDone)

	assert.Equal(t, ModeDark, c.EffectiveMode())
}

func TestLoggerFieldsAreNotDuplicated(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, "debug").With("component", "theme")
	c := NewController(preferences.NewMemoryStore(), platform.Static(false), WithLogger(logger))

	require.NoError(t, c.SetTheme(PreferenceDark))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, 1, bytes.Count(line, []byte(`"component"`)), string(line))
	}
}
