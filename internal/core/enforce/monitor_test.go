package enforce

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusloop/internal/domain"
)

// fakeSource is a hand-rolled engine view for driving the monitor
type fakeSource struct {
	phase    domain.Phase
	selected domain.SessionType
	settings domain.Settings
}

func (f *fakeSource) Phase() domain.Phase          { return f.phase }
func (f *fakeSource) Selected() domain.SessionType { return f.selected }
func (f *fakeSource) Settings() domain.Settings    { return f.settings }

func newFixture() (*fakeSource, *Monitor) {
	settings := domain.DefaultSettings()
	settings.EnableBreakEnforcement = true
	settings.BreakEnforcementDelay = 5
	src := &fakeSource{
		phase:    domain.PhaseIdle,
		selected: domain.TypeShortBreak,
		settings: settings,
	}
	return src, New(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMonitor_DueAfterGracePeriod(t *testing.T) {
	_, m := newFixture()

	gen := m.Arm(domain.TypeShortBreak, 5*time.Minute)
	require.True(t, m.Armed())
	assert.Equal(t, 5*time.Minute, m.Delay())

	assert.True(t, m.Due(gen))
	// A due prompt consumes the arming; redelivery is a no-op.
	assert.False(t, m.Due(gen))
}

func TestMonitor_StaleTokenIgnored(t *testing.T) {
	_, m := newFixture()

	old := m.Arm(domain.TypeShortBreak, 5*time.Minute)
	fresh := m.Arm(domain.TypeLongBreak, 10*time.Minute)

	assert.False(t, m.Due(old), "superseded token must not fire")
	assert.True(t, m.Due(fresh))
}

func TestMonitor_DisarmCancelsPendingCallback(t *testing.T) {
	_, m := newFixture()

	gen := m.Arm(domain.TypeShortBreak, time.Minute)
	m.Disarm()

	assert.False(t, m.Armed())
	assert.False(t, m.Due(gen))
}

func TestMonitor_NotDueWhenBreakRunning(t *testing.T) {
	src, m := newFixture()

	gen := m.Arm(domain.TypeShortBreak, time.Minute)
	src.phase = domain.PhaseRunning

	assert.False(t, m.Due(gen))
}

func TestMonitor_NotDueWhenTypeChangedAway(t *testing.T) {
	src, m := newFixture()

	gen := m.Arm(domain.TypeShortBreak, time.Minute)
	src.selected = domain.TypeWork

	assert.False(t, m.Due(gen))
}

func TestMonitor_NotDueWhenEnforcementDisabled(t *testing.T) {
	src, m := newFixture()

	gen := m.Arm(domain.TypeShortBreak, time.Minute)
	src.settings.EnableBreakEnforcement = false

	assert.False(t, m.Due(gen))
}

func TestMonitor_NeverArmedNeverDue(t *testing.T) {
	_, m := newFixture()
	assert.False(t, m.Due(0))
	assert.False(t, m.Due(1))
}
