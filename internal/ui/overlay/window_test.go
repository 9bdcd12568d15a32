package overlay

import (
	"testing"
	"time"

	"restie/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSettings struct {
	settings model.BreakSettings
}

func (source staticSettings) Settings() model.BreakSettings {
	return source.settings
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "00:20", FormatCountdown(20*time.Second))
	assert.Equal(t, "00:20", FormatCountdown(19*time.Second+100*time.Millisecond))
	assert.Equal(t, "05:00", FormatCountdown(5*time.Minute))
	assert.Equal(t, "00:00", FormatCountdown(-time.Second))
}

func TestPresentBreakIsIdempotent(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	starts := 0
	overlay := New(app, staticSettings{settings: model.DefaultSettings()}, Callbacks{
		OnStart: func() { starts++ },
	})
	defer overlay.Hide()

	require.NoError(t, overlay.PresentBreak(model.BreakTypeMicrobreak, false))
	require.NoError(t, overlay.PresentBreak(model.BreakTypeMicrobreak, false))

	assert.Equal(t, 1, starts)
	assert.True(t, overlay.Visible())
	assert.Equal(t, "Microbreak", overlay.titleLabel.Text)
	assert.Equal(t, "00:20", overlay.timerLabel.Text)
}

func TestHideEndsSessionAndAllowsFreshPresent(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	starts := 0
	overlay := New(app, staticSettings{settings: model.DefaultSettings()}, Callbacks{
		OnStart: func() { starts++ },
	})

	require.NoError(t, overlay.PresentBreak(model.BreakTypeMicrobreak, false))
	overlay.Hide()
	assert.False(t, overlay.Visible())
	overlay.mu.Lock()
	assert.Nil(t, overlay.cancelCtx)
	overlay.mu.Unlock()

	require.NoError(t, overlay.PresentBreak(model.BreakTypeLongbreak, false))
	defer overlay.Hide()
	assert.Equal(t, 2, starts)
	assert.True(t, overlay.Visible())
	assert.Equal(t, "Long break", overlay.titleLabel.Text)
	assert.Equal(t, "05:00", overlay.timerLabel.Text)
}

func TestPresentBreakRejectsMissingType(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	starts := 0
	overlay := New(app, staticSettings{settings: model.DefaultSettings()}, Callbacks{
		OnStart: func() { starts++ },
	})

	assert.Error(t, overlay.PresentBreak(model.BreakTypeNone, false))
	assert.False(t, overlay.Visible())
	assert.Zero(t, starts)
}

func TestSkipHidesAndReportsOnce(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	skips := 0
	overlay := New(app, staticSettings{settings: model.DefaultSettings()}, Callbacks{
		OnSkip: func() { skips++ },
	})

	require.NoError(t, overlay.PresentBreak(model.BreakTypeMicrobreak, true))
	overlay.handleSkip()

	assert.Equal(t, 1, skips)
	assert.False(t, overlay.Visible())
}
