package overlay

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"restie/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	windowedWidth  = float32(800)
	windowedHeight = float32(600)
)

// SettingsSource supplies break lengths for the countdown.
type SettingsSource interface {
	Settings() model.BreakSettings
}

// Callbacks defines break window action handlers.
type Callbacks struct {
	OnStart    func()
	OnSkip     func()
	OnPostpone func()
	OnComplete func()
}

// Window is the break surface. It implements the scheduler's Notifier.
type Window struct {
	app       fyne.App
	window    fyne.Window
	settings  SettingsSource
	callbacks Callbacks

	titleLabel   *canvas.Text
	messageLabel *widget.Label
	timerLabel   *canvas.Text
	progress     *widget.ProgressBar

	mu        sync.Mutex
	visible   bool
	cancelCtx context.CancelFunc
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the break window, hidden.
func New(app fyne.App, settings SettingsSource, callbacks Callbacks) *Window {
	window := app.NewWindow("Restie - Break Time")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 16, G: 24, B: 32, A: 235})

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 28

	messageLabel := widget.NewLabel("")
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.Wrapping = fyne.TextWrapWord

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 40

	progress := widget.NewProgressBar()

	overlay := &Window{
		app:          app,
		window:       window,
		settings:     settings,
		callbacks:    callbacks,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		timerLabel:   timerLabel,
		progress:     progress,
	}

	skipButton := widget.NewButton("Skip", overlay.handleSkip)
	postponeButton := widget.NewButton("Postpone 5 min", overlay.handlePostpone)
	doneButton := widget.NewButton("Done", overlay.handleComplete)
	doneButton.Importance = widget.HighImportance

	buttons := container.NewHBox(layout.NewSpacer(), skipButton, postponeButton, doneButton, layout.NewSpacer())
	content := container.NewVBox(
		layout.NewSpacer(),
		titleLabel,
		messageLabel,
		timerLabel,
		container.NewPadded(progress),
		buttons,
		layout.NewSpacer(),
	)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.SetCloseIntercept(overlay.handleSkip)

	return overlay
}

// PresentBreak shows the break surface, or focuses it when already visible.
func (overlay *Window) PresentBreak(breakType model.BreakType, fullscreen bool) error {
	if breakType == model.BreakTypeNone {
		return fmt.Errorf("present break: no break type")
	}

	overlay.mu.Lock()
	if overlay.visible {
		overlay.mu.Unlock()
		fyne.Do(func() {
			overlay.window.Show()
			overlay.window.RequestFocus()
		})
		return nil
	}
	overlay.visible = true
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel
	overlay.mu.Unlock()

	total := overlay.settings.Settings().BreakDuration(breakType)
	fyne.Do(func() {
		overlay.titleLabel.Text = breakType.Label()
		overlay.titleLabel.Refresh()
		overlay.messageLabel.SetText(breakMessage(breakType))
		overlay.setRemainingUnsafe(total, total)
		overlay.applyWindowMode(fullscreen)
		overlay.window.Show()
		overlay.window.RequestFocus()
	})

	if overlay.callbacks.OnStart != nil {
		overlay.callbacks.OnStart()
	}
	go overlay.countdown(ctx, total)
	return nil
}

// Hide closes the break surface and stops its countdown.
func (overlay *Window) Hide() {
	if !overlay.stop() {
		return
	}
	fyne.Do(func() {
		overlay.window.SetFullScreen(false)
		overlay.window.Hide()
	})
}

// Visible reports whether a break is on screen.
func (overlay *Window) Visible() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.visible
}

func (overlay *Window) countdown(ctx context.Context, total time.Duration) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	deadline := time.Now().Add(total)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			remaining := deadline.Sub(now)
			if remaining <= 0 {
				overlay.handleComplete()
				return
			}
			fyne.Do(func() {
				overlay.setRemainingUnsafe(remaining, total)
			})
		}
	}
}

func (overlay *Window) handleSkip() {
	overlay.Hide()
	if overlay.callbacks.OnSkip != nil {
		overlay.callbacks.OnSkip()
	}
}

func (overlay *Window) handlePostpone() {
	overlay.Hide()
	if overlay.callbacks.OnPostpone != nil {
		overlay.callbacks.OnPostpone()
	}
}

func (overlay *Window) handleComplete() {
	overlay.Hide()
	if overlay.callbacks.OnComplete != nil {
		overlay.callbacks.OnComplete()
	}
}

// stop cancels the countdown and reports whether the window was visible.
func (overlay *Window) stop() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
	wasVisible := overlay.visible
	overlay.visible = false
	return wasVisible
}

func (overlay *Window) setRemainingUnsafe(remaining, total time.Duration) {
	overlay.timerLabel.Text = FormatCountdown(remaining)
	overlay.timerLabel.Refresh()
	if total > 0 {
		overlay.progress.SetValue(1 - float64(remaining)/float64(total))
	}
}

func (overlay *Window) applyWindowMode(fullscreen bool) {
	if fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.window.Resize(fyne.NewSize(windowedWidth, windowedHeight))
	overlay.window.CenterOnScreen()
}

// FormatCountdown renders a duration as MM:SS.
func FormatCountdown(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int((value + time.Second - 1) / time.Second)
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func breakMessage(breakType model.BreakType) string {
	if breakType == model.BreakTypeLongbreak {
		return "Stand up, stretch and step away from the screen."
	}
	return "Look at something far away and relax your eyes."
}
