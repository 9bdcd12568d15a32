package resources

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIcon is the application and window icon.
func AppIcon() fyne.Resource {
	return theme.VisibilityIcon()
}

// ActiveIcon is shown in the tray while breaks are scheduled.
func ActiveIcon() fyne.Resource {
	return theme.VisibilityIcon()
}

// PausedIcon is shown in the tray while breaks are paused.
func PausedIcon() fyne.Resource {
	return theme.VisibilityOffIcon()
}

// BreakIcon is shown in the tray while a break is on screen.
func BreakIcon() fyne.Resource {
	return theme.MediaPauseIcon()
}
