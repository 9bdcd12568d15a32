package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"restie/internal/config"
	"restie/internal/core/scheduler"
	"restie/internal/core/service"
	"restie/internal/history"
	"restie/internal/logging"
	"restie/internal/platform"
	"restie/internal/storage"
	"restie/internal/ui/overlay"
	"restie/internal/ui/preferences"
	"restie/internal/ui/tray"
	"restie/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

func main() {
	configDir, err := platform.ConfigDir()
	if err != nil {
		slog.Error("resolve config dir", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("RESTIE_CONFIG_FILE"), configDir)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(cfg.App.Name)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if activateErr := platform.ActivateRunning(cfg.App.Name); activateErr != nil {
				logger.Warn("activate running instance", "error", activateErr)
			}
		}
		logger.Info("single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	store := storage.NewSettingsStore(cfg.Storage.SettingsPath)
	if err := store.Load(); err != nil {
		logger.Warn("load settings, using defaults", "path", store.Path(), "error", err)
	}

	breakScheduler := scheduler.New(store, scheduler.Config{
		TickInterval: cfg.Scheduler.TickInterval,
		Logger:       logger,
	})
	svc := service.New(store, breakScheduler, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.History.Enabled {
		db, err := openHistory(cfg.History.Path)
		if err != nil {
			logger.Warn("break history disabled", "error", err)
		} else {
			defer func() {
				_ = db.Close()
			}()
			recorder := history.NewRecorder(history.NewRepository(db), logger)
			go recorder.Run(ctx, breakScheduler.Subscribe(32))
		}
	}

	fyneApp := app.NewWithID(cfg.App.ID)
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(cfg.App.Name)
	trayWindow.SetContent(widget.NewLabel("Restie is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	overlayWindow := overlay.New(fyneApp, store, overlay.Callbacks{
		OnStart:    func() { svc.StartBreak() },
		OnSkip:     func() { svc.SkipBreak() },
		OnPostpone: func() { svc.PostponeBreak() },
		OnComplete: func() { svc.CompleteBreak() },
	})
	breakScheduler.SetNotifier(overlayWindow)

	prefsWindow := preferences.New(fyneApp, store.Settings(), svc.UpdateSettings)
	go guard.Serve(func() {
		fyne.Do(prefsWindow.Show)
	})

	var pauseTimer *time.Timer
	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnTogglePause: func() {
			svc.TogglePause()
		},
		OnSkipBreak: func() {
			svc.SkipBreak()
		},
		OnPostpone: func() {
			overlayWindow.Hide()
			svc.PostponeBreak()
		},
		OnPauseFor: func(duration time.Duration) {
			if pauseTimer != nil {
				pauseTimer.Stop()
			}
			svc.PauseBreaks()
			pauseTimer = time.AfterFunc(duration, func() {
				svc.ResumeBreaks()
			})
		},
		OnBreakNow: func() {
			svc.TakeBreakNow()
		},
		OnQuit: func() {
			breakScheduler.Stop()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.ActiveIcon())
	trayManager.SetSchedule(svc.SchedulerState(), time.Now())

	events := breakScheduler.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleEvent(event, svc, desktopApp, overlayWindow, trayManager)
			})
		}
	}()

	breakScheduler.Start(ctx)
	fyneApp.Run()
	breakScheduler.Stop()
}

func openHistory(path string) (*history.DB, error) {
	db, err := history.Connect(path)
	if err != nil {
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func handleEvent(event scheduler.Event, svc *service.Service, desktopApp desktop.App, overlayWindow *overlay.Window, trayManager *tray.Manager) {
	switch event.Type {
	case scheduler.EventProgress, scheduler.EventScheduled, scheduler.EventBreakPostponed:
		trayManager.SetSchedule(svc.SchedulerState(), time.Now())
	case scheduler.EventBreakStarted:
		trayManager.SetInBreak(true)
		desktopApp.SetSystemTrayIcon(resources.BreakIcon())
	case scheduler.EventBreakSkipped, scheduler.EventBreakCompleted:
		overlayWindow.Hide()
		trayManager.SetInBreak(false)
		desktopApp.SetSystemTrayIcon(trayIcon(event.State.IsPaused))
	case scheduler.EventPaused, scheduler.EventResumed:
		trayManager.SetPaused(event.State.IsPaused)
		trayManager.SetSchedule(svc.SchedulerState(), time.Now())
		desktopApp.SetSystemTrayIcon(trayIcon(event.State.IsPaused))
	}
}

func trayIcon(paused bool) fyne.Resource {
	if paused {
		return resources.PausedIcon()
	}
	return resources.ActiveIcon()
}
