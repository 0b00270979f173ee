// Package main provides the entry point for the Homewall application.
package main

import (
	"log"
	"os"
	"time"

	"homewall/internal/app"
	"homewall/internal/media"
	"homewall/internal/store"
	"homewall/internal/version"
	"homewall/ui/mainwindow"
	"homewall/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "Homewall"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("homewall")

	lib, err := media.NewLibrary(media.DefaultDir())
	if err != nil {
		log.Fatalf("media library: %v", err)
	}

	// An explicit collection file on the command line overrides the default.
	blobPath := store.DefaultPath()
	if len(os.Args) > 1 {
		blobPath = os.Args[1]
	}

	appState := app.NewState(store.New(blobPath), lib)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs, lib)

	if err := appState.Load(); err != nil {
		log.Printf("Failed to load wall collection: %v", err)
		dialog.ShowError(err, win.Window)
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePreferences()
	})
	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
