// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"homewall/internal/app"
	"homewall/internal/detect"
	"homewall/internal/editor"
	"homewall/internal/media"
	"homewall/internal/ocr"
	"homewall/internal/photo"
	"homewall/internal/version"
	"homewall/internal/wall"
	"homewall/pkg/colorutil"
	"homewall/pkg/geometry"
	"homewall/ui/canvas"
	"homewall/ui/panels"
	"homewall/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs
	lib   *media.Library

	canvas    *canvas.WallCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	sizeSlider  *widget.Slider
	colorSelect *widget.Select

	currentWall  *wall.Wall
	currentPhoto *photo.Photo
	currentClimb *wall.Climb
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, lib *media.Library) *MainWindow {
	win := fyneApp.NewWindow("Homewall")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		lib:    lib,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	win.Resize(fyne.NewSize(1100, 750))
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewWallCanvas()
	mw.canvas.OnHoldsChanged(func() {
		if mw.currentClimb != nil {
			mw.state.HoldsChanged(mw.currentClimb)
		}
	})

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.Window)
	mw.sidePanel.Climbs.OnOpenClimb(mw.openClimb)

	mw.statusBar = widget.NewLabel(fmt.Sprintf("Homewall v%s", version.Version))

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		container.NewBorder(mw.createToolbar(), nil, nil, nil, mw.canvas),
	)
	split.SetOffset(0.25)

	mw.SetContent(container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	))
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() { mw.adjustZoom(1 / 1.25) })
	zoomInBtn := widget.NewButton("+", func() { mw.adjustZoom(1.25) })
	resetBtn := widget.NewButton("1:1", func() { mw.setZoom(1) })

	colors := []string{
		string(colorutil.HoldRed),
		string(colorutil.HoldGreen),
		string(colorutil.HoldBlue),
		string(colorutil.HoldPurple),
	}
	mw.colorSelect = widget.NewSelect(colors, func(s string) {
		mw.prefs.SetString(prefs.KeyDefaultHoldColor, s)
		if ed := mw.canvas.Editor(); ed != nil {
			ed.SetDefaultColor(colorutil.HoldColor(s))
		}
	})
	mw.colorSelect.SetSelected(mw.prefs.String(prefs.KeyDefaultHoldColor, string(colorutil.HoldRed)))

	// The slider doubles as the retroactive size channel: moving it resizes
	// the hold most recently placed or selected, not just future holds.
	mw.sizeSlider = widget.NewSlider(12, 120)
	mw.sizeSlider.Value = mw.prefs.Float(prefs.KeyDefaultHoldSize, editor.DefaultHoldSize)
	mw.sizeSlider.OnChanged = func(v float64) {
		mw.prefs.SetFloat(prefs.KeyDefaultHoldSize, v)
		ed := mw.canvas.Editor()
		if ed == nil {
			return
		}
		ed.SetDefaultSize(v)
		if err := ed.ResizeActive(v); err != nil {
			log.Printf("resize hold: %v", err)
			return
		}
		if ed.ActiveIndex() >= 0 && mw.currentClimb != nil {
			mw.state.HoldsChanged(mw.currentClimb)
		}
		mw.canvas.Refresh()
	}

	slider := container.NewGridWrap(fyne.NewSize(160, 36), mw.sizeSlider)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		resetBtn,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		mw.colorSelect,
		widget.NewLabel("Size:"),
		slider,
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Wall Photo...", mw.onImportWall),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Beta Video...", mw.onAddBetaVideo),
	)
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Detect Holds", mw.onDetectHolds),
		fyne.NewMenuItem("Scan Grade Labels", mw.onScanLabels),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventCollectionLoaded, func(interface{}) {
		mw.restoreLastWall()
	})
	mw.state.On(app.EventCollectionSaved, func(interface{}) {
		mw.statusBar.SetText("Saved")
	})
	mw.state.On(app.EventHoldsChanged, func(data interface{}) {
		if c, ok := data.(*wall.Climb); ok {
			mw.statusBar.SetText(fmt.Sprintf("%s: %d holds", c.Name, len(c.Holds)))
		}
	})
}

// restoreLastWall reopens the wall from the previous run, or the first wall.
func (mw *MainWindow) restoreLastWall() {
	c := mw.state.Collection()
	w := c.WallByID(mw.prefs.String(prefs.KeyLastWallID, ""))
	if w == nil && len(c.Walls) > 0 {
		w = c.Walls[0]
	}
	if w != nil {
		mw.setWall(w)
	}
}

func (mw *MainWindow) setWall(w *wall.Wall) {
	ph, err := photo.Decode(w.Image)
	if err != nil {
		dialog.ShowError(fmt.Errorf("wall photo: %w", err), mw.Window)
		return
	}
	mw.currentWall = w
	mw.currentPhoto = ph
	mw.currentClimb = nil
	mw.canvas.SetClimb(nil, nil)
	mw.sidePanel.SetWall(w)
	mw.prefs.SetString(prefs.KeyLastWallID, w.ID)
	mw.statusBar.SetText(fmt.Sprintf("Wall: %s (%d climbs)", w.Name, len(w.Climbs)))
}

// openClimb attaches the canvas to a climb. Established climbs still render;
// the entity layer rejects any hold mutation they would produce.
func (mw *MainWindow) openClimb(c *wall.Climb) {
	if mw.currentPhoto == nil {
		return
	}
	mw.currentClimb = c

	// The raster keeps the editor's container size current on every draw,
	// so a zero size before first layout resolves itself immediately.
	viewSize := geometry.Size{
		Width:  float64(mw.canvas.Size().Width),
		Height: float64(mw.canvas.Size().Height),
	}
	if !viewSize.IsPositive() {
		viewSize = geometry.Size{Width: 800, Height: 600}
	}
	ed := editor.New(c, mw.currentPhoto.Size(), viewSize)
	ed.SetZoomMax(mw.prefs.Float(prefs.KeyZoomMax, editor.DefaultZoomMax))
	ed.SetDefaultColor(colorutil.HoldColor(mw.colorSelect.Selected))
	ed.SetDefaultSize(mw.sizeSlider.Value)

	mw.canvas.SetClimb(mw.currentPhoto.Image, ed)
	mw.statusBar.SetText(fmt.Sprintf("%s: %d holds", c.Name, len(c.Holds)))
}

func (mw *MainWindow) adjustZoom(factor float64) {
	if ed := mw.canvas.Editor(); ed != nil {
		ed.SetScale(ed.Scale() * factor)
		mw.canvas.Refresh()
	}
}

func (mw *MainWindow) setZoom(scale float64) {
	if ed := mw.canvas.Editor(); ed != nil {
		ed.SetScale(scale)
		mw.canvas.Refresh()
	}
}

func (mw *MainWindow) onImportWall() {
	fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()

		ph, err := photo.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		w := mw.state.AddWall(name, ph.Raw)
		mw.setWall(w)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".jpg", ".jpeg", ".png", ".tif", ".tiff"}))
	fd.Show()
}

func (mw *MainWindow) onDetectHolds() {
	if mw.currentPhoto == nil || mw.currentClimb == nil {
		dialog.ShowInformation("Detect Holds", "Open a draft climb first.", mw.Window)
		return
	}
	ed := mw.canvas.Editor()
	if ed == nil {
		return
	}

	bounds := mw.currentPhoto.Image.Bounds()
	params := detect.DefaultParams(bounds.Dx())
	candidates, err := detect.Holds(mw.currentPhoto.Image, params)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}

	added := 0
	for _, cand := range candidates {
		h := candidateToHold(ed.Transform(), cand, ed.DefaultColor())
		if err := mw.currentClimb.AddHold(h); err != nil {
			dialog.ShowError(err, mw.Window)
			break
		}
		added++
	}
	if added > 0 {
		mw.state.HoldsChanged(mw.currentClimb)
		mw.canvas.Refresh()
	}
	mw.statusBar.SetText(fmt.Sprintf("Detected %d hold candidates", added))
}

// candidateToHold converts a detection in image pixel space into normalized
// hold coordinates. The position normalizes directly against the image; the
// size has to pass through the fit rect because hold sizes are stored as a
// fraction of container width.
func candidateToHold(tr editor.Transform, c detect.Candidate, color colorutil.HoldColor) wall.Hold {
	fit := tr.FitRect()
	diameterInContainer := 2 * c.Radius * fit.Width / tr.Image.Width
	return wall.Hold{
		RelX:  c.Center.X / tr.Image.Width,
		RelY:  c.Center.Y / tr.Image.Height,
		Size:  diameterInContainer / tr.Container.Width,
		Color: color,
	}
}

func (mw *MainWindow) onScanLabels() {
	if mw.currentPhoto == nil {
		dialog.ShowInformation("Scan Grade Labels", "Import a wall photo first.", mw.Window)
		return
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	defer engine.Close()

	bounds := mw.currentPhoto.Image.Bounds()
	candidates, err := detect.Holds(mw.currentPhoto.Image, detect.DefaultParams(bounds.Dx()))
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	suggestions, err := engine.SuggestGrades(mw.currentPhoto.Image, candidates)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if len(suggestions) == 0 {
		dialog.ShowInformation("Scan Grade Labels", "No readable grade tags found.", mw.Window)
		return
	}

	var lines []string
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("%s near (%.0f, %.0f)",
			s.Grade, s.Candidate.Center.X, s.Candidate.Center.Y))
	}
	dialog.ShowInformation("Scan Grade Labels", strings.Join(lines, "\n"), mw.Window)
}

func (mw *MainWindow) onAddBetaVideo() {
	c := mw.currentClimb
	if c == nil {
		dialog.ShowInformation("Beta Video", "Open a climb first.", mw.Window)
		return
	}

	dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		srcPath := r.URI().Path()
		r.Close()
		mw.promptBetaMetadata(c, srcPath)
	}, mw.Window)
}

func (mw *MainWindow) promptBetaMetadata(c *wall.Climb, srcPath string) {
	uploader := widget.NewEntry()
	uploader.SetPlaceHolder("your name")
	notes := widget.NewEntry()

	items := []*widget.FormItem{
		widget.NewFormItem("Uploader", uploader),
		widget.NewFormItem("Notes", notes),
	}
	dialog.ShowForm("Add Beta Video", "Upload", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		v := wall.NewBetaVideo("", uploader.Text, notes.Text)
		stored, err := mw.lib.Import(srcPath, v.ID)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		v.FilePath = stored
		if err := mw.state.AddBetaVideo(c.ID, v); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
}

// SavePreferences flushes the prefs file; called on shutdown.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}
