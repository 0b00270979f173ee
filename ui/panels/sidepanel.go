package panels

import (
	"homewall/internal/app"
	"homewall/internal/wall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel groups the climbs and logbook tabs.
type SidePanel struct {
	Climbs  *ClimbsPanel
	Logbook *LogbookPanel

	tabs *container.AppTabs
}

// NewSidePanel creates the tabbed side panel.
func NewSidePanel(state *app.State, win fyne.Window) *SidePanel {
	sp := &SidePanel{
		Climbs:  NewClimbsPanel(state, win),
		Logbook: NewLogbookPanel(state),
	}
	sp.tabs = container.NewAppTabs(
		container.NewTabItem("Climbs", sp.Climbs.Container()),
		container.NewTabItem("Logbook", sp.Logbook.Container()),
	)
	return sp
}

// Container returns the panel's root object.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.tabs
}

// SetWall points both tabs at a wall.
func (sp *SidePanel) SetWall(w *wall.Wall) {
	if w != nil {
		sp.Climbs.SetWall(w.ID)
	}
	sp.Logbook.Reload()
}
