// Package panels provides the side panel tabs for climbs and the logbook.
package panels

import (
	"fmt"

	"homewall/internal/app"
	"homewall/internal/wall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ClimbsPanel lists the current wall's climbs and hosts the climb lifecycle
// actions: create, establish, tick, clear ticks, delete.
type ClimbsPanel struct {
	state  *app.State
	win    fyne.Window
	wallID string

	list     *widget.List
	selected int

	// onOpenClimb is called when the user opens a climb for hold editing.
	onOpenClimb func(c *wall.Climb)

	content fyne.CanvasObject
}

// NewClimbsPanel creates the climbs tab.
func NewClimbsPanel(state *app.State, win fyne.Window) *ClimbsPanel {
	p := &ClimbsPanel{
		state:    state,
		win:      win,
		selected: -1,
	}
	p.buildUI()

	state.On(app.EventClimbsChanged, func(interface{}) { p.Reload() })
	state.On(app.EventTicked, func(interface{}) { p.Reload() })
	state.On(app.EventCollectionLoaded, func(interface{}) { p.Reload() })
	return p
}

// Container returns the panel's root object.
func (p *ClimbsPanel) Container() fyne.CanvasObject {
	return p.content
}

// OnOpenClimb sets the callback fired when a climb is opened for editing.
func (p *ClimbsPanel) OnOpenClimb(callback func(c *wall.Climb)) {
	p.onOpenClimb = callback
}

// SetWall points the panel at a wall.
func (p *ClimbsPanel) SetWall(wallID string) {
	p.wallID = wallID
	p.selected = -1
	p.Reload()
}

// Reload refreshes the list from the collection.
func (p *ClimbsPanel) Reload() {
	if p.list != nil {
		p.list.Refresh()
	}
}

func (p *ClimbsPanel) climbs() []*wall.Climb {
	w := p.state.Collection().WallByID(p.wallID)
	if w == nil {
		return nil
	}
	return w.Climbs
}

func (p *ClimbsPanel) selectedClimb() *wall.Climb {
	climbs := p.climbs()
	if p.selected < 0 || p.selected >= len(climbs) {
		return nil
	}
	return climbs[p.selected]
}

func (p *ClimbsPanel) buildUI() {
	p.list = widget.NewList(
		func() int { return len(p.climbs()) },
		func() fyne.CanvasObject {
			return widget.NewLabel("climb")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			climbs := p.climbs()
			if id >= len(climbs) {
				return
			}
			obj.(*widget.Label).SetText(climbLine(climbs[id]))
		},
	)
	p.list.OnSelected = func(id widget.ListItemID) {
		p.selected = id
		c := p.selectedClimb()
		if c != nil && p.onOpenClimb != nil {
			p.onOpenClimb(c)
		}
	}

	newBtn := widget.NewButton("New Climb", p.onNewClimb)
	establishBtn := widget.NewButton("Establish", p.onEstablish)
	tickBtn := widget.NewButton("Log Send", p.onTick)
	clearBtn := widget.NewButton("Clear Sends", p.onClearTicks)
	deleteBtn := widget.NewButton("Delete", p.onDelete)

	buttons := container.NewVBox(
		newBtn,
		establishBtn,
		tickBtn,
		clearBtn,
		deleteBtn,
	)

	p.content = container.NewBorder(nil, buttons, nil, nil, p.list)
}

// climbLine formats one list row.
func climbLine(c *wall.Climb) string {
	status := "draft"
	if c.Established {
		status = "established"
	}
	line := fmt.Sprintf("%s [%s]", c.Name, status)
	if c.Difficulty != "" {
		line += " " + c.Difficulty
	}
	if c.IsTicked() {
		line += fmt.Sprintf(" (%d sends)", c.SendCount())
	}
	return line
}

func (p *ClimbsPanel) onNewClimb() {
	if p.wallID == "" {
		dialog.ShowInformation("No Wall", "Import a wall photo first.", p.win)
		return
	}
	if _, err := p.state.NewClimb(p.wallID); err != nil {
		dialog.ShowError(err, p.win)
	}
}

func (p *ClimbsPanel) onEstablish() {
	c := p.selectedClimb()
	if c == nil {
		return
	}
	if err := p.state.EstablishClimb(c.ID); err != nil {
		dialog.ShowError(err, p.win)
	}
}

func (p *ClimbsPanel) onTick() {
	c := p.selectedClimb()
	if c == nil {
		return
	}
	if !c.Established {
		dialog.ShowInformation("Draft Climb", "Establish the climb before logging sends.", p.win)
		return
	}

	gradeEntry := widget.NewEntry()
	gradeEntry.SetPlaceHolder("V4")
	gradeEntry.SetText(c.Difficulty)
	ratingEntry := widget.NewSelect([]string{"", "1", "2", "3", "4"}, nil)
	if c.Rating > 0 {
		ratingEntry.SetSelected(fmt.Sprint(c.Rating))
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Grade", gradeEntry),
		widget.NewFormItem("Rating", ratingEntry),
	}
	dialog.ShowForm("Log Send", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		rating := 0
		fmt.Sscan(ratingEntry.Selected, &rating)
		if err := p.state.TickClimb(c.ID, gradeEntry.Text, rating); err != nil {
			dialog.ShowError(err, p.win)
		}
	}, p.win)
}

func (p *ClimbsPanel) onClearTicks() {
	c := p.selectedClimb()
	if c == nil {
		return
	}
	dialog.ShowConfirm("Clear Sends",
		fmt.Sprintf("Remove all %d logged sends of %s?", c.SendCount(), c.Name),
		func(ok bool) {
			if !ok {
				return
			}
			if err := p.state.ClearTicks(c.ID); err != nil {
				dialog.ShowError(err, p.win)
			}
		}, p.win)
}

func (p *ClimbsPanel) onDelete() {
	c := p.selectedClimb()
	if c == nil {
		return
	}
	dialog.ShowConfirm("Delete Climb",
		fmt.Sprintf("Delete %s and its beta videos?", c.Name),
		func(ok bool) {
			if !ok {
				return
			}
			p.selected = -1
			if err := p.state.DeleteClimb(p.wallID, c.ID); err != nil {
				dialog.ShowError(err, p.win)
			}
		}, p.win)
}
