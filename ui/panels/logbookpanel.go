package panels

import (
	"fmt"
	"strings"

	"homewall/internal/app"
	"homewall/internal/logbook"
	"homewall/internal/wall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogbookPanel shows the send history segmented into sessions, with an
// optional grade-range filter and a stats summary.
type LogbookPanel struct {
	state *app.State

	minEntry *widget.Entry
	maxEntry *widget.Entry
	summary  *widget.Label
	sessions *widget.Label

	content fyne.CanvasObject
}

// NewLogbookPanel creates the logbook tab.
func NewLogbookPanel(state *app.State) *LogbookPanel {
	p := &LogbookPanel{state: state}
	p.buildUI()

	state.On(app.EventTicked, func(interface{}) { p.Reload() })
	state.On(app.EventClimbsChanged, func(interface{}) { p.Reload() })
	state.On(app.EventCollectionLoaded, func(interface{}) { p.Reload() })
	return p
}

// Container returns the panel's root object.
func (p *LogbookPanel) Container() fyne.CanvasObject {
	return p.content
}

func (p *LogbookPanel) buildUI() {
	p.minEntry = widget.NewEntry()
	p.minEntry.SetPlaceHolder("min (V0)")
	p.maxEntry = widget.NewEntry()
	p.maxEntry.SetPlaceHolder("max (V8)")
	applyBtn := widget.NewButton("Filter", p.Reload)

	filterRow := container.NewGridWithColumns(3, p.minEntry, p.maxEntry, applyBtn)

	p.summary = widget.NewLabel("")
	p.sessions = widget.NewLabel("No sends logged yet.")
	p.sessions.Wrapping = fyne.TextWrapWord

	p.content = container.NewBorder(
		container.NewVBox(filterRow, p.summary),
		nil, nil, nil,
		container.NewVScroll(p.sessions),
	)
}

// Reload recomputes sessions and stats from the collection.
func (p *LogbookPanel) Reload() {
	var climbs []*wall.Climb
	for _, w := range p.state.Collection().Walls {
		climbs = append(climbs, w.Climbs...)
	}

	rng := logbook.GradeRange{Min: p.minEntry.Text, Max: p.maxEntry.Text}
	climbs = rng.Apply(climbs)

	s := logbook.Summarize(climbs)
	p.summary.SetText(fmt.Sprintf("%d sends over %d sessions, hardest %s",
		s.TotalSends, s.SessionCount, orDash(s.Hardest)))

	sessions := logbook.Segment(climbs)
	if len(sessions) == 0 {
		p.sessions.SetText("No sends logged yet.")
		return
	}

	var b strings.Builder
	for _, session := range sessions {
		fmt.Fprintf(&b, "%s - %d sends\n",
			session.Start().Format("Mon Jan 2 2006"), len(session.Ticks))
		for _, t := range session.Ticks {
			fmt.Fprintf(&b, "  %s  %s %s\n",
				t.At.Format("15:04"), t.ClimbName, t.Difficulty)
		}
		b.WriteString("\n")
	}
	p.sessions.SetText(b.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
