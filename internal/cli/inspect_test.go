package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cardstock/pkg/card"
)

const inspectTestTOML = `
[page]
width = 3.5
height = 2.0
unit = "in"
dpi = 300

[[region]]
name = "header"
box = [0.0, 0.7, 1.0, 1.0]

[[region]]
name = "body"
box = [0.0, 0.0, 1.0, 0.7]
`

func newInspectModel(t *testing.T) RegionListModel {
	t.Helper()
	cfg, err := card.ParseConfig([]byte(inspectTestTOML))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	doc, err := card.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	model, err := NewRegionListModel(doc)
	if err != nil {
		t.Fatalf("NewRegionListModel: %v", err)
	}
	return model
}

func TestRegionListModelRows(t *testing.T) {
	m := newInspectModel(t)

	if len(m.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(m.Rows))
	}
	if m.Rows[0].Name != "page" || m.Rows[0].Depth != 0 {
		t.Errorf("first row = %+v, want page at depth 0", m.Rows[0])
	}
	if m.Rows[1].Name != "header" || m.Rows[1].Depth != 1 {
		t.Errorf("second row = %+v, want header at depth 1", m.Rows[1])
	}
	if m.Rows[1].Device.Y1 != 180 {
		t.Errorf("header device Y1 = %g, want 180", m.Rows[1].Device.Y1)
	}
}

func TestRegionListModelNavigation(t *testing.T) {
	m := newInspectModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(RegionListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(RegionListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up = %d, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(RegionListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after up at top = %d, want 0", m.Cursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestRegionListModelView(t *testing.T) {
	m := newInspectModel(t)

	view := m.View()
	for _, want := range []string{"Regions", "page", "header", "body", "px"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
