package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstock/pkg/card"
	"github.com/matzehuels/cardstock/pkg/geom"
	"github.com/matzehuels/cardstock/pkg/layout"
	"github.com/matzehuels/cardstock/pkg/space"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command, an interactive region
// browser for a card description.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [card.toml]",
		Short: "Browse the resolved region tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := card.LoadConfig(args[0])
			if err != nil {
				return err
			}
			doc, err := card.Build(cfg)
			if err != nil {
				return err
			}
			model, err := NewRegionListModel(doc)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// regionRow is one region flattened for display.
type regionRow struct {
	Name     string
	Depth    int
	Space    string
	Local    geom.Box
	Device   geom.Box
	Physical geom.Box
}

// RegionListModel is the bubbletea model for interactive region
// browsing.
type RegionListModel struct {
	Rows   []regionRow
	Cursor int
	Height int
	Offset int
}

// NewRegionListModel flattens a document's region tree into a
// browsable list.
func NewRegionListModel(doc *card.Document) (RegionListModel, error) {
	var rows []regionRow
	var walkErr error

	doc.Tree().Walk(func(r *layout.Region, depth, index int) {
		if walkErr != nil {
			return
		}
		device, err := doc.Tree().Resolve(r.Name())
		if err != nil {
			walkErr = err
			return
		}
		physical, err := doc.Registry().Convert(device, space.Device, space.Physical)
		if err != nil {
			walkErr = err
			return
		}
		rows = append(rows, regionRow{
			Name:     r.Name(),
			Depth:    depth,
			Space:    string(r.Space()),
			Local:    r.Box(),
			Device:   device,
			Physical: physical,
		})
	})
	if walkErr != nil {
		return RegionListModel{}, walkErr
	}

	return RegionListModel{
		Rows:   rows,
		Height: 15,
	}, nil
}

func (m RegionListModel) Init() tea.Cmd {
	return nil
}

func (m RegionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RegionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Regions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		indent := strings.Repeat("  ", r.Depth)
		b.WriteString(cursor + indent + style.Render(r.Name))
		b.WriteString(listDimStyle.Render("  [" + r.Space + "]"))
		b.WriteString("\n")
	}

	if len(m.Rows) > 0 {
		r := m.Rows[m.Cursor]
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("local:    ") + StyleValue.Render(formatBox(r.Local)) + "\n")
		b.WriteString(listDimStyle.Render("device:   ") + StyleValue.Render(formatBox(r.Device)+" px") + "\n")
		b.WriteString(listDimStyle.Render("physical: ") + StyleValue.Render(formatBox(r.Physical)) + "\n")
	}

	return b.String()
}

func formatBox(b geom.Box) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", b.X0, b.Y0, b.X1, b.Y1)
}
