package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/pinroute/pkg/framework/param"
	"github.com/justyntemme/pinroute/pkg/framework/pins"
	"github.com/justyntemme/pinroute/pkg/framework/state"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500"))
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(2)
)

// MatrixCmd prints the pin matrices of a connector.
type MatrixCmd struct {
	PortFlags `embed:""`

	Save string `type:"path" help:"Write the resulting pins as a JSON preset."`
}

// Run implements the matrix command
func (m *MatrixCmd) Run(g *Globals) error {
	cfg, err := m.Config()
	if err != nil {
		return err
	}
	c, err := m.Connector(cfg, param.NewRegistry(), g.logger)
	if err != nil {
		return err
	}
	if m.Save != "" {
		if err := state.SaveFile(m.Save, state.Capture(m.Template, c, nil)); err != nil {
			return err
		}
	}
	printMatrices(g.out, c)
	return nil
}

func printMatrices(w io.Writer, c *pins.Connector) {
	in := boxStyle.Render(titleStyle.Render("Input pins") + "\n" + styleGrid(gridLines(c.In())))
	out := boxStyle.Render(titleStyle.Render("Output pins") + "\n" + styleGrid(gridLines(c.Out())))
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, in, out))

	routed := make([]string, 0, c.HostChannelCount())
	for h, r := range c.RoutedChannels() {
		if r {
			routed = append(routed, fmt.Sprint(h))
		}
	}
	if len(routed) == 0 {
		routed = append(routed, "none")
	}
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Plugin:"), c.ChannelCountText())
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Routed host channels:"), strings.Join(routed, " "))
	fmt.Fprintf(w, "%s %d\n", keyStyle.Render("Active host channels:"), c.HostChannelsUpperBound())
}

// gridLines draws a matrix with one row per host channel and one column
// per plugin channel:
//
//	 ___
//	|X| | 0
//	| |X| 1
func gridLines(m *pins.Matrix) []string {
	channels := m.ChannelCount()
	if !m.Known() {
		return []string{"(channel count unknown)"}
	}
	lines := make([]string, 0, m.HostChannelCount()+1)
	if channels > 0 {
		lines = append(lines, " "+strings.Repeat("_", 2*channels-1))
	}
	for h := 0; h < m.HostChannelCount(); h++ {
		var sb strings.Builder
		sb.WriteByte('|')
		for p := 0; p < channels; p++ {
			if m.Enabled(h, p) {
				sb.WriteString("X|")
			} else {
				sb.WriteString(" |")
			}
		}
		fmt.Fprintf(&sb, " %d", h)
		lines = append(lines, sb.String())
	}
	return lines
}

func styleGrid(lines []string) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range line {
			switch r {
			case 'X':
				sb.WriteString(onStyle.Render("X"))
			case '|', '_':
				sb.WriteString(offStyle.Render(string(r)))
			default:
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}
