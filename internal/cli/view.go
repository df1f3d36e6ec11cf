package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketview/pkg/bracket"
	"github.com/matzehuels/bracketview/pkg/pipeline"
	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

// Card geometry in terminal cells.
const (
	cardWidth  = 24 // inner width including padding
	cardLines  = 4  // top border, two team lines, bottom border
	columnCols = cardWidth + 2 + 2
	chromeRows = 5 // title, section line, blank, blank, help
)

var (
	viewCardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1).Width(cardWidth)
	viewDoneStyle   = viewCardStyle.BorderForeground(colorGreen)
	viewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Width(cardWidth + 2)
	viewWinnerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	viewByeStyle    = lipgloss.NewStyle().Foreground(colorDim)
	viewColumnStyle = lipgloss.NewStyle().MarginRight(2)
)

// viewCommand creates the view command, an interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [bracket-file]",
		Short: "Browse a bracket in the terminal",
		Long: `Browse a bracket in the terminal.

Keys: ←/→ or h/l scroll rounds, ↑/↓ or j/k scroll matches, tab and
shift+tab switch sections, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pipeline.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(newViewModel(doc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// viewModel - Interactive bracket viewer
// =============================================================================

// viewModel is the bubbletea model of the bracket viewer.
type viewModel struct {
	doc     *bracket.Document
	section int // index of the shown section
	round   int // first visible round
	line    int // first visible body line
	width   int
	height  int
}

func newViewModel(doc *bracket.Document) viewModel {
	return viewModel{doc: doc, width: 80, height: 24}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(m.doc.Sections)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.section = (m.section + 1) % n
			m.round, m.line = 0, 0
		case "shift+tab":
			m.section = (m.section - 1 + n) % n
			m.round, m.line = 0, 0
		case "right", "l":
			if m.round < len(m.current().Rounds)-1 {
				m.round++
			}
		case "left", "h":
			if m.round > 0 {
				m.round--
			}
		case "down", "j":
			m.line++
		case "up", "k":
			m.line--
		case "pgdown", " ":
			m.line += m.bodyHeight()
		case "pgup":
			m.line -= m.bodyHeight()
		case "home", "g":
			m.line = 0
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	m.line = max(0, min(m.line, len(m.body())-m.bodyHeight()))
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	title := m.doc.Title
	if title == "" {
		title = "Bracket"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	sec := m.current()
	visible := m.visibleRounds()
	last := min(m.round+visible, len(sec.Rounds))
	b.WriteString(StyleDim.Render(fmt.Sprintf("Section %d/%d: ", m.section+1, len(m.doc.Sections))))
	b.WriteString(StyleValue.Render(sec.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" · rounds %d-%d of %d", m.round+1, last, len(sec.Rounds))))
	b.WriteString("\n\n")

	body := m.body()
	end := min(m.line+m.bodyHeight(), len(body))
	b.WriteString(strings.Join(body[m.line:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("←/→ rounds  ↑/↓ scroll  tab section  q quit"))

	return b.String()
}

func (m viewModel) current() *bracket.Section {
	return &m.doc.Sections[m.section]
}

func (m viewModel) bodyHeight() int {
	return max(3, m.height-chromeRows)
}

func (m viewModel) visibleRounds() int {
	return max(1, m.width/columnCols)
}

// body renders the visible rounds side by side and returns the lines.
func (m viewModel) body() []string {
	sec := m.current()
	offsets := cardOffsets(sec)
	last := min(m.round+m.visibleRounds(), len(sec.Rounds))

	columns := make([]string, 0, last-m.round)
	for r := m.round; r < last; r++ {
		columns = append(columns, viewColumnStyle.Render(renderColumn(sec, r, offsets[r])))
	}
	return strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, columns...), "\n")
}

// cardOffsets returns the first body line of every match card. Binary
// sections follow the layout engine with one row height per card, so each
// card sits centered between its two feeders; linear sections stack.
func cardOffsets(sec *bracket.Section) [][]int {
	offsets := make([][]int, len(sec.Rounds))
	var p *layout.Positioner
	if sec.IsBinary() {
		p, _ = layout.NewPositioner(sec.Counts(), 1)
	}
	for r, round := range sec.Rounds {
		offsets[r] = make([]int, len(round.Matches))
		for i := range round.Matches {
			pos := float64(i)
			if p != nil {
				if v, err := p.Position(r, i); err == nil {
					pos = v
				}
			}
			offsets[r][i] = int(math.Round(pos * cardLines))
		}
	}
	return offsets
}

// renderColumn draws the header and cards of round r.
func renderColumn(sec *bracket.Section, r int, offsets []int) string {
	round := sec.Rounds[r]
	header := sec.RoundLabel(r)
	if round.BestOf > 0 {
		header = fmt.Sprintf("%s · Bo%d", header, round.BestOf)
	}

	lines := []string{viewHeaderStyle.Render(truncate(header, cardWidth+2)), ""}
	for i := range round.Matches {
		for len(lines)-2 < offsets[i] {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(renderCard(&round.Matches[i]), "\n")...)
	}
	return strings.Join(lines, "\n")
}

// renderCard draws one match as a bordered card with two team lines.
func renderCard(m *bracket.Match) string {
	nameWidth := cardWidth - 2 - 4
	lines := make([]string, 2)
	for s := range lines {
		t := m.Slot(s)
		line := fmt.Sprintf("%-*s %3s", nameWidth, truncate(t.DisplayName(), nameWidth), t.ScoreText())
		switch {
		case t.Winner:
			line = viewWinnerStyle.Render(line)
		case t.Bye:
			line = viewByeStyle.Render(line)
		}
		lines[s] = line
	}

	style := viewCardStyle
	if _, decided := m.Winner(); decided {
		style = viewDoneStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// truncate shortens s to at most n runes, marking the cut with "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
