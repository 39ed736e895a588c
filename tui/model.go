package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"samplepad/debug"
	"samplepad/sequencer"
)

// Refresh rate for polling the playhead mailbox.
const refreshFPS = 30

type tickMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(time.Second/refreshFPS, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Model is the bubbletea control surface: a grid editor over the
// canonical pattern plus transport and tempo/swing controls. Playback
// state is polled from the machine's mailbox; the model never talks to
// the render context directly.
type Model struct {
	Machine *sequencer.Machine

	pad  int // selected pad (grid row)
	step int // cursor column
	part int // part being edited (independent of the playing part)

	naming  bool // capturing a save name
	nameBuf string

	status   string
	quitting bool
}

// NewModel creates the control surface for a machine.
func NewModel(m *sequencer.Machine) Model {
	return Model{Machine: m}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tickMsg:
		ph := m.Machine.Playhead()
		debug.LogEvery(refreshFPS*5, "tui", "playhead part=%d step=%d fired=%d shed=%d",
			ph.Part, ph.Step, ph.Fired, m.Machine.DroppedCommands())
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if m.naming {
		switch key {
		case "enter":
			m.naming = false
			name, err := sequencer.SaveSequence(m.nameBuf, m.Machine.Pattern().File())
			if err != nil {
				m.status = fmt.Sprintf("save failed: %v", err)
			} else {
				m.status = "saved " + name
			}
			m.nameBuf = ""
		case "esc":
			m.naming = false
			m.nameBuf = ""
		case "backspace":
			if len(m.nameBuf) > 0 {
				m.nameBuf = m.nameBuf[:len(m.nameBuf)-1]
			}
		default:
			if len(key) == 1 && nameChar(key[0]) {
				m.nameBuf += key
			}
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		m.Machine.Stop()
		m.Machine.CutAllVoices()
		return m, tea.Quit

	case "p":
		if m.Machine.Playing() {
			m.Machine.Stop()
		} else {
			m.Machine.Play()
		}

	case "b":
		m.Machine.Back()

	case "x":
		m.Machine.CutAllVoices()

	case "+", "=":
		m.Machine.SetTempo(m.Machine.Tempo() + 5)
	case "-", "_":
		m.Machine.SetTempo(m.Machine.Tempo() - 5)

	case "]":
		m.Machine.SetSwing(m.Machine.Swing() + 5)
	case "[":
		m.Machine.SetSwing(m.Machine.Swing() - 5)

	case "}":
		m.Machine.SetPartCount(m.Machine.PartCount() + 1)
	case "{":
		n := m.Machine.SetPartCount(m.Machine.PartCount() - 1)
		if m.part >= n {
			m.part = n - 1
		}

	case "<", ",":
		if m.part > 0 {
			m.part--
		}
	case ">", ".":
		if m.part < m.Machine.PartCount()-1 {
			m.part++
		}

	case "h", "left":
		if m.step > 0 {
			m.step--
		}
	case "l", "right":
		if m.step < sequencer.StepsPerPart-1 {
			m.step++
		}
	case "j", "down":
		if m.pad < sequencer.NumPads-1 {
			m.pad++
		}
	case "k", "up":
		if m.pad > 0 {
			m.pad--
		}

	case " ":
		m.Machine.ToggleStep(m.part, m.pad, m.step)

	case "v":
		cell := m.Machine.Pattern().StepAt(m.part, m.pad, m.step)
		if cell.Velocity >= 10 {
			m.Machine.SetVelocity(m.part, m.pad, m.step, cell.Velocity-10)
		}
	case "V":
		cell := m.Machine.Pattern().StepAt(m.part, m.pad, m.step)
		if cell.Velocity <= 117 {
			m.Machine.SetVelocity(m.part, m.pad, m.step, cell.Velocity+10)
		}

	case "t":
		m.Machine.TriggerPad(m.pad)

	case "w":
		name, err := sequencer.SaveSequence("", m.Machine.Pattern().File())
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "saved " + name
		}

	case "W":
		m.naming = true
		m.nameBuf = ""

	case "C":
		m.Machine.ClearPattern()
		m.status = "cleared"

	case "o":
		saves, err := sequencer.ListSequences()
		if err != nil || len(saves) == 0 {
			m.status = "no saved sequences"
			break
		}
		f, err := sequencer.LoadSequence(saves[0].Filename)
		if err != nil {
			m.status = fmt.Sprintf("load failed: %v", err)
			break
		}
		m.Machine.LoadPattern(f.Pattern())
		if m.part >= m.Machine.PartCount() {
			m.part = m.Machine.PartCount() - 1
		}
		m.status = "loaded " + saves[0].Filename
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	ph := m.Machine.Playhead()
	pattern := m.Machine.Pattern()

	playState := "STOP"
	if ph.Playing {
		playState = "PLAY"
	}

	header := headerStyle.Render(fmt.Sprintf(
		"samplepad  %s  %3dbpm  swing:%02d  part %d/%d  step:%02d",
		playState, pattern.Tempo, pattern.Swing, ph.Part+1, pattern.PartCount, ph.Step+1))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	// Part selector row: editing marker around the edited part, ▶ on
	// the playing one.
	out.WriteString("   parts ")
	for i := 0; i < pattern.PartCount; i++ {
		label := fmt.Sprintf("%d", i+1)
		if ph.Playing && i == ph.Part {
			label = "▶" + label
		}
		if i == m.part {
			out.WriteString("[" + label + "] ")
		} else {
			out.WriteString(" " + label + "  ")
		}
	}
	out.WriteString("\n\n")

	// 16x16 grid for the edited part, one row per pad.
	showPlayhead := ph.Playing && ph.Part == m.part
	for pad := 0; pad < sequencer.NumPads; pad++ {
		name := "--"
		if buf := m.Machine.PadSample(pad); buf != nil {
			name = buf.Name()
			if len(name) > 10 {
				name = name[:10]
			}
		}
		ringing := ph.ActivePads&(1<<uint(pad)) != 0
		mark := " "
		if ringing {
			mark = "*"
		}
		out.WriteString(fmt.Sprintf("%2d %-10s%s ", pad+1, name, mark))

		for s := 0; s < sequencer.StepsPerPart; s++ {
			isCursor := pad == m.pad && s == m.step
			onPlayhead := showPlayhead && s == ph.Step
			active := pattern.StepAt(m.part, pad, s).Hit

			var char string
			switch {
			case onPlayhead && isCursor:
				char = "▷"
			case onPlayhead:
				char = "▶"
			case active && isCursor:
				char = "◉"
			case active:
				char = "●"
			case isCursor:
				char = "○"
			default:
				char = "·"
			}
			out.WriteString(char)
			if s%4 == 3 && s != sequencer.StepsPerPart-1 {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")
	}

	// Velocity of the cell under the cursor.
	cell := pattern.StepAt(m.part, m.pad, m.step)
	out.WriteString(dimStyle.Render(fmt.Sprintf("\ncursor pad:%d step:%d vel:%d\n", m.pad+1, m.step+1, cell.Velocity)))

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("hjkl:nav  space:toggle  v/V:velocity  t:preview  p:play  b:back  x:cut"))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("+/-:tempo  [/]:swing  </>:part  {/}:parts  w/W:save  o:load  C:clear  q:quit"))

	if m.naming {
		out.WriteString("\n\n")
		out.WriteString(statusStyle.Render("save as: " + m.nameBuf + "▌"))
	} else if m.status != "" {
		out.WriteString("\n\n")
		out.WriteString(statusStyle.Render(m.status))
	}

	return out.String()
}

// nameChar reports whether c is allowed in a save name (kept
// filename-safe).
func nameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}
