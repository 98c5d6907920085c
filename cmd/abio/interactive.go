package main

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/abio"
	"github.com/wippyai/abio/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	bytesPerRow = 16
	minRows     = 4
	// lines used by everything except the hex window
	chromeLines = 18
)

type inspectorModel struct {
	err      error
	filename string
	src      abio.Source
	input    textinput.Model
	codec    abio.Codec
	cursor   int
	top      int
	rows     int
	order    abio.Endianness
	jumping  bool
}

type decodedRow struct {
	name  string
	value string
	err   string
}

func newInspectorModel(filename string, data []byte, codec abio.Codec) *inspectorModel {
	ti := textinput.New()
	ti.Placeholder = "offset (decimal or 0x hex)"
	ti.Prompt = "goto: "
	ti.Width = 30

	return &inspectorModel{
		filename: filename,
		src:      abio.NewSource(data),
		input:    ti,
		codec:    codec,
		order:    codec.Endian(),
		rows:     16,
	}
}

func runInteractive(filename string, data []byte, codec abio.Codec) error {
	p := tea.NewProgram(newInspectorModel(filename, data, codec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rows = max(msg.Height-chromeLines, minRows)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.jumping {
			return m.updateJump(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTo(m.cursor - 1)
		case "right", "l":
			m.moveTo(m.cursor + 1)
		case "up", "k":
			m.moveTo(m.cursor - bytesPerRow)
		case "down", "j":
			m.moveTo(m.cursor + bytesPerRow)
		case "pgup":
			m.moveTo(m.cursor - bytesPerRow*m.rows)
		case "pgdown":
			m.moveTo(m.cursor + bytesPerRow*m.rows)
		case "home":
			m.moveTo(0)
		case "end":
			m.moveTo(m.src.Len() - 1)
		case "e":
			m.order = nextOrder(m.order)
		case "g", ":":
			m.jumping = true
			m.err = nil
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}

	return m, nil
}

func (m *inspectorModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.jumping = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.jumping = false
		m.input.Blur()
		off, err := strconv.ParseInt(strings.TrimSpace(m.input.Value()), 0, 64)
		if err != nil || off < 0 || off >= int64(m.src.Len()) {
			m.err = fmt.Errorf("invalid offset %q", m.input.Value())
			return m, nil
		}
		m.moveTo(int(off))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectorModel) moveTo(offset int) {
	last := m.src.Len() - 1
	m.cursor = max(min(offset, last), 0)
	m.scroll()
}

func (m *inspectorModel) scroll() {
	row := m.cursor / bytesPerRow
	if row < m.top {
		m.top = row
	}
	if row >= m.top+m.rows {
		m.top = row - m.rows + 1
	}
}

func nextOrder(e abio.Endianness) abio.Endianness {
	switch e {
	case abio.Little:
		return abio.Big
	case abio.Big:
		return abio.Native
	default:
		return abio.Little
	}
}

// decodeAtCursor decodes every primitive type at the cursor with the current
// byte order and the configured limit.
func (m *inspectorModel) decodeAtCursor() []decodedRow {
	codec := abio.NewCodecBuilder().
		WithEndian(m.order).
		WithLimit(m.codec.Limit()).
		BuildOr(m.codec)

	rows := make([]decodedRow, 0, len(typeOrder))
	for _, name := range typeOrder {
		row := decodedRow{name: name}
		values, _, err := valueTypes[name].decode(m.src, m.cursor, 1, codec)
		if err != nil {
			row.err = errorKind(err)
		} else {
			row.value = values[0]
		}
		rows = append(rows, row)
	}
	return rows
}

func errorKind(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return string(e.Kind)
	}
	return err.Error()
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("abio inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.src.IsEmpty() {
		b.WriteString(errorStyle.Render("File is empty."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	fmt.Fprintf(&b, "offset %s of %d • order %s • limit %s\n\n",
		typeStyle.Render(fmt.Sprintf("0x%x", m.cursor)), m.src.Len(),
		typeStyle.Render(m.order.String()), typeStyle.Render(m.codec.Limit().String()))

	m.writeHex(&b)
	b.WriteString("\n")

	for _, row := range m.decodeAtCursor() {
		fmt.Fprintf(&b, "  %-4s ", typeStyle.Render(row.name))
		if row.err != "" {
			b.WriteString(errorStyle.Render(row.err))
		} else {
			b.WriteString(resultStyle.Render(row.value))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.jumping {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter jump • esc cancel"))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("←/→/↑/↓ move • e byte order • g goto • q quit"))
	return b.String()
}

func (m *inspectorModel) writeHex(b *strings.Builder) {
	data := m.src.Bytes()
	for row := m.top; row < m.top+m.rows; row++ {
		start := row * bytesPerRow
		if start >= len(data) {
			break
		}
		end := min(start+bytesPerRow, len(data))

		b.WriteString(offsetStyle.Render(fmt.Sprintf("%08x", start)))
		b.WriteString("  ")
		for i := start; i < start+bytesPerRow; i++ {
			switch {
			case i >= end:
				b.WriteString("  ")
			case i == m.cursor:
				b.WriteString(selectedStyle.Render(fmt.Sprintf("%02x", data[i])))
			default:
				fmt.Fprintf(b, "%02x", data[i])
			}
			b.WriteString(" ")
		}
		b.WriteString(" ")
		for i := start; i < end; i++ {
			c := data[i]
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("\n")
	}
}
