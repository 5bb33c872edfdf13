package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Eignex/kencodex"
	"github.com/Eignex/kencodex/codec"
	"github.com/Eignex/kencodex/schema"
	"github.com/Eignex/kencodex/wire"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	flagsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect --schema <fields>",
	Short: "Interactively explore a record's wire layout",
	Long: `Inspect opens a terminal UI with one input per schema field. The encoded
record updates as you type; the focused field's bytes are highlighted in
the hex view, with the flags varint marked separately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("inspect needs a terminal on stdout")
		}
		schemaSrc, _ := cmd.Flags().GetString("schema")
		s, err := parseSchema(schemaSrc)
		if err != nil {
			return err
		}
		p := tea.NewProgram(newInspectModel(s, schemaSrc), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

type span struct {
	pos        int
	start, end int
}

type inspectModel struct {
	s         *schema.Schema
	src       string
	inputs    []textinput.Model
	focus     int
	record    []byte
	flagsEnd  int
	spans     []span
	encodeErr error
}

func newInspectModel(s *schema.Schema, src string) *inspectModel {
	m := &inspectModel{s: s, src: src}
	m.inputs = make([]textinput.Model, s.Len())
	for pos := 0; pos < s.Len(); pos++ {
		f := s.Field(pos)
		ti := textinput.New()
		ti.Placeholder = zeroText(f.Kind)
		ti.Prompt = f.Name + ": "
		ti.Width = 32
		if pos == 0 {
			ti.Focus()
		}
		m.inputs[pos] = ti
	}
	m.reencode()
	return m
}

func (m *inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down", "enter":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	m.reencode()
	return m, tea.Batch(cmds...)
}

func (m *inspectModel) setFocus(idx int) {
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}

// reencode rebuilds the record from the current input texts. Empty inputs
// encode as the field's zero value.
func (m *inspectModel) reencode() {
	m.record, m.flagsEnd, m.spans, m.encodeErr = nil, 0, nil, nil

	values := make([]any, m.s.Len())
	for pos := 0; pos < m.s.Len(); pos++ {
		f := m.s.Field(pos)
		values[pos] = zeroValue(f.Kind)
		if text := strings.TrimSpace(m.inputs[pos].Value()); text != "" {
			v, err := parseValue(f, text)
			if err != nil {
				m.encodeErr = err
				return
			}
			values[pos] = v
		}
	}
	record, err := kencodex.Marshal(m.s, values...)
	if err != nil {
		m.encodeErr = err
		return
	}
	flagsEnd, spans, err := fieldSpans(m.s, record)
	if err != nil {
		m.encodeErr = err
		return
	}
	m.record, m.flagsEnd, m.spans = record, flagsEnd, spans
}

// fieldSpans locates each non-boolean field's bytes inside record. The
// flags varint occupies record[:flagsEnd].
func fieldSpans(s *schema.Schema, record []byte) (flagsEnd int, spans []span, err error) {
	_, flagsEnd, err = wire.Uvarint64(record, 0)
	if err != nil {
		return 0, nil, err
	}
	dec := codec.NewDecoder()
	off := flagsEnd
	for pos := 0; pos < s.Len(); pos++ {
		f := s.Field(pos)
		if f.Kind == schema.KindBool {
			continue
		}
		_, n, err := dec.DecodeScalar(f.Kind, s.Mode(pos), record[off:])
		if err != nil {
			return 0, nil, err
		}
		spans = append(spans, span{pos: pos, start: off, end: off + n})
		off += n
	}
	return flagsEnd, spans, nil
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("kencodex inspect"))
	b.WriteString(" ")
	b.WriteString(m.src)
	b.WriteString("\n\n")

	for pos := range m.inputs {
		b.WriteString(m.inputs[pos].View())
		b.WriteString(" ")
		b.WriteString(kindStyle.Render(m.fieldLabel(pos)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.encodeErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.encodeErr)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab/↑/↓ move • esc quit"))
		return b.String()
	}

	b.WriteString("Record ")
	b.WriteString(sizeStyle.Render(fmt.Sprintf("(%d bytes)", len(m.record))))
	b.WriteString(":\n\n  ")
	b.WriteString(m.hexView())
	b.WriteString("\n\n")
	b.WriteString(m.legend())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab/↑/↓ move • esc quit"))
	return b.String()
}

func (m *inspectModel) fieldLabel(pos int) string {
	f := m.s.Field(pos)
	if ord, ok := m.s.BoolOrdinal(pos); ok {
		return fmt.Sprintf("bool, flag bit %d", ord)
	}
	label := f.Kind.String()
	switch m.s.Mode(pos) {
	case schema.VarSigned:
		label += "@varint"
	case schema.VarZigzag:
		label += "@varuint"
	}
	return label
}

// hexView renders the record with the focused field highlighted. A focused
// boolean highlights the flags varint it packs into.
func (m *inspectModel) hexView() string {
	focusStart, focusEnd := -1, -1
	if _, ok := m.s.BoolOrdinal(m.focus); ok {
		focusStart, focusEnd = 0, m.flagsEnd
	} else {
		for _, sp := range m.spans {
			if sp.pos == m.focus {
				focusStart, focusEnd = sp.start, sp.end
			}
		}
	}

	var b strings.Builder
	for i, c := range m.record {
		if i > 0 {
			b.WriteByte(' ')
		}
		h := fmt.Sprintf("%02x", c)
		switch {
		case focusStart >= 0 && i >= focusStart && i < focusEnd:
			b.WriteString(focusedStyle.Render(h))
		case i < m.flagsEnd:
			b.WriteString(flagsStyle.Render(h))
		default:
			b.WriteString(h)
		}
	}
	return b.String()
}

func (m *inspectModel) legend() string {
	f := m.s.Field(m.focus)
	if ord, ok := m.s.BoolOrdinal(m.focus); ok {
		return helpStyle.Render(fmt.Sprintf("%s packs into flag bit %d", f.Name, ord))
	}
	for _, sp := range m.spans {
		if sp.pos == m.focus {
			return helpStyle.Render(fmt.Sprintf("%s occupies record[%d:%d]", f.Name, sp.start, sp.end))
		}
	}
	return ""
}

func zeroValue(k schema.Kind) any {
	switch k {
	case schema.KindBool:
		return false
	case schema.KindByte:
		return byte(0)
	case schema.KindShort:
		return int16(0)
	case schema.KindInt32:
		return int32(0)
	case schema.KindInt64:
		return int64(0)
	case schema.KindFloat32:
		return float32(0)
	case schema.KindFloat64:
		return float64(0)
	case schema.KindChar:
		return uint16(0)
	case schema.KindString:
		return ""
	}
	return nil
}

func zeroText(k schema.Kind) string {
	switch k {
	case schema.KindBool:
		return "false"
	case schema.KindString:
		return `""`
	default:
		return "0"
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("schema", "", "Field list, e.g. id:int32@varuint,name:string")
	_ = inspectCmd.MarkFlagRequired("schema")
}
