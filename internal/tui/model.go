// Package tui is the terminal front end of the editor: a tree pane and a raw
// text pane over one editor.Session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/golang/glog"

	"github.com/KimNorgaard/go-hconf/ast"
	"github.com/KimNorgaard/go-hconf/internal/editor"
	"github.com/KimNorgaard/go-hconf/internal/store"
	"github.com/KimNorgaard/go-hconf/internal/watcher"
)

type pane int

const (
	treePane pane = iota
	textPane
)

type editMode int

const (
	editNone editMode = iota
	editValue
	editKey
)

// fileChangedMsg is delivered when the watcher reports an external change.
type fileChangedMsg struct {
	event watcher.Event
}

// dialog is a blocking message box dismissed with enter or esc.
type dialog struct {
	title   string
	message string
}

// Model is the bubbletea model of the editor.
type Model struct {
	session *editor.Session
	keys    KeyMap

	rows   []row
	cursor int
	offset int

	tree  viewport.Model
	text  textarea.Model
	input textinput.Model

	focus   pane
	editing editMode
	dialog  *dialog
	status  string

	width  int
	height int

	changes <-chan watcher.Event
}

// Option configures a Model.
type Option func(*Model)

// WithChanges makes the model reload the session when a change arrives on
// ch, typically watcher.Watcher.Events.
func WithChanges(ch <-chan watcher.Event) Option {
	return func(m *Model) {
		m.changes = ch
	}
}

// New returns a model for s and loads the config file. A missing or
// unreadable file is reported in a dialog; the editor then starts empty.
func New(s *editor.Session, opts ...Option) *Model {
	ta := textarea.New()
	ta.Placeholder = "empty config"
	ta.ShowLineNumbers = true
	ta.CharLimit = -1
	ta.MaxHeight = 0 // whole files, not the 99 line default

	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = -1

	m := &Model{
		session: s,
		keys:    DefaultKeyMap(),
		tree:    viewport.New(),
		text:    ta,
		input:   in,
	}
	for _, opt := range opts {
		opt(m)
	}

	s.SetViews(editor.Views{
		Text: m.showText,
		Tree: m.showTree,
	})
	if err := s.Load(); err != nil {
		m.showError("Cannot open config", s.Path(), err)
	} else {
		m.status = fmt.Sprintf("loaded %d entries", len(m.rows))
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForChange())
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{event: e}
	}
}

// showText is the session's text view.
func (m *Model) showText(text string) {
	m.text.SetValue(text)
}

// showTree is the session's tree view.
func (m *Model) showTree(doc *ast.Document) {
	m.rows = flatten(doc)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.renderTree()
}

func (m *Model) showError(title, path string, err error) {
	msg := err.Error()
	if store.IsNotFound(err) {
		msg = fmt.Sprintf("Config file not found:\n%s", path)
	}
	m.dialog = &dialog{title: title, message: msg}
	m.status = title
}

func (m *Model) selected() ast.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case fileChangedMsg:
		m.fileChanged(msg.event)
		return m, m.waitForChange()

	case tea.KeyPressMsg:
		if m.dialog != nil {
			if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
				m.dialog = nil
			}
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.editing != editNone {
			return m, m.updateInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Switch):
			return m, m.switchFocus()
		}

		if m.focus == textPane {
			return m, m.updateText(msg)
		}
		return m, m.updateTree(msg)
	}

	// Pastes and other non-key input go to whichever widget has focus.
	switch {
	case m.dialog != nil:
		return m, nil
	case m.editing != editNone:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.renderTree()
		return m, cmd
	case m.focus == textPane:
		return m, m.updateText(msg)
	}
	return m, nil
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == treePane {
		m.focus = textPane
		m.renderTree()
		return m.text.Focus()
	}
	m.focus = treePane
	m.text.Blur()
	m.renderTree()
	return nil
}

func (m *Model) updateTree(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Edit):
		leaf, ok := m.selected().(*ast.Leaf)
		if !ok {
			m.status = editor.ErrNotLeaf.Error()
			return nil
		}
		return m.startEdit(editValue, leaf.Value)
	case key.Matches(msg, m.keys.Rename):
		n := m.selected()
		if n == nil {
			return nil
		}
		return m.startEdit(editKey, n.Name())
	}
	return nil
}

func (m *Model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.renderTree()
}

func (m *Model) startEdit(mode editMode, initial string) tea.Cmd {
	m.editing = mode
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.renderTree()
	return m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEdit()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.commitEdit()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.renderTree()
	return cmd
}

func (m *Model) stopEdit() {
	m.editing = editNone
	m.input.Blur()
	m.renderTree()
}

// commitEdit applies the inline edit to the selected node. A rejected edit
// keeps the input open so it can be corrected.
func (m *Model) commitEdit() {
	n := m.selected()
	var err error
	switch m.editing {
	case editValue:
		_, err = m.session.EditValue(n, m.input.Value())
	case editKey:
		_, err = m.session.RenameKey(n, m.input.Value())
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.stopEdit()
	m.status = "edited " + n.Name()
}

// updateText forwards msg to the text pane and re-parses when the text
// changed.
func (m *Model) updateText(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	m.textChanged()
	return cmd
}

func (m *Model) textChanged() {
	if m.text.Value() == m.session.Text() {
		return
	}
	m.session.SetText(m.text.Value())
}

func (m *Model) save() {
	if _, err := m.session.Save(); err != nil {
		m.dialog = &dialog{title: "Save failed", message: err.Error()}
		m.status = "save failed"
		return
	}
	m.status = "saved " + m.session.Path()
}

func (m *Model) reload() {
	if err := m.session.Load(); err != nil {
		m.showError("Cannot reload config", m.session.Path(), err)
		return
	}
	m.status = "reloaded " + m.session.Path()
}

func (m *Model) fileChanged(e watcher.Event) {
	glog.V(1).Infof("external change to %s (op %d)", e.Path, e.Op)
	if m.session.Dirty() {
		m.status = "file changed on disk, ctrl+r discards your edits and reloads"
		return
	}
	changed, err := m.session.Reload()
	switch {
	case err != nil && store.IsNotFound(err):
		m.status = "file removed from disk"
	case err != nil:
		m.status = err.Error()
	case changed:
		m.status = "reloaded after external change"
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	bodyHeight := height - 3 // borders and status bar
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	treeWidth := width*2/5 - 2
	if treeWidth < 10 {
		treeWidth = 10
	}
	textWidth := width - treeWidth - 4
	if textWidth < 10 {
		textWidth = 10
	}

	m.tree = viewport.New(
		viewport.WithWidth(treeWidth),
		viewport.WithHeight(bodyHeight),
	)
	m.text.SetWidth(textWidth)
	m.text.SetHeight(bodyHeight)
	m.renderTree()
}

func (m *Model) treeHeight() int {
	return m.height - 3
}

// renderTree refreshes the tree pane contents and keeps the cursor in view.
func (m *Model) renderTree() {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		switch {
		case i == m.cursor && m.editing != editNone:
			lines[i] = m.editLine(r)
		case i == m.cursor && m.focus == treePane:
			lines[i] = selectedStyle.Render(r.plain())
		default:
			lines[i] = r.render()
		}
	}

	if h := m.treeHeight(); h > 0 {
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		if m.cursor >= m.offset+h {
			m.offset = m.cursor - h + 1
		}
	}
	m.tree.SetContent(strings.Join(lines, "\n"))
	m.tree.SetYOffset(m.offset)
}

func (m *Model) editLine(r row) string {
	indent := strings.Repeat("  ", r.depth)
	if m.editing == editKey {
		return indent + m.input.View()
	}
	return indent + keyStyle.Render(r.node.Name()) + " = " + m.input.View()
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	if m.width == 0 {
		return tea.NewView("loading...")
	}
	if m.dialog != nil {
		return tea.NewView(m.dialogView())
	}

	treeStyle, textStyle := paneStyle, focusedPaneStyle
	if m.focus == treePane {
		treeStyle, textStyle = focusedPaneStyle, paneStyle
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		treeStyle.Render(m.tree.View()),
		textStyle.Render(m.text.View()),
	)
	return tea.NewView(lipgloss.JoinVertical(lipgloss.Left, body, m.statusView()))
}

func (m *Model) statusView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.session.Path()))
	if m.session.Dirty() {
		b.WriteString(dirtyStyle.Render(" [+]"))
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render("  " + m.status))
	}

	var help []string
	for _, k := range m.keys.shortHelp() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(statusStyle.Render("  " + strings.Join(help, " · ")))
	return b.String()
}

func (m *Model) dialogView() string {
	box := dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dialogTitleStyle.Render(m.dialog.title),
		"",
		m.dialog.message,
		"",
		statusStyle.Render("enter/esc to continue"),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
