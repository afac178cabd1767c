package application

import (
	"io"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"goditor/buffer"
	"goditor/commands"
	"goditor/config"
	"goditor/editor"
	"goditor/files"
	"goditor/highlight"
)

// Settings provides the current configuration.
type Settings interface {
	Editor() config.EditorConfig
}

type Focus int

const (
	FocusEditor Focus = iota
	FocusExplorer
)

// Tab is one open document with its own cursor and viewport.
type Tab struct {
	Path     string
	Name     string
	Language string
	Buffer   *buffer.Buffer
	Cursor   *editor.Cursor
	Viewport editor.Viewport
	Modified bool
}

func newTab(path string, buf *buffer.Buffer) *Tab {
	name := "Untitled"
	if path != "" {
		name = filepath.Base(path)
	}
	return &Tab{
		Path:     path,
		Name:     name,
		Language: highlight.Language(path),
		Buffer:   buf,
		Cursor:   editor.NewCursor(buf),
	}
}

type Application struct {
	Tabs    []*Tab
	Current int

	Explorer         *files.Explorer
	ExplorerViewport editor.Viewport
	ShowExplorer     bool
	ShowHelp         bool
	Focus            Focus

	Status      string
	Highlighter *highlight.Highlighter
	Quit        bool

	settings       Settings
	commands       *commands.Commands
	closePending   bool
	explorerIgnore []string

	log *log.Logger
}

// New creates the application with the explorer rooted at dir and one empty tab.
func New(settings Settings, log *log.Logger, dir string) (*Application, error) {
	cfg := settings.Editor()
	app := &Application{
		ShowExplorer: cfg.ShowExplorer,
		Highlighter:  highlight.New(cfg.Theme, log),
		settings:     settings,
		commands:     commands.NewCommands(log),
		log:          log,
	}
	if err := app.SetDirectory(dir); err != nil {
		return nil, err
	}
	app.registerCommands()
	app.NewFile()
	return app, nil
}

func (app *Application) registerCommands() {
	app.commands.Register("new", app.NewFile)
	app.commands.Register("open", app.FocusExplorer)
	app.commands.Register("save", func() { app.SaveCurrent() })
	app.commands.Register("close", app.CloseTab)
	app.commands.Register("quit", func() { app.Quit = true })
	app.commands.Register("next-tab", app.NextTab)
	app.commands.Register("prev-tab", app.PrevTab)
	app.commands.Register("toggle-explorer", app.ToggleExplorer)
	app.commands.Register("help", app.ToggleHelp)
}

func (app *Application) Settings() config.EditorConfig {
	return app.settings.Editor()
}

// ApplyConfig picks up settings that changed after startup.
func (app *Application) ApplyConfig(cfg config.EditorConfig) {
	app.Highlighter.SetTheme(cfg.Theme)
	if !slices.Equal(cfg.ExplorerIgnore, app.explorerIgnore) {
		if err := app.openExplorer(app.Explorer.Root.Path, cfg.ExplorerIgnore); err != nil {
			app.log.Printf("Could not reload the explorer: %v", err)
		}
	}
}

// CommandNames lists the commands key bindings can refer to.
func (app *Application) CommandNames() []string {
	return app.commands.Names()
}

func (app *Application) SetStatus(message string) {
	app.Status = message
}

func (app *Application) CurrentTab() *Tab {
	return app.Tabs[app.Current]
}

func (app *Application) addTab(tab *Tab) {
	app.Tabs = append(app.Tabs, tab)
	app.Current = len(app.Tabs) - 1
	app.Focus = FocusEditor
	app.closePending = false
}

func (app *Application) NewFile() {
	app.addTab(newTab("", buffer.New("")))
	app.SetStatus("New file created")
}

// OpenFile opens path in a new tab, or switches to the tab that already has it.
// A path that does not exist yet opens as an empty document.
func (app *Application) OpenFile(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for i, tab := range app.Tabs {
		if tab.Path == path {
			app.Current = i
			app.Focus = FocusEditor
			return nil
		}
	}

	buf, err := files.Read(path)
	if err != nil {
		app.SetStatus("Error opening file: " + err.Error())
		return err
	}
	app.addTab(newTab(path, buf))
	app.SetStatus("Opened file: " + path)
	app.log.Printf("Opened %v (%d lines)", path, buf.LineCount())
	return nil
}

func (app *Application) SaveCurrent() error {
	tab := app.CurrentTab()
	if tab.Path == "" {
		app.SetStatus("Save as not implemented yet")
		return nil
	}

	var content io.WriterTo = tab.Buffer
	if app.settings.Editor().TrimFiles {
		content = strings.NewReader(trimTrailingWhitespace(tab.Buffer.String()))
	}
	if err := files.Write(tab.Path, content); err != nil {
		app.SetStatus("Error saving file: " + err.Error())
		app.log.Printf("Could not save %v: %v", tab.Path, err)
		return err
	}
	tab.Modified = false
	app.SetStatus("Saved " + tab.Path)
	app.log.Printf("Saved %v", tab.Path)
	return nil
}

func trimTrailingWhitespace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// CloseTab closes the current tab. Unsaved changes need a second close.
// Closing the last tab leaves a new empty one.
func (app *Application) CloseTab() {
	tab := app.CurrentTab()
	if tab.Modified && !app.closePending {
		app.closePending = true
		app.SetStatus("Unsaved changes in " + tab.Name + ", close again to discard")
		return
	}
	app.closePending = false

	app.Tabs = append(app.Tabs[:app.Current], app.Tabs[app.Current+1:]...)
	if len(app.Tabs) == 0 {
		app.NewFile()
		return
	}
	app.Current = min(app.Current, len(app.Tabs)-1)
	app.SetStatus("Closed " + tab.Name)
}

func (app *Application) NextTab() {
	app.Current = (app.Current + 1) % len(app.Tabs)
	app.closePending = false
}

func (app *Application) PrevTab() {
	app.Current = (app.Current + len(app.Tabs) - 1) % len(app.Tabs)
	app.closePending = false
}

func (app *Application) ToggleExplorer() {
	app.ShowExplorer = !app.ShowExplorer
	if !app.ShowExplorer {
		app.Focus = FocusEditor
	}
}

func (app *Application) ToggleHelp() {
	app.ShowHelp = !app.ShowHelp
}

func (app *Application) FocusExplorer() {
	app.ShowExplorer = true
	app.Focus = FocusExplorer
}

// SetDirectory makes dir the root of the file explorer.
func (app *Application) SetDirectory(dir string) error {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return app.openExplorer(dir, app.settings.Editor().ExplorerIgnore)
}

func (app *Application) openExplorer(dir string, ignore []string) error {
	explorer, err := files.NewExplorer(dir, ignore)
	if err != nil {
		return err
	}
	app.Explorer = explorer
	app.ExplorerViewport = editor.Viewport{}
	app.explorerIgnore = slices.Clone(ignore)
	return nil
}

// HandleKey routes one key press: help first, then key bindings, then the
// focused panel.
func (app *Application) HandleKey(ev *tcell.EventKey) {
	if app.ShowHelp {
		app.ShowHelp = false
		return
	}

	if name := BindingName(ev); name != "" {
		if command, ok := app.settings.Editor().Keybindings[name]; ok {
			if err := app.commands.Exec(command); err != nil {
				app.SetStatus("Unknown command: " + command)
			}
			return
		}
	}

	if app.Focus == FocusExplorer && app.ShowExplorer {
		app.handleExplorerKey(ev)
		return
	}

	action := ActionFromKey(ev)
	if action.Kind == editor.ActionNone {
		return
	}
	app.Status = ""
	app.closePending = false
	tab := app.CurrentTab()
	if tab.Cursor.Apply(action) {
		tab.Modified = true
	}
}

func (app *Application) handleExplorerKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		app.Explorer.MoveUp()
	case tcell.KeyDown:
		app.Explorer.MoveDown()
	case tcell.KeyLeft:
		app.Explorer.Collapse()
	case tcell.KeyEnter, tcell.KeyRight:
		node, err := app.Explorer.Activate()
		if err != nil {
			app.SetStatus("Error reading directory: " + err.Error())
			return
		}
		if node != nil {
			app.OpenFile(node.Path)
		}
	case tcell.KeyEscape:
		app.Focus = FocusEditor
	}
}
