package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"mapedit/internal/config"
	"mapedit/internal/edit"
	"mapedit/internal/layer"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	// view
	projection string
	zoom       float64
	panX       int // micro-pixels
	panY       int
	rotation   float64 // degrees

	status    string
	statusErr bool

	// graphics list
	l list.Model

	// data
	layer *layer.Layer
	attrs edit.Attributes
	log   logrus.FieldLogger

	// last rendered map size, cells
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverTip    string

	// property form
	showForm bool
	tbl      table.Model
	in       textinput.Model
	editing  bool
	fields   []edit.Field
}

// New builds the model from the startup configuration.
func New(cfg *config.Config, log logrus.FieldLogger) Model {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := Model{
		helpVisible: true,
		projection:  cfg.Projection,
		zoom:        1.0,
		rotation:    cfg.ViewRotation,
		status:      "mapedit ready",
		attrs:       cfg.Attributes(),
		log:         log,
	}
	m.layer = layer.New(nil, layer.WithLogger(log))
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Graphics"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON). Press Enter to add; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// property form setup
	m.tbl = table.New(
		table.WithColumns([]table.Column{{Title: "Field", Width: 18}, {Title: "Value", Width: 26}}),
		table.WithFocused(true),
	)
	m.tbl.SetHeight(12)
	m.in = textinput.New()
	m.in.Prompt = "> "
	m.in.CharLimit = 64
	return m
}

// Layer is the graphics being edited.
func (m Model) Layer() *layer.Layer { return m.layer }

func (m Model) Init() tea.Cmd { return nil }
