package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/render/term"
	"github.com/matzehuels/forcegraph/pkg/topology"
	"github.com/matzehuels/forcegraph/pkg/view"
)

const (
	defaultFPS = 30.0
	maxFPS     = 120.0

	// panStep is how far an arrow key pans, in screen units.
	panStep = 4.0
	// dragStep is how far hjkl move a grabbed node, in screen units.
	dragStep = 2.0
	zoomStep = 1.25

	// watchChrome is the number of rows taken by the header and footer.
	watchChrome = 2
)

// watchCommand creates the watch command: a live terminal view of the
// simulation.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags  graphFlags
		fps    float64
		labels bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the layout converge in the terminal",
		Long: `Watch steps the simulation once per frame and draws it in the terminal.

Keys:
  arrows      pan the view
  + / -       zoom in and out
  tab         select the next node (shift+tab: previous)
  space       pin or release the selected node
  h j k l     drag the pinned node
  p           pause or resume stepping
  f           fit the graph to the window
  r           rebuild the graph from its seed
  q           quit

The mouse works too: press on a node to pin it and drag it around, or press
on empty space to pan.`,
		Example: `  forcegraph watch
  forcegraph watch -t tree:3x3 --placement circle
  forcegraph watch -t grid:5x5 --gravity 0 --fps 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(fps > 0) || fps > maxFPS {
				return errors.New(errors.ErrCodeInvalidInput, "fps must be in (0, %g], got %v", maxFPS, fps)
			}
			cfg, err := c.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("labels") {
				cfg.Render.Labels = labels
			}

			opts := pipelineOptions(cfg, flags.pinned)
			runner := c.newRunner()
			build := func() (*force.Engine, error) { return runner.Build(opts) }

			m, err := newWatchModel(build, cfg.Topology, time.Duration(float64(time.Second)/fps), cfg.Render.Labels)
			if err != nil {
				return err
			}
			c.Logger.Debug("starting viewer", "topology", cfg.Topology, "nodes", m.engine.Len(), "fps", fps)

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			if _, err := p.Run(); err != nil {
				if ctxErr := cmd.Context().Err(); ctxErr != nil {
					return ctxErr
				}
				return err
			}
			printInfo("Stopped after %d steps", m.steps)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&fps, "fps", defaultFPS, "steps and redraws per second")
	cmd.Flags().BoolVar(&labels, "labels", true, "draw node names")

	return cmd
}

// =============================================================================
// watchModel - Interactive layout viewer
// =============================================================================

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// watchModel is the bubbletea model behind the watch command. The engine is
// only touched from Update, so no locking is needed.
type watchModel struct {
	build    func() (*force.Engine, error)
	engine   *force.Engine
	view     view.Transform
	drag     *view.Drag
	interval time.Duration

	title  string
	labels bool
	paused bool
	steps  int
	err    error

	width, height int

	// cursor indexes engine.Nodes(); -1 means no selection.
	cursor int
}

func newWatchModel(build func() (*force.Engine, error), title string, interval time.Duration, labels bool) (*watchModel, error) {
	m := &watchModel{
		build:    build,
		interval: interval,
		title:    title,
		labels:   labels,
		view:     view.Identity(),
	}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// reset rebuilds the engine and drops selection, drag state and step count.
func (m *watchModel) reset() error {
	e, err := m.build()
	if err != nil {
		return err
	}
	m.engine = e
	m.drag = view.NewDrag(e, &m.view, view.DefaultHitRadius)
	m.steps = 0
	m.cursor = -1
	m.fit()
	return nil
}

func (m *watchModel) canvasHeight() int {
	return max(m.height-watchChrome, 1)
}

func (m *watchModel) fit() {
	if m.width == 0 {
		return
	}
	m.view = term.FitView(m.engine.Snapshot(), m.width, m.canvasHeight())
}

func (m *watchModel) selected() (int, bool) {
	nodes := m.engine.Nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return 0, false
	}
	return nodes[m.cursor].ID, true
}

func (m *watchModel) Init() tea.Cmd {
	return tick(m.interval)
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			m.engine.Step()
			m.steps++
		}
		return m, tick(m.interval)

	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width, m.height = msg.Width, msg.Height
		if first {
			m.fit()
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case tea.KeyMsg:
		return m, m.key(msg)
	}
	return m, nil
}

func (m *watchModel) key(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up":
		m.view.Pan(0, panStep)
	case "down":
		m.view.Pan(0, -panStep)
	case "left":
		m.view.Pan(panStep, 0)
	case "right":
		m.view.Pan(-panStep, 0)
	case "+", "=":
		m.view.Zoom(zoomStep)
	case "-", "_":
		m.view.Zoom(1 / zoomStep)
	case "tab":
		m.cycle(1)
	case "shift+tab":
		m.cycle(-1)
	case " ":
		m.togglePin()
	case "h":
		m.err = m.drag.MoveBy(-dragStep, 0)
	case "l":
		m.err = m.drag.MoveBy(dragStep, 0)
	case "k":
		m.err = m.drag.MoveBy(0, -dragStep)
	case "j":
		m.err = m.drag.MoveBy(0, dragStep)
	case "p":
		m.paused = !m.paused
	case "f":
		m.fit()
	case "r":
		m.err = m.reset()
	}
	return nil
}

// cycle moves the selection. A held node is released first.
func (m *watchModel) cycle(dir int) {
	n := m.engine.Len()
	if n == 0 {
		return
	}
	m.drag.Release()
	if m.cursor < 0 {
		m.cursor = 0
		if dir < 0 {
			m.cursor = n - 1
		}
		return
	}
	m.cursor = ((m.cursor+dir)%n + n) % n
}

func (m *watchModel) togglePin() {
	id, ok := m.selected()
	if !ok {
		return
	}
	if held, grabbed := m.drag.Selected(); grabbed && held == id {
		m.drag.Release()
		return
	}
	m.err = m.drag.Grab(id)
}

// screenPoint converts a terminal cell to screen coordinates. The canvas
// starts below the header row and each row covers two screen units.
func screenPoint(col, row int) force.Vec {
	return force.Vec{X: float64(col), Y: float64(2 * (row - 1))}
}

func (m *watchModel) mouse(msg tea.MouseMsg) {
	p := screenPoint(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		id, hit := m.drag.Press(p)
		m.cursor = -1
		if hit {
			m.cursor = m.indexOf(id)
		}
	case tea.MouseActionMotion:
		if err := m.drag.Move(p); err != nil {
			m.err = err
		}
	case tea.MouseActionRelease:
		m.drag.Release()
	}
}

func (m *watchModel) indexOf(id int) int {
	for i, n := range m.engine.Nodes() {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (m *watchModel) View() string {
	if m.width == 0 {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %s · step %d · zoom %.2f",
		m.title, topology.Describe(m.engine.Nodes()), m.steps, m.view.Scale)))
	if m.paused {
		b.WriteString(" " + StyleWarning.Render("paused"))
	}
	id, has := m.selected()
	if has {
		state := "free"
		if n, ok := m.engine.Node(id); ok && n.Pinned {
			state = "pinned"
		}
		b.WriteString(" " + StyleHighlight.Render(fmt.Sprintf("node %d (%s)", id, state)))
	}
	if m.err != nil {
		b.WriteString(" " + styleIconError.Render(errors.UserMessage(m.err)))
	}
	b.WriteString("\n")

	canvas := term.Render(m.engine.Snapshot(), term.Options{
		Width:       m.width,
		Height:      m.canvasHeight(),
		Labels:      m.labels,
		View:        &m.view,
		Selected:    id,
		HasSelected: has,
	})
	b.WriteString(canvas.String())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("arrows pan · +/- zoom · tab select · space pin · hjkl drag · p pause · f fit · r reset · q quit"))
	return b.String()
}
