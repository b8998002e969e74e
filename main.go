package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type options struct {
	imagePath  string
	configPath string
	window     bool
	verbose    bool
}

func main() {
	config := loadConfig()
	cmd := newRootCmd(config, func(opts options) error {
		return run(config, opts)
	})
	if err := cmd.Execute(); err != nil {
		fatal(err)
	}
}

func run(config *Config, opts options) error {
	logFile, err := setupLogging(config.LogFile, opts.verbose)
	if err != nil {
		return err
	}
	defer logFile.Close()

	img, err := loadImage(opts.imagePath)
	if err != nil {
		return err
	}

	sound := newSoundPlayer(config.Sound)
	defer sound.Close()

	if opts.window {
		return runWindow(config, img, sound)
	}
	return runTerminal(config, img, sound)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jigsaw:", err)
	log.Fatal(err)
}

// newRootCmd builds the command line. Flags overlay config, but only the
// ones actually given, so values from config files survive.
func newRootCmd(config *Config, run func(options) error) *cobra.Command {
	var opts options
	var (
		rows, cols  int
		duration    float64
		solveRandom bool
		hints       bool
		scale       float64
		fps         int
		seed        uint64
		sound       bool
		logPath     string
		exportDir   string
	)

	cmd := &cobra.Command{
		Use:   "jigsaw [flags] IMAGE",
		Short: "Cut a picture into a jigsaw puzzle and play it",
		Long: `Cut a picture into a jigsaw puzzle and play it in the terminal or a window.

Examples:
  jigsaw cat.png
  jigsaw --rows 6 --cols 8 cat.jpg
  jigsaw --window --config ~/jigsaw.yaml cat.webp`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.imagePath = args[0]
			if opts.configPath != "" {
				if err := config.LoadFile(opts.configPath); err != nil {
					return err
				}
			}

			flags := cmd.Flags()
			if flags.Changed("rows") {
				config.Rows = rows
			}
			if flags.Changed("cols") {
				config.Columns = cols
			}
			if flags.Changed("duration") {
				config.AnimationDuration = duration
			}
			if flags.Changed("solve-random") {
				config.SolveRandom = solveRandom
			}
			if flags.Changed("hints") {
				config.HintsEnabled = hints
			}
			if flags.Changed("scale") {
				config.ScaleMultiplier = scale
			}
			if flags.Changed("fps") {
				config.FrameRate = fps
			}
			if flags.Changed("seed") {
				config.Seed = seed
			}
			if flags.Changed("sound") {
				config.Sound = sound
			}
			if flags.Changed("log") {
				config.LogFile = logPath
			}
			if flags.Changed("export-dir") {
				config.ExportDirectory = exportDir
			}
			if err := config.Validate(); err != nil {
				return err
			}
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml/.yml or key=value)")
	f.BoolVarP(&opts.window, "window", "w", false, "Open a window instead of drawing in the terminal")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	f.IntVarP(&rows, "rows", "r", config.Rows, "Grid rows")
	f.IntVar(&cols, "cols", config.Columns, "Grid columns")
	f.Float64Var(&duration, "duration", config.AnimationDuration, "Solve animation length in frames")
	f.BoolVar(&solveRandom, "solve-random", config.SolveRandom, "Randomise solve duration per piece")
	f.BoolVar(&hints, "hints", config.HintsEnabled, "Highlight pieces close to their place")
	f.Float64Var(&scale, "scale", config.ScaleMultiplier, "Surface pixels per client unit")
	f.IntVar(&fps, "fps", config.FrameRate, "Frames per second")
	f.Uint64Var(&seed, "seed", config.Seed, "Random seed (0 = time based)")
	f.BoolVar(&sound, "sound", config.Sound, "Play snap and solve sounds")
	f.StringVar(&logPath, "log", config.LogFile, "Log file")
	f.StringVar(&exportDir, "export-dir", config.ExportDirectory, "Directory for PNG exports")
	return cmd
}

func runTerminal(config *Config, img image.Image, sound SoundPlayer) error {
	m, err := initialModel(config, img, sound)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

func initialModel(config *Config, img image.Image, sound SoundPlayer) (model, error) {
	pz, err := NewPuzzle(*config, img.Bounds())
	if err != nil {
		return model{}, err
	}
	return model{
		config:    config,
		source:    img,
		puzzle:    pz,
		canvas:    NewCanvas(img),
		scheduler: newFrameScheduler(config.FrameRate),
		sound:     sound,
		mode:      ModePlaying,
		dirty:     true,
	}, nil
}

func (m model) Init() tea.Cmd {
	return m.scheduler.Start()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.puzzle.Resize(m.viewport())
		if !m.puzzle.Generated() {
			m.newPuzzle()
		}
		m.dirty = true
		return m, nil

	case frameMsg:
		if !m.scheduler.Accept(msg) {
			return m, nil
		}
		m.advanceFrame()
		return m, m.scheduler.Next()

	case tea.MouseMsg:
		if m.help || m.mode == ModeConfirm {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// advanceFrame is one tick of the render loop: step solve animations,
// then redraw if anything changed.
func (m *model) advanceFrame() {
	report := m.puzzle.Advance()
	if report.Snapped > 0 {
		m.sound.Snap()
		m.dirty = true
	}
	if m.puzzle.Animating() {
		m.dirty = true
	} else if m.mode == ModeSolving {
		m.mode = ModePlaying
	}
	if report.Solved {
		m.onSolved()
	}
	if m.dirty {
		m.renderFrame()
	}
}

// resumeMode is the mode to return to after a cancelled confirmation.
func (m *model) resumeMode() Mode {
	switch {
	case m.puzzle.Solved():
		return ModeSolved
	case m.puzzle.Animating():
		return ModeSolving
	default:
		return ModePlaying
	}
}

func (m *model) onSolved() {
	m.mode = ModeSolved
	m.sound.Solved()
	m.successMessage = "Solved!"
	m.errorMessage = ""
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	client := terminalClient(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.puzzle.Press(client) {
			m.errorMessage = ""
			m.successMessage = ""
			m.dirty = true
		}
	case tea.MouseActionMotion:
		if m.puzzle.Dragging() {
			m.puzzle.Move(client)
			m.dirty = true
		}
	case tea.MouseActionRelease:
		r, ok := m.puzzle.Release()
		if !ok {
			return
		}
		m.dirty = true
		m.recordDrop(r)
		if r.Snapped {
			m.sound.Snap()
		}
		if r.Solved {
			m.onSolved()
		}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.scheduler.Stop()
		return m, tea.Quit
	}

	if m.help {
		if key == "?" || key == "esc" || key == "q" {
			m.help = false
			m.dirty = true
		}
		return m, nil
	}

	if m.mode == ModeConfirm {
		switch key {
		case "y", "Y", "enter":
			m.mode = ModePlaying
			switch m.confirmAction {
			case ConfirmQuit:
				m.scheduler.Stop()
				return m, tea.Quit
			case ConfirmNewPuzzle:
				m.newPuzzle()
				return m, m.scheduler.Start()
			}
		case "n", "N", "esc":
			m.mode = m.resumeMode()
		}
		return m, nil
	}

	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "q":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case "n":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmNewPuzzle
	case "?":
		m.help = true
	case "s":
		if err := m.puzzle.Solve(); err != nil {
			m.errorMessage = err.Error()
		} else if !m.puzzle.Solved() {
			m.mode = ModeSolving
			m.clearHistory()
		}
	case "t":
		m.puzzle.ToggleHints(!m.puzzle.Hints())
	case "v":
		m.puzzle.SetFilter(m.puzzle.Filter().Next())
	case "u":
		if err := m.undo(); err != nil {
			m.errorMessage = err.Error()
		}
	case "ctrl+r":
		if err := m.redo(); err != nil {
			m.errorMessage = err.Error()
		}
	case "e":
		filename, err := m.config.GetExportPath(exportFilename(time.Now()))
		if err == nil {
			err = exportPNG(filename, m.canvas, m.puzzle)
		}
		if err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "Exported " + filename
		}
	case "y":
		if err := writeClipboardText(progressLine(m.puzzle)); err != nil {
			m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		} else {
			m.successMessage = "Copied progress"
		}
	default:
		m.handlePan(key, m.getMoveSpeed(key))
	}
	m.dirty = true
	return m, nil
}

// newPuzzle replaces the current grid with a freshly cut and scattered one.
func (m *model) newPuzzle() {
	m.clearHistory()
	m.mode = ModePlaying
	if err := startPuzzle(context.Background(), m.puzzle); err != nil {
		m.errorMessage = err.Error()
		log.WithError(err).Warn("could not start puzzle")
	}
	m.dirty = true
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := m.frame
	if m.help {
		body = m.helpView()
	}
	return body + "\n" + m.statusLine()
}
