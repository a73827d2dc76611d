package universe

import (
	"math/rand"
	"sync"
	"time"
)

//Options represents the engine's configurable options
type Options struct {
	Width           uint32
	Height          uint32
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            SeedFunc //initial cell assignment, nil leaves the grid dead
}

//Status represents the status of the engine at a concrete moment
type Status struct {
	Generation  int
	RunningMode RunningState
	LiveCells   int
	StepTime    time.Duration
}

//Frame is a copied snapshot of the grid handed out to viewers
type Frame struct {
	Width  uint32
	Height uint32
	Cells  []Cell
}

//Viewer is the interface to any viewer - the object who can display
//simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(e *Engine)
	Start()
}

//RunningState is the engine running mode at a concrete moment
type RunningState int

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefMaxSkippedTicks    = 5
)

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Seed:            DefaultSeed,
}

//Engine owns a Universe and advances it generation by generation
//all mutating entry points enqueue commands on the control channel and
//return immediately, the main loop goroutine executes them one at a time
type Engine struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	grid struct {
		u *Universe
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
}

//NewEngine creates an Engine instance
//the stateCh may be nil when no caller consumes status updates
func NewEngine(o *Options, stateCh chan Status) (*Engine, error) {
	if o == nil {
		o = &DefaultOptions
	}

	u, err := NewSized(o.Width, o.Height, o.Seed)
	if err != nil {
		return nil, err
	}

	e := Engine{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	e.grid.u = u
	e.state.LiveCells = u.Population()

	for _, tmpl := range BuiltinTemplates() {
		e.templates[tmpl.Name] = tmpl
	}

	e.refreshView()
	go e.mainLoop()
	return &e, nil
}

//AddTemplate adds a seeding template to the internal storage
//the universe can be populated with it by calling SettleTemplate
func (e *Engine) AddTemplate(tmpl Template) {
	e.templates[tmpl.Name] = tmpl
}

//Settle brings the cells at the given [x,y] coordinates to life
func (e *Engine) Settle(vc [][]int) {
	e.grid.Lock()
	e.settle(vc)
	e.state.LiveCells = e.grid.u.Population()
	e.grid.Unlock()
	e.refreshView()
}

//SettleTemplate populates the universe with the named seeding template
func (e *Engine) SettleTemplate(name string) {
	tmpl, ok := e.templates[name]
	if !ok {
		return
	}
	e.Settle(tmpl.Coordinates)
}

//SettleWithRandomData populates the universe with random live cells
func (e *Engine) SettleWithRandomData() {
	if e.state.RunningMode == RunningStateManual || e.state.RunningMode == RunningStateFinished {
		e.controlCh <- e.clear
		e.controlCh <- func() {
			e.grid.Lock()
			u := e.grid.u
			for i := 0; i < int(u.Width())*int(u.Height()); i++ {
				e.settle([][]int{{rand.Intn(int(u.Width())), rand.Intn(int(u.Height()))}})
			}
			e.state.LiveCells = u.Population()
			e.grid.Unlock()
			e.refreshView()
		}
	}
}

//ToggleCell inverses the cell state at point x, y
func (e *Engine) ToggleCell(x int, y int) {
	e.grid.Lock()
	u := e.grid.u
	if x < 0 || y < 0 || x >= int(u.Width()) || y >= int(u.Height()) {
		e.grid.Unlock()
		return
	}
	u.Toggle(uint32(y), uint32(x))
	e.state.LiveCells = u.Population()
	e.grid.Unlock()
	e.refreshView()
}

//RegisterViewer registers the viewer - the engine will call the viewer
//back whenever the state changes
func (e *Engine) RegisterViewer(v Viewer) {
	e.views = append(e.views, v)
	v.Register(e)
}

//StateCh returns the channel with the engine's status updates
func (e *Engine) StateCh() chan Status {
	return e.stateCh
}

//Status returns the current engine status
func (e *Engine) Status() Status {
	e.state.Lock()
	defer e.state.Unlock()
	return e.state.Status
}

//Options returns the engine configuration
func (e *Engine) Options() Options {
	return e.options
}

//Frame returns a copied snapshot of the current generation
func (e *Engine) Frame() Frame {
	e.grid.Lock()
	defer e.grid.Unlock()
	u := e.grid.u
	cells := make([]Cell, len(u.Cells()))
	copy(cells, u.Cells())
	return Frame{Width: u.Width(), Height: u.Height(), Cells: cells}
}

//Render returns the text rendering of the current generation
func (e *Engine) Render() string {
	e.grid.Lock()
	defer e.grid.Unlock()
	return e.grid.u.Render()
}

//Run starts the simulation, returns immediately
func (e *Engine) Run() {
	e.controlCh <- e.run
}

//Stop stops the simulation, returns immediately
func (e *Engine) Stop() {
	e.controlCh <- e.stop
}

//Step does one simulation step, returns immediately
//the Status will be written to the stateCh on start and on finish
func (e *Engine) Step() {
	e.controlCh <- e.step
}

//Clear kills all cells and resets all counters, returns immediately
func (e *Engine) Clear() {
	e.controlCh <- e.clear
}

//Close stops the main loop and closes the internal channels, returns immediately
func (e *Engine) Close() {
	e.closeCh <- true
}

//mainLoop - the main cycle, runs as a goroutine
//waits for commands and executes them
func (e *Engine) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-e.controlCh:
			cmd()
		case c = <-e.closeCh:

		}
	}
	close(e.closeCh)
	close(e.controlCh)
}

//settle brings cells to life at the [x,y] pairs, out of range pairs are skipped
//caller must hold the grid lock
func (e *Engine) settle(vc [][]int) {
	u := e.grid.u
	for _, v := range vc {
		if v[0] < 0 || v[1] < 0 || v[0] >= int(u.Width()) || v[1] >= int(u.Height()) {
			continue
		}
		u.Set(uint32(v[1]), uint32(v[0]), Alive)
	}
}

//switchRunningState switches the engine to the given RunningState
//also writes the new state to the stateCh to signal upper control software
func (e *Engine) switchRunningState(to RunningState) {
	e.state.Lock()
	e.state.RunningMode = to
	st := e.state.Status
	e.state.Unlock()
	if e.stateCh != nil {
		e.stateCh <- st
	}
}

//run starts the simulation cycle
//it stops on Stop() or when the boundary conditions are reached
func (e *Engine) run() {
	go func() {
		e.switchRunningState(RunningStateRun)
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := e.state.RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > e.options.MaxSkippedTicks {
				e.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the engine is still busy with the previous step
			if mode != RunningStateStep {
				skipped = 0
				e.controlCh <- func() {
					e.step()
					done <- true
				}
				<-done
			} else {
				skipped++
			}
			if e.options.Interval > 0 {
				time.Sleep(e.options.Interval)
			}
		}
	}()
}

//stop stops the running cycle
func (e *Engine) stop() {
	if e.state.RunningMode == RunningStateRun {
		e.switchRunningState(RunningStateManual)
	}
}

//step computes the next generation for the entire universe
func (e *Engine) step() {
	finished := false
	rm := e.state.RunningMode
	maxSteps := e.options.MaxSteps
	e.state.Generation++
	defer func() {
		if finished {
			e.switchRunningState(RunningStateFinished)
		} else {
			e.switchRunningState(rm)
		}
		e.refreshView()
	}()

	if maxSteps != 0 && e.state.Generation >= maxSteps {
		finished = true
		return
	}
	e.switchRunningState(RunningStateStep)
	alive, changed := e.nextGeneration()
	if !alive || !changed {
		finished = true
	}
}

//clear wipes the universe, resets all counters
func (e *Engine) clear() {
	e.state.Lock()
	e.grid.Lock()

	e.state.Generation = 0
	e.state.LiveCells = 0
	cells := e.grid.u.Cells()
	for i := range cells {
		cells[i] = Dead
	}
	e.state.RunningMode = RunningStateManual
	e.grid.Unlock()
	e.state.Unlock()
	e.switchRunningState(RunningStateManual)
	e.refreshView()
}

//nextGeneration advances the universe by one tick
//Tick swaps in a freshly built cell slice, so the reference taken before
//the call stays a snapshot of the previous generation and the comparison
//detects whether anything changed
func (e *Engine) nextGeneration() (hasLiveCells bool, changed bool) {
	e.grid.Lock()
	defer e.grid.Unlock()
	start := time.Now()
	u := e.grid.u

	prev := u.Cells()
	u.Tick()
	cur := u.Cells()

	liveCells := 0
	for i := range cur {
		liveCells += int(cur[i])
		changed = changed || cur[i] != prev[i]
	}

	e.state.LiveCells = liveCells
	e.state.StepTime = time.Since(start)
	hasLiveCells = liveCells > 0
	return
}

//refreshView calls the Refresh event on all registered views
func (e *Engine) refreshView() {
	for _, v := range e.views {
		v.Refresh()
	}
}
