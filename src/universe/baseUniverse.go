package universe

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lifecolony/src/colony"
)

//Options represents the Universe's configurable options
type Options struct {
	Width     int
	Height    int
	Density   float64       //initial live cells density, [0,1]
	Rate      float64       //population/eradication success rate in percent, [0,100]
	Seed      uint64        //random seed, 0 means seed from the clock
	Interval  time.Duration //delay between the generations in run mode
	MaxSteps  int           //0 means no limit
	PresetDir string        //directory with the preset colony files
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	Rate          float64
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 500
	DefMaxSteps           = 0
	DefPresetDir          = "stencils"
	MinRate               = 0
	MaxRate               = 100
)

const (
	RunningStateManual   = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

var DefaultUniverseOptions = Options{
	Width:     colony.DefWidth,
	Height:    colony.DefHeight,
	Density:   colony.DefDensity,
	Rate:      colony.DefRate,
	Interval:  DefSimulationInterval,
	MaxSteps:  DefMaxSteps,
	PresetDir: DefPresetDir,
}

//ErrUnknownTemplate is returned by SettleTemplate for the template which was never added
var ErrUnknownTemplate = errors.New("unknown template")

//BaseUniverse is the universe's engine host
//implements Universe interface
//the colony is modified only on the main loop goroutine, readers from other goroutines take the colony lock
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	colony struct {
		*colony.Colony
		sync.Mutex
	}
	rnd       *rand.Rand
	log       Logger
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	names     []string
	controlCh chan func()
	closeCh   chan bool
	quitCh    chan struct{} //closed when the main loop exits
	closeOnce sync.Once
	runID     uint64 //identifies the current run driver, main loop only
}

//NewBaseUniverse creates the BaseUniverse instance seeded with random cells
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	u := BaseUniverse{
		options:   *o,
		rnd:       rand.New(rand.NewPCG(seed, 0)),
		log:       NoOpLogger{},
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		quitCh:    make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	u.options.Seed = seed
	u.options.Rate = clampRate(o.Rate)
	u.colony.Colony = colony.New(colony.Options{
		Width:   o.Width,
		Height:  o.Height,
		Density: o.Density,
		Rate:    u.options.Rate,
	}, u.rnd)
	u.state.Rate = u.options.Rate
	u.state.LiveCells = u.colony.CellCount()
	go u.mainLoop()
	return &u
}

//SetLogger replaces the universe logger
func (u *BaseUniverse) SetLogger(l Logger) {
	if l == nil {
		l = NoOpLogger{}
	}
	u.exec(func() { u.log = l })
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.exec(func() {
		if _, ok := u.templates[tmpl.Name]; !ok {
			u.names = append(u.names, tmpl.Name)
		}
		u.templates[tmpl.Name] = tmpl
	})
}

//Templates returns the added templates in the order they were added
func (u *BaseUniverse) Templates() (templates []Template) {
	u.exec(func() {
		templates = make([]Template, 0, len(u.names))
		for _, name := range u.names {
			templates = append(templates, u.templates[name])
		}
	})
	return
}

//SettleTemplate replaces the colony with the seeding template placed in the center
//the generation counter is reset
func (u *BaseUniverse) SettleTemplate(name string) (err error) {
	u.exec(func() {
		tmpl, ok := u.templates[name]
		if !ok {
			err = fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
			return
		}
		err = u.replace(tmpl.Grid(u.colony.Width(), u.colony.Height()))
		if err == nil {
			u.log.Infof("settled template %q", name)
		}
	})
	return
}

//SettleWithRandomData replaces the colony with random data using the configured density
func (u *BaseUniverse) SettleWithRandomData() {
	u.exec(func() {
		mode := u.Status().RunningMode
		if mode != RunningStateManual && mode != RunningStateFinished {
			return
		}
		g := colony.Initialize(u.colony.Width(), u.colony.Height(), u.options.Density, u.rnd)
		if err := u.replace(g); err != nil {
			u.log.Errorf("settle with random data: %v", err)
		}
	})
}

//LoadPreset loads the preset colony file <PresetDir>/<name>.txt
func (u *BaseUniverse) LoadPreset(name string) error {
	return u.Load(filepath.Join(u.options.PresetDir, name+".txt"))
}

//Load replaces the colony with the one stored in the file
//the current colony is kept when the file can't be read or is illegal
func (u *BaseUniverse) Load(path string) (err error) {
	u.exec(func() {
		f, openErr := os.Open(path)
		if openErr != nil {
			err = fmt.Errorf("load %s: %w", path, openErr)
			return
		}
		defer f.Close()

		u.colony.Lock()
		err = u.colony.Load(f)
		u.colony.Unlock()
		if err != nil {
			err = fmt.Errorf("load %s: %w", path, err)
			u.log.Warnf("%v", err)
			return
		}
		u.log.Infof("loaded colony from %s", path)
		u.replaced()
	})
	return
}

//Save writes the colony to the file, the .txt extension is added when the path has no extension
//returns the path actually written
func (u *BaseUniverse) Save(path string) (saved string, err error) {
	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	u.exec(func() {
		f, createErr := os.Create(path)
		if createErr != nil {
			err = fmt.Errorf("save %s: %w", path, createErr)
			return
		}
		if err = u.colony.Save(f); err != nil {
			_ = f.Close()
			err = fmt.Errorf("save %s: %w", path, err)
			return
		}
		if err = f.Close(); err != nil {
			err = fmt.Errorf("save %s: %w", path, err)
			return
		}
		saved = path
		u.log.Infof("saved colony to %s", path)
	})
	return
}

//Populate brings dead cells inside the region to life with the current rate
//the part of the region outside the colony is ignored
func (u *BaseUniverse) Populate(r colony.Region) {
	u.edit(func() { u.colony.Populate(r) })
}

//Eradicate kills alive cells inside the region with the current rate
//the part of the region outside the colony is ignored
func (u *BaseUniverse) Eradicate(r colony.Region) {
	u.edit(func() { u.colony.Eradicate(r) })
}

//PopulateOne makes the cell at row, col alive, coordinates outside the colony are ignored
func (u *BaseUniverse) PopulateOne(row int, col int) {
	u.edit(func() {
		if row < 0 || col < 0 || row >= u.colony.Height() || col >= u.colony.Width() {
			return
		}
		u.colony.PopulateOne(row, col)
	})
}

//SetRate changes the population/eradication success rate, the value is clamped to [0,100]
func (u *BaseUniverse) SetRate(rate float64) {
	rate = clampRate(rate)
	u.exec(func() {
		u.colony.SetRate(rate)
		u.state.Lock()
		u.state.Rate = rate
		u.state.Unlock()
		u.refreshView()
	})
}

//SetInterval changes the delay between the generations in run mode
func (u *BaseUniverse) SetInterval(interval time.Duration) {
	u.exec(func() {
		u.state.Lock()
		u.options.Interval = interval
		u.state.Unlock()
		u.refreshView()
	})
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.exec(func() {
		u.views = append(u.views, v)
	})
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	u.state.Lock()
	defer u.state.Unlock()
	return u.options
}

//Grid returns the copy of the current generation
func (u *BaseUniverse) Grid() *colony.Grid {
	u.colony.Lock()
	defer u.colony.Unlock()
	return u.colony.Grid().Clone()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.send(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.send(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.send(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.send(u.clear)
}

//Close stops the simulation and the main loop, waits for the main loop to exit
//commands sent after Close are dropped, calling Close again is a no-op
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() {
		u.closeCh <- true
	})
	<-u.quitCh
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	defer close(u.quitCh)
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			//the run driver exits on the closed quitCh
			return
		}
	}
}

//send queues the command for the main loop, the command is dropped when the loop has exited
func (u *BaseUniverse) send(cmd func()) bool {
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.quitCh:
		return false
	}
}

//exec runs fn on the main loop and waits for it
//must not be called from the main loop itself
func (u *BaseUniverse) exec(fn func()) {
	done := make(chan struct{})
	if !u.send(func() {
		defer close(done)
		fn()
	}) {
		return
	}
	select {
	case <-done:
	case <-u.quitCh:
	}
}

//edit applies the in-place colony modification and refreshes the counters
func (u *BaseUniverse) edit(fn func()) {
	u.exec(func() {
		u.colony.Lock()
		fn()
		liveCells := u.colony.CellCount()
		u.colony.Unlock()
		u.state.Lock()
		u.state.LiveCells = liveCells
		u.state.Unlock()
		u.refreshView()
	})
}

//replace swaps the colony grid and resets the generation counter
func (u *BaseUniverse) replace(g *colony.Grid) error {
	u.colony.Lock()
	err := u.colony.SetColony(g)
	u.colony.Unlock()
	if err != nil {
		return err
	}
	u.replaced()
	return nil
}

//replaced resets the counters after the whole colony was replaced
func (u *BaseUniverse) replaced() {
	liveCells := u.colony.CellCount()
	u.state.Lock()
	u.state.Generation = 0
	u.state.LiveCells = liveCells
	mode := u.state.RunningMode
	u.state.Unlock()
	if mode == RunningStateFinished {
		u.switchRunningState(RunningStateManual)
	}
	u.refreshView()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if u.Status().RunningMode == RunningStateRun {
		return
	}
	u.runID++
	id := u.runID
	u.switchRunningState(RunningStateRun)
	go u.drive(id)
}

//drive queues one step per interval while the run identified by id is current
//a Stop followed by Run starts a new driver, the old one exits on its next tick
func (u *BaseUniverse) drive(id uint64) {
	done := make(chan bool, 1)
	for {
		if !u.send(func() {
			if u.runID != id || u.Status().RunningMode != RunningStateRun {
				done <- false
				return
			}
			u.step()
			done <- u.runID == id && u.Status().RunningMode == RunningStateRun
		}) {
			return
		}
		select {
		case more := <-done:
			if !more {
				return
			}
		case <-u.quitCh:
			return
		}
		if interval := u.Options().Interval; interval > 0 {
			select {
			case <-time.After(interval):
			case <-u.quitCh:
				return
			}
		}
	}
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.Status().RunningMode == RunningStateRun {
		u.runID++
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one generation calculation for the entire colony
//an extinct colony is not advanced, the universe is switched to the finished state instead
func (u *BaseUniverse) step() {
	finished := false
	st := u.Status()
	rm := st.RunningMode
	maxIter := u.Options().MaxSteps
	defer func() {
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	if !u.colony.AnyCellsLeft() || (maxIter != 0 && st.Generation >= maxIter) {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	next := colony.Advance(u.colony.Grid())
	liveCells := colony.CellCount(next)
	u.colony.Lock()
	err := u.colony.SetColony(next)
	u.colony.Unlock()
	if err != nil {
		//unreachable, Advance keeps the dimensions
		u.log.Errorf("step: %v", err)
		finished = true
		return
	}

	u.state.Lock()
	u.state.Generation++
	u.state.LiveCells = liveCells
	u.state.IterationTime = time.Since(start)
	gen := u.state.Generation
	u.state.Unlock()
	u.log.Debugf("generation %v: %v live cells", gen, liveCells)

	if liveCells == 0 || (maxIter != 0 && gen >= maxIter) {
		finished = true
	}
}

//clear clears the colony, reset all counters
func (u *BaseUniverse) clear() {
	u.runID++
	u.colony.Lock()
	_ = u.colony.SetColony(colony.NewGrid(u.colony.Width(), u.colony.Height()))
	u.colony.Unlock()

	u.state.Lock()
	u.state.Generation = 0
	u.state.LiveCells = 0
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}

func clampRate(rate float64) float64 {
	if rate < MinRate {
		return MinRate
	}
	if rate > MaxRate {
		return MaxRate
	}
	return rate
}
