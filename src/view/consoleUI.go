package view

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifecolony/src/colony"
	"lifecolony/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//tool is the current mouse tool
type tool int

const (
	toolFree tool = iota
	toolPopulate
	toolEradicate
)

const (
	rateStep     = 5
	intervalStep = 100 * time.Millisecond
	minInterval  = 100 * time.Millisecond
	maxInterval  = 900 * time.Millisecond
)

type ConsoleUI struct {
	u universe.Universe
	g *gocui.Gui
	k []keyBindings

	//file used by the save and load commands
	path string

	mu     sync.Mutex
	tool   tool
	anchor *[2]int //first corner [x,y] of the rectangle being selected
	msg    string

	liveFiller   string
	deadFiller   string
	anchorFiller string
}

//presetKeys load the numbered preset files <presets>/1.txt .. 9.txt
var presetKeys = []gocui.Key{
	gocui.KeyF1, gocui.KeyF2, gocui.KeyF3,
	gocui.KeyF4, gocui.KeyF5, gocui.KeyF6,
	gocui.KeyF7, gocui.KeyF8, gocui.KeyF9,
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}

	toolDescr = map[tool]string{
		toolFree:      aurora.Colorize("freestyle", aurora.GreenFg).String(),
		toolPopulate:  aurora.Colorize("populate", aurora.CyanFg).String(),
		toolEradicate: aurora.Colorize("eradicate", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the interactive terminal view
//path is the colony file for the save and load commands
func NewViewTerminal(path string) *ConsoleUI {

	var err error
	t := ConsoleUI{
		path:         path,
		liveFiller:   aurora.Green("█").BgBrightGreen().String(),
		deadFiller:   "░",
		anchorFiller: aurora.Yellow("▒").BgYellow().String(),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Settle with random", t.cmdSettleWithRandom, ""},
		{'p', "P", "Populate tool", t.cmdTool(toolPopulate), ""},
		{'e', "E", "Eradicate tool", t.cmdTool(toolEradicate), ""},
		{'f', "F", "Freestyle tool", t.cmdTool(toolFree), ""},
		{'+', "+", "Rate up", t.cmdRate(rateStep), ""},
		{'-', "-", "Rate down", t.cmdRate(-rateStep), ""},
		{']', "]", "Slower", t.cmdInterval(intervalStep), ""},
		{'[', "[", "Faster", t.cmdInterval(-intervalStep), ""},
		{'o', "O", "Save", t.cmdSave, ""},
		{'l', "L", "Load", t.cmdLoad, ""},
		{gocui.MouseLeft, "MOUSE", "Apply the tool", t.cmdMouseClick, "battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

//AddTemplateKeys binds the digit keys to the universe templates
func (t *ConsoleUI) AddTemplateKeys(templates []universe.Template) {
	var k []keyBindings
	for i, tmpl := range templates {
		if i > 8 {
			break
		}
		name := tmpl.Name
		k = append(k, keyBindings{
			rune('1' + i),
			string(rune('1' + i)),
			name,
			func(_ *gocui.View) error {
				t.report(t.u.SettleTemplate(name))
				return nil
			},
			"",
		})
	}
	t.initKeyBindings(k)
	t.k = append(t.k, k...)
}

//AddPresetKeys binds the function keys to the numbered preset files
func (t *ConsoleUI) AddPresetKeys() {
	k := t.presetKeyBindings()
	t.initKeyBindings(k)
	t.k = append(t.k, k...)
}

func (t *ConsoleUI) presetKeyBindings() []keyBindings {
	k := make([]keyBindings, 0, len(presetKeys))
	for i, key := range presetKeys {
		name := strconv.Itoa(i + 1)
		k = append(k, keyBindings{key, "F" + name, "Preset " + name, t.cmdLoadPreset(name), ""})
	}
	return k
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

func (t *ConsoleUI) Refresh() {
	t.renderField(t.u.Grid())
	t.renderConfiguration()
	t.renderStatus()
}

//Write shows the last written line in the messages view, so the UI can be the logger output
func (t *ConsoleUI) Write(p []byte) (int, error) {
	t.mu.Lock()
	t.msg = strings.TrimRight(string(p), "\n")
	t.mu.Unlock()
	t.renderMessage()
	return len(p), nil
}

func (t *ConsoleUI) renderField(a *colony.Grid) {

	t.mu.Lock()
	anchor := t.anchor
	t.mu.Unlock()

	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		//the entire field is redrawing at once now
		v.Clear()

		crop := false
		maxW, maxH := v.Size()
		if a.Width() > maxW || a.Height() > maxH {
			crop = true
		}

		var b bytes.Buffer

		for i, l := range a.Rows() {
			//discard the data outside the view area
			if i >= maxH {
				break
			}
			//line feed char
			if i != 0 {
				b.WriteByte(10)
			}
			if crop && i == (maxH-1) {
				b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
				break
			}
			for j, e := range l {
				if j >= maxW {
					break
				}
				if anchor != nil && anchor[0] == j && anchor[1] == i {
					b.WriteString(t.anchorFiller)
				} else if bool(e) {
					b.WriteString(t.liveFiller)
				} else {
					b.WriteString(t.deadFiller)
				}
			}
		}
		_, _ = fmt.Fprint(v, b.String())
		return nil
	})
}

func (t *ConsoleUI) renderStatus() {
	s := t.u.Status()
	t.mu.Lock()
	tl := t.tool
	selecting := t.anchor != nil
	t.mu.Unlock()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := t.g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Success rate", "%v%%", s.Rate))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
			_, _ = fmt.Fprintln(v, t.renderProp("Tool", "%v", toolDescr[tl]))
			if selecting {
				_, _ = fmt.Fprintln(v, " "+aurora.Yellow("click the second corner").String())
			}
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.u.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			if c.MaxSteps == 0 {
				_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "unlimited"))
			} else {
				_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
			}
			_, _ = fmt.Fprintln(v, t.renderProp("File", "%v", t.path))
		}
		return nil
	})
}

func (t *ConsoleUI) renderMessage() {
	t.mu.Lock()
	msg := t.msg
	t.mu.Unlock()
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("messages"); e == nil {
			v.Clear()
			_, _ = fmt.Fprint(v, " "+msg)
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		_ = g.DeleteView("messages")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-7-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-7-3)/2+1, leftColumnWidth, maxY-7); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-7); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Colony"
		v.Frame = true
		t.renderField(t.u.Grid())
	} else {
		t.renderField(t.u.Grid())
	}

	if v, err := g.SetView("messages", 0, maxY-7, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = true
		v.Title = "Messages"
		t.renderMessage()
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

//report shows the command error in the messages view
func (t *ConsoleUI) report(err error) {
	if err == nil {
		return
	}
	_, _ = t.Write([]byte(aurora.Red(err.Error()).String()))
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.u.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.u.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.u.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.u.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.u.SettleWithRandomData()
	return nil
}

func (t *ConsoleUI) cmdTool(tl tool) func(_ *gocui.View) error {
	return func(_ *gocui.View) error {
		t.mu.Lock()
		t.tool = tl
		t.anchor = nil
		t.mu.Unlock()
		t.Refresh()
		return nil
	}
}

func (t *ConsoleUI) cmdRate(delta float64) func(_ *gocui.View) error {
	return func(_ *gocui.View) error {
		t.u.SetRate(t.u.Status().Rate + delta)
		return nil
	}
}

func (t *ConsoleUI) cmdInterval(delta time.Duration) func(_ *gocui.View) error {
	return func(_ *gocui.View) error {
		interval := t.u.Options().Interval + delta
		if interval < minInterval {
			interval = minInterval
		} else if interval > maxInterval {
			interval = maxInterval
		}
		t.u.SetInterval(interval)
		return nil
	}
}

func (t *ConsoleUI) cmdSave(_ *gocui.View) error {
	_, err := t.u.Save(t.path)
	t.report(err)
	return nil
}

func (t *ConsoleUI) cmdLoad(_ *gocui.View) error {
	t.report(t.u.Load(t.path))
	return nil
}

func (t *ConsoleUI) cmdLoadPreset(name string) func(_ *gocui.View) error {
	return func(_ *gocui.View) error {
		t.report(t.u.LoadPreset(name))
		return nil
	}
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	x, y := cx+ox, cy+oy

	t.mu.Lock()
	tl := t.tool
	anchor := t.anchor
	if tl != toolFree && anchor == nil {
		t.anchor = &[2]int{x, y}
	} else {
		t.anchor = nil
	}
	t.mu.Unlock()

	switch {
	case tl == toolFree:
		t.u.PopulateOne(y, x)
	case anchor == nil:
		t.Refresh()
	default:
		g := t.u.Grid()
		r, ok := colony.ClampRegion(anchor[0], anchor[1], x, y, g.Width(), g.Height())
		if !ok {
			t.Refresh()
			return nil
		}
		if tl == toolPopulate {
			t.u.Populate(r)
		} else {
			t.u.Eradicate(r)
		}
	}
	return nil
}
