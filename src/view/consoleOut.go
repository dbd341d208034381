package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifecolony/src/universe"
)

//ConsoleOut prints the simulation progress as plain lines, used in the non-interactive mode
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
}

func NewConsoleOut(colors bool) *ConsoleOut {
	return &ConsoleOut{w: os.Stdout, au: aurora.NewAurora(colors), every: 10}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last generation": st.Generation,
			"Total time":      totalTime,
			"Live cells":      st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.Generation%c.every == 0 {
			fmt.Fprintf(c.w, "  Generations done: %v, live cells: %v\n", st.Generation, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	st := c.u.Status()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": o.MaxSteps,
		"Density":        o.Density,
		"Success rate":   fmt.Sprintf("%v%%", st.Rate),
		"Seed":           o.Seed,
		"Live cells":     st.LiveCells,
	})
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", c.au.Cyan(propName), d[propName])
	}
}
