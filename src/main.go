package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/integrii/flaggy"

	"lifecolony/src/universe"
	"lifecolony/src/view"
)

//DefBatchSteps limits the non-interactive run when no limit was given
const DefBatchSteps = 1000

type EnvOptions struct {
	interactive bool
	colors      bool
	template    string
	preset      string
	file        string
	logLevel    string
}

func main() {
	eo, uo := initOptions()

	var stateCh chan universe.Status

	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := universe.NewBaseUniverse(uo, stateCh)
	for _, tmpl := range universe.DefaultTemplates() {
		u.AddTemplate(tmpl)
	}

	if eo.interactive {
		v := view.NewViewTerminal(eo.file)
		//the terminal is owned by the UI, log lines go to its messages view
		logger := view.NewLogger(v, eo.logLevel, true)
		u.SetLogger(logger)
		v.AddTemplateKeys(u.Templates())
		v.AddPresetKeys()
		u.RegisterViewer(v)
		settle(u, eo, logger)
		v.Start()
		u.Stop()
		u.Close()
		return
	}

	logger := view.NewLogger(os.Stderr, eo.logLevel, eo.colors)
	u.SetLogger(logger)
	settle(u, eo, logger)

	v := view.NewConsoleOut(eo.colors)
	u.RegisterViewer(v)
	fmt.Printf("\"The Life\" game simulation started...\n")
	v.Start()
	u.Run()
	for {
		st := <-stateCh
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	if eo.file != "" {
		if path, err := u.Save(eo.file); err != nil {
			logger.Errorf("%v", err)
		} else {
			fmt.Printf("Colony saved to %s\n", path)
		}
	}
	u.Close()
	close(stateCh)
}

//settle replaces the random colony with the template, the preset or the file given on the command line
//a failure is logged and the random colony is kept
func settle(u *universe.BaseUniverse, eo *EnvOptions, log universe.Logger) {
	var err error
	switch {
	case eo.template != "":
		err = u.SettleTemplate(eo.template)
	case eo.preset != "":
		err = u.LoadPreset(eo.preset)
	case eo.file != "" && fileExists(eo.file):
		err = u.Load(eo.file)
	}
	if err != nil {
		log.Errorf("keeping the random colony: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	uo = &universe.DefaultUniverseOptions
	templateNames := make([]string, 0)
	for _, tmpl := range universe.DefaultTemplates() {
		templateNames = append(templateNames, tmpl.Name)
	}
	eo = &EnvOptions{colors: true, logLevel: "info"}
	flaggy.SetName("lifecolony")
	flaggy.SetDescription("Conway's Game of Life on a fixed size colony")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of the colony")
	flaggy.Int(&uo.Height, "y", "height", "Height of the colony")
	flaggy.Float64(&uo.Density, "d", "density", "Probability of every cell to be alive at start, 0..1")
	flaggy.Float64(&uo.Rate, "p", "rate", "Population/eradication success rate in percent, 0..100")
	flaggy.UInt64(&uo.Seed, "", "seed", "Random seed, 0 seeds from the clock")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the generations) in format the number with 'ms' suffix, for example 500ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.String(&uo.PresetDir, "", "presets", "Directory with the preset colony files")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.colors, "", "colors", "Colored console output")
	flaggy.String(&eo.template, "t", "template", "Start with the template ["+strings.Join(templateNames, "|")+"]")
	flaggy.String(&eo.preset, "", "preset", "Start with the preset file <presets>/<name>.txt")
	flaggy.String(&eo.file, "f", "file", "Colony file: loaded at start when it exists, target of save")
	flaggy.String(&eo.logLevel, "", "log-level", "Log level [debug|info|warn|error]")

	flaggy.Parse()

	if eo.template != "" {
		known := false
		for _, name := range templateNames {
			known = known || name == eo.template
		}
		if !known {
			flaggy.ShowHelpAndExit("unknown template")
		}
	}

	if eo.interactive && eo.file == "" {
		eo.file = "colony.txt"
	}

	if !eo.interactive {
		if uo.MaxSteps == 0 {
			uo.MaxSteps = DefBatchSteps
		}
		flaggy.ShowHelp("")
	}

	return
}
