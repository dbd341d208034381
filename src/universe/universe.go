package universe

import (
	"time"

	"lifecolony/src/colony"
)

//Universe is the host of one colony: it owns the control loop, the generation counter and the presets
//all calls are serialized on the universe main loop, so the engine never sees concurrent access
type Universe interface {
	Status() Status
	Options() Options
	Grid() *colony.Grid
	StateCh() chan Status
	AddTemplate(tmpl Template)
	Templates() []Template
	SettleTemplate(name string) error
	SettleWithRandomData()
	LoadPreset(name string) error
	Load(path string) error
	Save(path string) (string, error)
	Populate(r colony.Region)
	Eradicate(r colony.Region)
	PopulateOne(row int, col int)
	SetRate(rate float64)
	SetInterval(interval time.Duration)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
