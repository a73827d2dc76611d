package main

import (
	"fmt"
	"log"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"golife/src/config"
	"golife/src/host"
	"golife/src/universe"
	"golife/src/view"
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	template    string
	configPath  string
	greetName   string
	dumpBoard   bool
}

func main() {
	eo, uo := initOptions()

	host.Greet(func(msg string) {
		fmt.Println(aurora.Cyan(msg))
	}, eo.greetName)

	var stateCh chan universe.Status
	if !eo.interactive {
		stateCh = make(chan universe.Status, 10) //buffered channel for the engine status updates
	}

	e, err := universe.NewEngine(uo, stateCh)
	if err != nil {
		log.Fatalln(err)
	}

	if eo.randomData {
		e.SettleWithRandomData()
	} else if eo.template != "" {
		e.SettleTemplate(eo.template)
	}

	if eo.interactive {
		v := view.NewConsoleUI()
		e.RegisterViewer(v)
		v.Start()
		e.Close()
		return
	}

	v := view.NewConsoleOut()
	e.RegisterViewer(v)
	v.Start()

	e.Run()
	for {
		st := <-stateCh
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	if eo.dumpBoard {
		fmt.Print(e.Render())
	}
	e.Close()
	close(stateCh)
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {
	o := universe.DefaultOptions
	uo = &o
	eo = &EnvOptions{greetName: "your"}

	var width, height int
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&width, "x", "width", "Width of the universe")
	flaggy.Int(&height, "y", "height", "Height of the universe")
	flaggy.Duration(&uo.Interval, "i", "interval", "Interval between generations, a number with a 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps generations")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data instead of the default pattern")
	flaggy.String(&eo.template, "t", "template", "Settle with a named template (blinker|glider|trio) instead of the default pattern")
	flaggy.String(&eo.configPath, "c", "config", "Path to a JSON config file, its settings override the flags")
	flaggy.String(&eo.greetName, "g", "greet", "Name interpolated into the startup greeting")
	flaggy.Bool(&eo.dumpBoard, "d", "dump", "Print the final board after a non-interactive run")

	flaggy.Parse()

	if width > 0 {
		uo.Width = uint32(width)
	}
	if height > 0 {
		uo.Height = uint32(height)
	}

	if eo.configPath != "" {
		cfg, err := config.Load(eo.configPath)
		if err != nil {
			log.Fatalln(err)
		}
		cfg.Apply(uo)
		if cfg.Template != "" {
			eo.template = cfg.Template
		}
		if cfg.Random {
			eo.randomData = true
		}
	}

	//random or template seeding starts from a dead grid
	if eo.randomData || eo.template != "" {
		uo.Seed = nil
	}

	return
}
