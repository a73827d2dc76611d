package view

import (
	"fmt"
	"time"

	"golife/src/universe"
)

//ConsoleOut is the headless viewer: prints the configuration on
//registration and progress lines while the simulation runs
type ConsoleOut struct {
	e         *universe.Engine
	startTime time.Time
}

func NewConsoleOut() *ConsoleOut {
	return &ConsoleOut{}
}

func (c *ConsoleOut) Register(e *universe.Engine) {
	c.e = e
	o := e.Options()
	fmt.Println("Running configuration:")
	fmt.Printf("  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Printf("  Interval: %v\n", o.Interval)
	fmt.Printf("  Max steps: %v\n", o.MaxSteps)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Println("\nSimulation started...")
}

func (c *ConsoleOut) Refresh() {
	st := c.e.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		fmt.Println("\nFinished:")
		fmt.Printf("  Last generation: %v\n", st.Generation)
		fmt.Printf("  Live cells: %v\n", st.LiveCells)
		fmt.Printf("  Total time: %v\n", totalTime)
	} else if st.RunningMode == universe.RunningStateRun {
		if st.Generation%10 == 0 {
			fmt.Printf("  Generations done: %v\n", st.Generation)
		}
	}
}
