package main

import (
	"io"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/gob8/keypad"
	"github.com/hexaflex/gob8/vm"
)

// Controller controls the execution of a machine.
type Controller struct {
	machine    *vm.Machine
	keypad     *keypad.Keypad
	image      []byte
	speed      int
	start      time.Time
	cycleCount uint64
	running    bool
}

var _ Device = &Controller{}

// NewController creates a controller running the given program image.
// speed is the number of instructions executed per Tick.
func NewController(image []byte, speed int, opts ...vm.Option) *Controller {
	if speed < 1 {
		speed = 1
	}

	m := vm.New(opts...)
	return &Controller{
		machine: m,
		keypad:  keypad.New(m),
		image:   image,
		speed:   speed,
	}
}

// Machine returns the controlled machine.
func (c *Controller) Machine() *vm.Machine {
	return c.machine
}

// Keypad returns the keypad feeding the machine.
func (c *Controller) Keypad() *keypad.Keypad {
	return c.keypad
}

// Running returns true if the machine is currently running.
func (c *Controller) Running() bool {
	return c.running
}

// Frequency returns the current execution speed in instructions per second.
func (c *Controller) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *Controller) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *Controller) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *Controller) Stop() {
	c.setRunning(false)
}

// Step performs a single execution step. Execution stops when the
// program halts or faults. Faults are returned.
func (c *Controller) Step() error {
	c.cycleCount++

	err := c.machine.Step()
	if err == nil {
		return nil
	}

	c.setRunning(false)
	if err == io.EOF {
		log.Println("program halted")
		return nil
	}

	return err
}

// Tick advances the machine by one frame. Tapped keys are released once
// their time runs out. While running, up to speed instructions are
// executed; a machine awaiting input is not stepped.
func (c *Controller) Tick() error {
	if err := c.keypad.Tick(); err != nil {
		return err
	}

	for i := 0; i < c.speed && c.running && !c.machine.AwaitingInput(); i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Reset reloads the program and restarts it from address 0.
func (c *Controller) Reset() error {
	return errors.Wrapf(c.machine.Load(c.image), "failed to load program")
}

// Startup loads the program.
func (c *Controller) Startup() error {
	log.Println("machine startup")
	return c.Reset()
}

// Shutdown stops execution.
func (c *Controller) Shutdown() error {
	c.Stop()
	log.Println("machine shutdown")
	return nil
}

// setRunning determines if the machine is running or is paused.
func (c *Controller) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}
