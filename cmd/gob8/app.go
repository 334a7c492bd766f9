package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/gob8/arch"
	"github.com/hexaflex/gob8/display"
	"github.com/hexaflex/gob8/version"
	"github.com/hexaflex/gob8/vm"
)

// frameTime is the duration of a single main loop iteration.
const frameTime = time.Second / 60

// App runs a program in a window.
type App struct {
	config       *Config      // Application configuration.
	window       *glfw.Window // OpenGL/GLFW context.
	ctl          *Controller  // Machine with program to be run.
	display      *display.Display
	devices      Devices
	started      bool // Devices have been started.
	tracer       tracer
	titleUpdated time.Time // Value used to periodically update window title.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config, image []byte) *App {
	var a App
	a.config = config
	a.tracer = tracer{config: config, out: os.Stdout}
	a.display = display.New(config.Background, config.Foreground)
	a.ctl = NewController(image, config.Speed, machineOptions(config, &a.tracer)...)
	a.devices = Devices{a.ctl, a.display}
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(version.String(AppName))
	printHelp()

	if err := a.devices.Startup(); err != nil {
		return err
	}

	a.started = true
	if !a.config.Debug {
		a.ctl.Start()
	}

	next := time.Now()
	for !a.window.ShouldClose() {
		a.mainLoop()

		next = next.Add(frameTime)
		time.Sleep(time.Until(next))
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	glfw.PollEvents()

	if err := a.ctl.Tick(); err != nil {
		log.Println(err)
	}

	a.display.Update(a.ctl.Machine().Front())

	gl.Clear(gl.COLOR_BUFFER_BIT)
	a.display.Draw()
	a.window.SwapBuffers()

	// Periodically update the window title to show the current execution speed.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.ctl.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, version.Number(), freq))
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if a.started {
		if err := a.devices.Shutdown(); err != nil {
			log.Println(err)
		}
		a.started = false
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF5:
		err = a.ctl.Reset()
	case glfw.KeyF6:
		a.ctl.ToggleRun()
	case glfw.KeyF7:
		err = a.ctl.Step()
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := arch.DisplayWidth * a.config.ScaleFactor
	height := arch.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.ctl.Keypad().KeyCallback(a.keyCallback))

	glfw.SwapInterval(1)

	err = gl.Init()
	if err != nil {
		a.window.Destroy()
		a.window = nil
		glfw.Terminate()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// machineOptions returns the machine options selected by config.
func machineOptions(config *Config, t *tracer) []vm.Option {
	opts := []vm.Option{vm.WithTrace(t.trace)}
	if config.LegacyDraw {
		opts = append(opts, vm.WithDrawMode(vm.DrawLegacy))
	}
	return opts
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       Reload the program and reset the machine.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable debug trace output.\n")
	sb.WriteString(" 1234     Keypad 1 2 3 C\n")
	sb.WriteString(" QWER     Keypad 4 5 6 D\n")
	sb.WriteString(" ASDF     Keypad 7 8 9 E\n")
	sb.WriteString(" ZXCV     Keypad A 0 B F")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
