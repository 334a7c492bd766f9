package vm

// RunState describes whether the machine executes instructions or waits
// for a key press. It is either Running or AwaitingInput.
type RunState interface {
	runState()
}

// Running is the state of a machine executing instructions.
type Running struct{}

// AwaitingInput is the state of a machine blocked on a key press.
// The key is stored in Register once it arrives.
type AwaitingInput struct {
	Register int
}

func (Running) runState()       {}
func (AwaitingInput) runState() {}
