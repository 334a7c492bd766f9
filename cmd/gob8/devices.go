package main

import "strings"

// Device is a component with an explicit lifetime.
type Device interface {
	// Startup initializes internal resources.
	Startup() error

	// Shutdown cleans up internal resources.
	Shutdown() error
}

// Devices contains a list of components, started in order
// and shut down in reverse order.
type Devices []Device

// Startup starts all devices. If one fails, the ones started
// before it are shut down again.
func (d Devices) Startup() error {
	for i, dev := range d {
		if err := dev.Startup(); err != nil {
			d[:i].Shutdown()
			return err
		}
	}
	return nil
}

// Shutdown shuts down all devices and returns any errors as an ErrorSet.
func (d Devices) Shutdown() error {
	var errs ErrorSet

	for i := len(d) - 1; i >= 0; i-- {
		if err := d[i].Shutdown(); err != nil {
			errs.Append(err)
		}
	}

	if errs.Len() > 0 {
		return errs
	}
	return nil
}

// ErrorSet defines a list of one or more errors and is itself an error.
type ErrorSet []error

func (e ErrorSet) Len() int {
	return len(e)
}

func (e *ErrorSet) Append(args ...error) {
	*e = append(*e, args...)
}

func (e ErrorSet) Error() string {
	var sb strings.Builder
	for _, err := range e {
		sb.WriteString(err.Error() + "\n")
	}
	return sb.String()
}
