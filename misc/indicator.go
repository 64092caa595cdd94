package misc

import (
	"fmt"

	"github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var lg = logger.NewPackageLogger("misc", logger.InfoLevel)

// Indicator is an LED on a GPIO pin that blinks along with the colon.
type Indicator struct {
	pin gpio.PinOut
	on  bool
}

// Opens the named pin (for example "GPIO23") and drives it low.
func NewIndicator(name string) (*Indicator, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialising periph host failed: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("failed to find %s (indicator LED)", name)
	}
	return NewIndicatorOn(p)
}

// NewIndicatorOn wraps an already opened pin and drives it low.
func NewIndicatorOn(pin gpio.PinOut) (*Indicator, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("driving %s low failed: %w", pin, err)
	}
	return &Indicator{pin: pin}, nil
}

// Set lights or clears the LED. Repeated states are not written again.
func (i *Indicator) Set(on bool) {
	if i == nil || i.on == on {
		return
	}
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := i.pin.Out(level); err != nil {
		lg.Errorf("⚠️ Indicator write failed: %v", err)
		return
	}
	i.on = on
}

// Off clears the LED, used on shutdown.
func (i *Indicator) Off() {
	i.Set(false)
}
