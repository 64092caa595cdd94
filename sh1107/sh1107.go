package sh1107

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/d2r2/go-i2c"
	"github.com/d2r2/go-logger"
	"github.com/fogleman/gg"
)

var lg = logger.NewPackageLogger("sh1107", logger.InfoLevel)

var Black color.Color = color.Gray{Y: 0}

// SH1107 is a monochrome OLED panel on I2C. Drawing happens on the embedded
// gg context; Render pushes the framebuffer to the panel.
type SH1107 struct {
	*gg.Context   // Embed drawing context
	bus           *i2c.I2C
	rot           int
	Width, Height int
	IsOn          bool
	render_lock   sync.Mutex
	fb_lock       sync.Mutex
	bus_lock      sync.Mutex
}

const (
	Normal            int = 0
	Flipped           int = 1
	UpsideDown        int = 2
	FlippedUpsideDown int = 3
)

const (
	controlCommand byte = 0x00
	controlData    byte = 0x40
)

// Creates a new SH1107 display connection. The panel is left off and blank.
func New(address byte, bus_device int, rotation int, width, height int) (*SH1107, error) {
	logger.ChangePackageLogLevel("i2c", logger.PanicLevel)
	if height%8 != 0 {
		return nil, fmt.Errorf("display height %d is not a multiple of 8", height)
	}
	bus, err := i2c.NewI2C(address, bus_device)
	if err != nil {
		return nil, fmt.Errorf("opening i2c bus %d at %#x failed: %w", bus_device, address, err)
	}

	display := &SH1107{
		Context: gg.NewContextForImage(image.NewGray(image.Rect(0, 0, width, height))),
		bus:     bus,
		rot:     rotation,
		Width:   width,
		Height:  height,
	}

	display.init()
	display.SetRotation(rotation)
	display.Clear(Black)
	display.Render()
	lg.Infof("📟 SH1107 %dx%d ready at %#x on bus %d", width, height, address, bus_device)
	return display, nil
}

// TODO: 90/270 degrees also need the column/page addressing swapped
func (d *SH1107) SetRotation(rot int) {
	d.rot = rot % 4
	switch d.rot {
	case Normal:
		d.command(0xA0, 0xC0) // segment remap normal, COM scan flipped
	case Flipped:
		d.command(0xA1, 0xC0)
	case UpsideDown:
		d.command(0xA1, 0xC8) // segment remap, COM scan normal
	case FlippedUpsideDown:
		d.command(0xA0, 0xC8)
	}
}

// Sends each byte as its own command transaction.
func (d *SH1107) command(cmds ...byte) {
	d.bus_lock.Lock()
	defer d.bus_lock.Unlock()
	for _, cmd := range cmds {
		d.transmit(controlCommand, cmd)
	}
}

func (d *SH1107) transmit(control byte, payload ...byte) {
	if _, err := d.bus.WriteBytes(append([]byte{control}, payload...)); err != nil {
		lg.Errorf("⚠️ I2C write failed: %v", err)
	}
}

func (d *SH1107) init() {
	d.command(
		0xAE,       // display off
		0x00, 0x10, // set column addr low + high
		0xDC, 0x00, // display start line
		0x81, 0x7F, // contrast
		0x20,       // page addressing
		0xA4,       // disable entire display on
		0xA6,       // normal display
		0xA8, 0x7F, // multiplex ratio = 127
		0xD3, 0x00, // display offset
		0xD5, 0x41, // osc
		0xD9, 0x22, // precharge
		0xDB, 0x35, // vcomh
		0xAD, 0x8A, // charge pump enable
	)
}

// Closes the display connection
func (d *SH1107) Close() {
	if err := d.bus.Close(); err != nil {
		lg.Errorf("⚠️ Closing i2c bus failed: %v", err)
	}
}

func (d *SH1107) On() {
	d.command(0xAF)
	d.IsOn = true
}

func (d *SH1107) Off() {
	d.command(0xAE)
	d.IsOn = false
}

// Set brightness from 0.0 to 1.0
func (d *SH1107) SetBrightness(level float64) {
	clamped := math.Max(0.0, math.Min(1.0, level))
	d.command(0x81, byte(clamped*0xFF))
}

// Clears the framebuffer to a single color.
func (d *SH1107) Clear(state color.Color) {
	d.fb_lock.Lock()
	defer d.fb_lock.Unlock()
	d.SetColor(state)
	d.DrawRectangle(0, 0, float64(d.Width), float64(d.Height))
	d.Fill()
}

// Pushes the framebuffer to the panel one page at a time.
func (d *SH1107) Render() {
	d.render_lock.Lock()
	defer d.render_lock.Unlock()

	d.fb_lock.Lock()
	raw := PackPages(d.Image())
	d.fb_lock.Unlock()

	d.bus_lock.Lock()
	defer d.bus_lock.Unlock()
	for page, pages := 0, d.Height/8; page < pages; page++ {
		d.transmit(controlCommand,
			0xB0|byte(page), // page address
			0x00,            // low nibble
			0x10,            // high nibble
		)
		offset := page * d.Width
		d.transmit(controlData, raw[offset:offset+d.Width]...)
	}
}

// PackPages converts an image to the panel's page layout: one byte per
// column per 8-pixel page, least significant bit on top. Pixels brighter
// than mid-gray are lit.
func PackPages(img image.Image) []byte {
	bounds := img.Bounds()
	width := bounds.Dx()
	raw := make([]byte, width*(bounds.Dy()/8))

	for y := 0; y < bounds.Dy()/8*8; y++ {
		for x := 0; x < width; x++ {
			gray := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if gray.Y > 127 {
				raw[(y/8)*width+x] |= 1 << uint(y%8)
			}
		}
	}
	return raw
}
