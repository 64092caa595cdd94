package compositor

import (
	"image"
	"image/color"
	"sync"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("compositor", logger.InfoLevel)

var Black color.Color = color.Gray{Y: 0}

// Surface is anything a frame can be painted onto: the SH1107 panel or the
// PNG preview.
type Surface interface {
	Clear(state color.Color)
	DrawImage(im image.Image, x, y int)
	Render()
}

// Handle identifies a registered region.
type Handle int

type layer struct {
	rect   image.Rectangle
	img    image.Image
	hidden bool
}

// Compositor keeps the set of on-screen regions. Regions are painted in
// registration order, so the first registered region is the bottom one.
type Compositor struct {
	layers map[Handle]*layer
	order  []Handle
	next   Handle
	dirty  bool
	lock   sync.Mutex
}

func New() *Compositor {
	return &Compositor{
		layers: make(map[Handle]*layer),
		dirty:  true,
	}
}

// Register adds a region on top of the existing ones.
func (c *Compositor) Register(rect image.Rectangle) Handle {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.next++
	h := c.next
	c.layers[h] = &layer{rect: rect}
	c.order = append(c.order, h)
	c.dirty = true
	return h
}

func (c *Compositor) SetImage(h Handle, img image.Image) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if l, ok := c.layers[h]; ok {
		l.img = img
		c.dirty = true
	}
}

func (c *Compositor) SetRect(h Handle, rect image.Rectangle) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if l, ok := c.layers[h]; ok && l.rect != rect {
		l.rect = rect
		c.dirty = true
	}
}

func (c *Compositor) SetVisible(h Handle, visible bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if l, ok := c.layers[h]; ok && l.hidden == visible {
		l.hidden = !visible
		c.dirty = true
	}
}

// Unregister removes a region. Unknown handles are ignored.
func (c *Compositor) Unregister(h Handle) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.layers[h]; !ok {
		return
	}
	delete(c.layers, h)
	for i, o := range c.order {
		if o == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.dirty = true
}

// Layer reports the state of a region.
func (c *Compositor) Layer(h Handle) (rect image.Rectangle, img image.Image, visible bool, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	l, ok := c.layers[h]
	if !ok {
		return image.Rectangle{}, nil, false, false
	}
	return l.rect, l.img, !l.hidden, true
}

// Len returns the number of registered regions.
func (c *Compositor) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.order)
}

// Compose paints every visible region onto s and renders it. Nothing is sent
// to the surface when no region changed since the previous frame.
func (c *Compositor) Compose(s Surface) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if !c.dirty {
		return false
	}

	s.Clear(Black)
	drawn := 0
	for _, h := range c.order {
		l := c.layers[h]
		if l.hidden || l.img == nil || l.rect.Empty() {
			continue
		}
		s.DrawImage(l.img, l.rect.Min.X, l.rect.Min.Y)
		drawn++
	}
	s.Render()
	c.dirty = false

	lg.Debugf("Composed frame with %d of %d regions", drawn, len(c.order))
	return true
}
