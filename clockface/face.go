package clockface

import (
	"errors"
	"fmt"
	"image"

	"transfont/compositor"
	"transfont/glyphs"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("clockface", logger.InfoLevel)

var (
	ErrAlreadyStarted      = errors.New("clock face already started")
	ErrNotStarted          = errors.New("clock face not started")
	ErrMissingCollaborator = errors.New("clock face collaborator missing")
)

// GlyphLoader hands out glyphs. Each loaded glyph is released exactly once.
type GlyphLoader interface {
	Load(key glyphs.Key) (*glyphs.Glyph, error)
	Release(g *glyphs.Glyph)
}

// Compositor owns the on-screen regions.
type Compositor interface {
	Register(rect image.Rectangle) compositor.Handle
	SetImage(h compositor.Handle, img image.Image)
	SetRect(h compositor.Handle, rect image.Rectangle)
	SetVisible(h compositor.Handle, visible bool)
	Unregister(h compositor.Handle)
}

// HourFormat reports the user's 12/24-hour preference.
type HourFormat interface {
	Is24HourMode() bool
}

// FixedFormat is an HourFormat that never changes.
type FixedFormat bool

func (f FixedFormat) Is24HourMode() bool { return bool(f) }

type TickHandler func(sample CalendarSample, changed ChangeMask) error

// ClockSource delivers ticks one at a time. The first mask a subscription
// delivers is measured from the last sample Now returned. Unsubscribe
// returns once no handler is running.
type ClockSource interface {
	Now() CalendarSample
	Subscribe(unit ChangeMask, fn TickHandler)
	Unsubscribe()
}

type Options struct {
	Glyphs     GlyphLoader
	Compositor Compositor
	Format     HourFormat
	Clock      ClockSource

	// Optional. OnColon follows the colon visibility, OnFrame runs once
	// after every tick that changed something.
	OnColon func(visible bool)
	OnFrame func()
}

// Face is the whole clock face state: every region and the collaborators
// that feed it.
type Face struct {
	slots      [slotCount]Slot
	glyphs     GlyphLoader
	comp       Compositor
	format     HourFormat
	clock      ClockSource
	onColon    func(bool)
	onFrame    func()
	registered bool
	started    bool
	subscribed bool
}

func NewFace(opts Options) (*Face, error) {
	switch {
	case opts.Glyphs == nil:
		return nil, fmt.Errorf("%w: glyph store", ErrMissingCollaborator)
	case opts.Compositor == nil:
		return nil, fmt.Errorf("%w: compositor", ErrMissingCollaborator)
	case opts.Format == nil:
		return nil, fmt.Errorf("%w: hour format", ErrMissingCollaborator)
	case opts.Clock == nil:
		return nil, fmt.Errorf("%w: clock source", ErrMissingCollaborator)
	}

	return &Face{
		slots:   layout,
		glyphs:  opts.Glyphs,
		comp:    opts.Compositor,
		format:  opts.Format,
		clock:   opts.Clock,
		onColon: opts.OnColon,
		onFrame: opts.OnFrame,
	}, nil
}

// Start registers every region, paints the current time and subscribes to
// the clock. On error nothing stays allocated and no subscription exists.
func (f *Face) Start() error {
	if f.started {
		return ErrAlreadyStarted
	}

	for id := range f.slots {
		s := &f.slots[id]
		if s.Static == nil {
			s.handle = f.comp.Register(image.Rectangle{})
			s.live, s.visible = true, true
			continue
		}

		g, err := f.glyphs.Load(*s.Static)
		if err != nil {
			f.teardown()
			return fmt.Errorf("loading %s region: %w", s.Name, err)
		}
		s.glyph = g
		s.rect = image.Rectangle{Min: s.Origin, Max: s.Origin.Add(g.Size())}
		s.handle = f.comp.Register(s.rect)
		f.comp.SetImage(s.handle, g.Image)
		s.live, s.visible = true, true
	}
	f.registered = true

	// Paint everything once so the first frame is never blank
	now := f.clock.Now()
	if err := f.Tick(now, AllUnits); err != nil {
		f.teardown()
		return err
	}

	f.clock.Subscribe(SecondUnit, f.Tick)
	f.subscribed = true
	f.started = true
	lg.Infof("🕒 Clock face started at %02d:%02d:%02d", now.Hour, now.Minute, now.Second)
	return nil
}

// Shutdown stops the clock subscription and frees every region. Calling it
// again does nothing.
func (f *Face) Shutdown() {
	if f.subscribed {
		f.clock.Unsubscribe()
		f.subscribed = false
	}
	if f.registered {
		f.teardown()
		lg.Infof("🛑 Clock face stopped")
	}
	f.started = false
}

func (f *Face) teardown() {
	for id := range f.slots {
		s := &f.slots[id]
		if s.live {
			f.comp.Unregister(s.handle)
			s.live = false
		}
		if s.glyph != nil {
			f.glyphs.Release(s.glyph)
			s.glyph = nil
		}
		s.rect = image.Rectangle{}
		s.handle = 0
	}
	f.registered = false
}

// Tick redraws the regions implied by changed. Units touch disjoint
// regions, so the order they are applied in does not matter.
func (f *Face) Tick(sample CalendarSample, changed ChangeMask) error {
	if !f.registered {
		return ErrNotStarted
	}
	if changed == 0 {
		return nil
	}
	lg.Debugf("Tick %02d:%02d:%02d [%s]", sample.Hour, sample.Minute, sample.Second, changed)

	if changed.Has(DayUnit) {
		if err := f.updateDays(sample); err != nil {
			return err
		}
	}
	if changed.Has(HourUnit) {
		if err := f.updateHours(sample); err != nil {
			return err
		}
	}
	if changed.Has(MinuteUnit) {
		if err := f.updateMinutes(sample); err != nil {
			return err
		}
	}
	if changed.Has(SecondUnit) {
		f.updateSeconds(sample)
	}

	if f.onFrame != nil {
		f.onFrame()
	}
	return nil
}

type regionUpdate struct {
	id  SlotID
	key glyphs.Key
}

func (f *Face) updateDays(sample CalendarSample) error {
	date := SplitDigits(sample.Day, 2)
	year := SplitDigits(DisplayYear(sample.YearOffset), 4)

	updates := []regionUpdate{
		{SlotDayName, glyphs.DayName(sample.Weekday)},
		{SlotMonthName, glyphs.MonthName(sample.Month)},
		{SlotDateTens, glyphs.SmallDigit(date[0])},
		{SlotDateUnits, glyphs.SmallDigit(date[1])},
	}
	for i, id := range yearSlots {
		updates = append(updates, regionUpdate{id, glyphs.SmallDigit(year[i])})
	}

	for _, u := range updates {
		if err := f.updateRegion(u.id, u.key); err != nil {
			return err
		}
	}
	return nil
}

func (f *Face) updateHours(sample CalendarSample) error {
	// Read on every hour update so a changed preference shows up on the
	// next hour tick.
	is24h := f.format.Is24HourMode()
	digits := SplitDigits(DisplayHour(sample.Hour, is24h), 2)

	if err := f.updateRegion(SlotHourTens, glyphs.BigDigit(digits[0])); err != nil {
		return err
	}
	if err := f.updateRegion(SlotHourUnits, glyphs.BigDigit(digits[1])); err != nil {
		return err
	}

	// No leading zero in 12-hour mode
	f.setVisible(SlotHourTens, is24h || digits[0] != 0)
	return nil
}

func (f *Face) updateMinutes(sample CalendarSample) error {
	digits := SplitDigits(sample.Minute, 2)
	if err := f.updateRegion(SlotMinuteTens, glyphs.BigDigit(digits[0])); err != nil {
		return err
	}
	return f.updateRegion(SlotMinuteUnits, glyphs.BigDigit(digits[1]))
}

func (f *Face) updateSeconds(sample CalendarSample) {
	visible := sample.Second%2 == 0
	f.setVisible(SlotColon, visible)
	if f.onColon != nil {
		f.onColon(visible)
	}
}

// updateRegion swaps the glyph shown by a slot. The new glyph is installed
// before the old one is released, so the compositor never holds a freed
// image.
func (f *Face) updateRegion(id SlotID, key glyphs.Key) error {
	s := &f.slots[id]
	g, err := f.glyphs.Load(key)
	if err != nil {
		return fmt.Errorf("updating %s region: %w", s.Name, err)
	}

	old := s.glyph
	s.glyph = g
	s.rect = image.Rectangle{Min: s.Origin, Max: s.Origin.Add(g.Size())}
	f.comp.SetImage(s.handle, g.Image)
	f.comp.SetRect(s.handle, s.rect)

	if old != nil {
		f.glyphs.Release(old)
	}
	return nil
}

func (f *Face) setVisible(id SlotID, visible bool) {
	s := &f.slots[id]
	s.visible = visible
	f.comp.SetVisible(s.handle, visible)
}

// Slot reports what a region currently shows.
func (f *Face) Slot(id SlotID) SlotState {
	s := &f.slots[id]
	state := SlotState{Rect: s.rect, Visible: s.visible}
	if s.glyph != nil {
		state.Glyph = s.glyph.Key
		state.Loaded = true
	}
	return state
}
