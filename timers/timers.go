package timers

import (
	"context"
	"sync"
	"time"

	"transfont/clockface"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("timers", logger.InfoLevel)

// SleepUntil blocks until t or until ctx is done. It reports whether t was
// reached.
func SleepUntil(ctx context.Context, t time.Time) bool {
	timer := time.NewTimer(time.Until(t))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// SampleOf reads a calendar sample from a Go time. Years are counted from
// 1900 to match the clock face's year decoding.
func SampleOf(t time.Time) clockface.CalendarSample {
	return clockface.CalendarSample{
		YearOffset: t.Year() - 1900,
		Month:      int(t.Month()) - 1,
		Day:        t.Day(),
		Weekday:    int(t.Weekday()),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
	}
}

// Changes derives the change mask between two samples. A change in a coarse
// unit implies every finer unit changed too.
func Changes(prev, cur clockface.CalendarSample) clockface.ChangeMask {
	switch {
	case prev.YearOffset != cur.YearOffset, prev.Month != cur.Month, prev.Day != cur.Day:
		return clockface.AllUnits
	case prev.Hour != cur.Hour:
		return clockface.HourUnit | clockface.MinuteUnit | clockface.SecondUnit
	case prev.Minute != cur.Minute:
		return clockface.MinuteUnit | clockface.SecondUnit
	case prev.Second != cur.Second:
		return clockface.SecondUnit
	}
	return 0
}

// Clock is the wall-clock tick source. A subscription runs on a single
// goroutine, so handlers never overlap.
type Clock struct {
	loc      *time.Location
	now      func() time.Time
	parent   context.Context
	cancelFn context.CancelFunc
	errs     chan error
	seen     *clockface.CalendarSample // last sample handed out by Now
	wg       sync.WaitGroup
	lock     sync.Mutex
}

func New(ctx context.Context, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{
		loc:    loc,
		now:    time.Now,
		parent: ctx,
		errs:   make(chan error, 1),
	}
}

// Now samples the wall clock. The next subscription measures its first
// change mask from the most recent sample returned here, so a caller that
// paints Now() and then subscribes never misses a boundary in between.
func (c *Clock) Now() clockface.CalendarSample {
	s := c.sample()
	c.lock.Lock()
	c.seen = &s
	c.lock.Unlock()
	return s
}

func (c *Clock) sample() clockface.CalendarSample {
	return SampleOf(c.now().In(c.loc))
}

// Err delivers the error of a handler that stopped its subscription.
func (c *Clock) Err() <-chan error {
	return c.errs
}

// Subscribe calls fn on every second boundary whose change mask includes
// unit. Subscribing again replaces the previous subscription.
func (c *Clock) Subscribe(unit clockface.ChangeMask, fn clockface.TickHandler) {
	c.Unsubscribe()

	c.lock.Lock()
	defer c.lock.Unlock()

	var last clockface.CalendarSample
	if c.seen != nil {
		last = *c.seen
		c.seen = nil
	} else {
		last = c.sample()
	}

	ctx, cancel := context.WithCancel(c.parent)
	c.cancelFn = cancel
	c.wg.Add(1)
	go c.run(ctx, unit, fn, last)
	lg.Debugf("Subscribed at %s granularity", unit)
}

// Unsubscribe stops delivering ticks and waits for a running handler to
// return. It must not be called from inside a handler.
func (c *Clock) Unsubscribe() {
	c.lock.Lock()
	cancel := c.cancelFn
	c.cancelFn = nil
	c.lock.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	c.wg.Wait()
	lg.Debugf("Unsubscribed")
}

func (c *Clock) run(ctx context.Context, unit clockface.ChangeMask, fn clockface.TickHandler, last clockface.CalendarSample) {
	defer c.wg.Done()

	for {
		next := c.now().Truncate(time.Second).Add(time.Second)
		if !SleepUntil(ctx, next) {
			return
		}

		cur := c.sample()
		changed := Changes(last, cur)
		last = cur
		if changed&unit == 0 {
			continue
		}

		if err := fn(cur, changed); err != nil {
			lg.Errorf("⚠️ Tick handler failed: %v", err)
			select {
			case c.errs <- err:
			default:
			}
			return
		}
	}
}
