package clockface

import (
	"image"

	"transfont/compositor"
	"transfont/glyphs"
)

type SlotID int

const (
	SlotBackground SlotID = iota
	SlotDivider
	SlotColon
	SlotDayName
	SlotMonthName
	SlotDateTens
	SlotDateUnits
	SlotYear0
	SlotYear1
	SlotYear2
	SlotYear3
	SlotHourTens
	SlotHourUnits
	SlotMinuteTens
	SlotMinuteUnits

	slotCount
)

// Slot is one fixed region of the face. It owns the glyph it shows.
type Slot struct {
	Name    string
	Origin  image.Point
	Static  *glyphs.Key // set for regions painted once at startup
	glyph   *glyphs.Glyph
	handle  compositor.Handle
	rect    image.Rectangle
	visible bool
	live    bool
}

func static(k glyphs.Key) *glyphs.Key {
	return &k
}

// Region positions on the 128x128 panel.
var layout = [slotCount]Slot{
	SlotBackground:  {Name: "background", Origin: image.Pt(0, 0), Static: static(glyphs.Background)},
	SlotDivider:     {Name: "divider", Origin: image.Pt(84, 6), Static: static(glyphs.Divider)},
	SlotColon:       {Name: "colon", Origin: image.Pt(58, 44), Static: static(glyphs.Colon)},
	SlotDayName:     {Name: "day name", Origin: image.Pt(4, 6)},
	SlotMonthName:   {Name: "month name", Origin: image.Pt(44, 6)},
	SlotDateTens:    {Name: "date tens", Origin: image.Pt(94, 6)},
	SlotDateUnits:   {Name: "date units", Origin: image.Pt(106, 6)},
	SlotYear0:       {Name: "year 0", Origin: image.Pt(40, 100)},
	SlotYear1:       {Name: "year 1", Origin: image.Pt(52, 100)},
	SlotYear2:       {Name: "year 2", Origin: image.Pt(64, 100)},
	SlotYear3:       {Name: "year 3", Origin: image.Pt(76, 100)},
	SlotHourTens:    {Name: "hour tens", Origin: image.Pt(4, 44)},
	SlotHourUnits:   {Name: "hour units", Origin: image.Pt(30, 44)},
	SlotMinuteTens:  {Name: "minute tens", Origin: image.Pt(70, 44)},
	SlotMinuteUnits: {Name: "minute units", Origin: image.Pt(96, 44)},
}

var yearSlots = [4]SlotID{SlotYear0, SlotYear1, SlotYear2, SlotYear3}

func (id SlotID) String() string {
	if id < 0 || id >= slotCount {
		return "invalid slot"
	}
	return layout[id].Name
}

// SlotState is a read-only view of a slot, for inspection and tests.
type SlotState struct {
	Glyph   glyphs.Key
	Loaded  bool
	Rect    image.Rectangle
	Visible bool
}
