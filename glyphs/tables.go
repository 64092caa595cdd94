package glyphs

import "fmt"

type Kind uint8

const (
	KindBackground Kind = iota
	KindDivider
	KindColon
	KindDayName
	KindMonthName
	KindSmallDigit
	KindBigDigit
)

// Key names a glyph by meaning. Raw sprite paths only appear in the tables below.
type Key struct {
	Kind  Kind
	Index int
}

var (
	Background = Key{Kind: KindBackground}
	Divider    = Key{Kind: KindDivider}
	Colon      = Key{Kind: KindColon}
)

var day_name_sprites = [7]string{
	"days/sun",
	"days/mon",
	"days/tue",
	"days/wed",
	"days/thu",
	"days/fri",
	"days/sat",
}

var month_name_sprites = [12]string{
	"months/jan",
	"months/feb",
	"months/mar",
	"months/apr",
	"months/may",
	"months/jun",
	"months/jul",
	"months/aug",
	"months/sep",
	"months/oct",
	"months/nov",
	"months/dec",
}

var small_digit_sprites = [10]string{
	"digits/small/0",
	"digits/small/1",
	"digits/small/2",
	"digits/small/3",
	"digits/small/4",
	"digits/small/5",
	"digits/small/6",
	"digits/small/7",
	"digits/small/8",
	"digits/small/9",
}

var big_digit_sprites = [10]string{
	"digits/big/0",
	"digits/big/1",
	"digits/big/2",
	"digits/big/3",
	"digits/big/4",
	"digits/big/5",
	"digits/big/6",
	"digits/big/7",
	"digits/big/8",
	"digits/big/9",
}

// DayName returns the key for a weekday, 0 being Sunday.
func DayName(weekday int) Key {
	checkIndex("weekday", weekday, len(day_name_sprites))
	return Key{Kind: KindDayName, Index: weekday}
}

// MonthName returns the key for a month, 0 being January.
func MonthName(month int) Key {
	checkIndex("month", month, len(month_name_sprites))
	return Key{Kind: KindMonthName, Index: month}
}

func SmallDigit(digit int) Key {
	checkIndex("digit", digit, len(small_digit_sprites))
	return Key{Kind: KindSmallDigit, Index: digit}
}

func BigDigit(digit int) Key {
	checkIndex("digit", digit, len(big_digit_sprites))
	return Key{Kind: KindBigDigit, Index: digit}
}

// Out of range indices can only come from a malformed calendar sample.
func checkIndex(what string, index, size int) {
	if index < 0 || index >= size {
		panic(fmt.Sprintf("%s index %d out of range [0,%d)", what, index, size))
	}
}

// Path resolves the key to its sprite path, without the file extension.
func (k Key) Path() string {
	switch k.Kind {
	case KindBackground:
		return "background"
	case KindDivider:
		return "divider"
	case KindColon:
		return "colon"
	case KindDayName:
		return day_name_sprites[k.Index]
	case KindMonthName:
		return month_name_sprites[k.Index]
	case KindSmallDigit:
		return small_digit_sprites[k.Index]
	case KindBigDigit:
		return big_digit_sprites[k.Index]
	}
	panic(fmt.Sprintf("Unsupported glyph kind %d", k.Kind))
}

func (k Key) String() string {
	return k.Path()
}

// Keys lists every glyph the clock face can ask for.
func Keys() []Key {
	keys := []Key{Background, Divider, Colon}
	for i := range day_name_sprites {
		keys = append(keys, DayName(i))
	}
	for i := range month_name_sprites {
		keys = append(keys, MonthName(i))
	}
	for i := range small_digit_sprites {
		keys = append(keys, SmallDigit(i))
	}
	for i := range big_digit_sprites {
		keys = append(keys, BigDigit(i))
	}
	return keys
}
