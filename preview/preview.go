package preview

import (
	"image"
	"image/color"

	"github.com/d2r2/go-logger"
	"github.com/fogleman/gg"
)

var lg = logger.NewPackageLogger("preview", logger.InfoLevel)

// Surface stands in for the panel when no display is attached. Every
// rendered frame is written to a PNG file.
type Surface struct {
	*gg.Context
	Width, Height int
	Path          string
	Frames        int
}

// Creates a preview surface. An empty path keeps frames in memory only.
func New(width, height int, path string) *Surface {
	return &Surface{
		Context: gg.NewContextForImage(image.NewGray(image.Rect(0, 0, width, height))),
		Width:   width,
		Height:  height,
		Path:    path,
	}
}

func (s *Surface) Clear(state color.Color) {
	s.SetColor(state)
	s.DrawRectangle(0, 0, float64(s.Width), float64(s.Height))
	s.Fill()
}

func (s *Surface) Render() {
	s.Frames++
	if s.Path == "" {
		return
	}
	if err := s.SavePNG(s.Path); err != nil {
		lg.Errorf("⚠️ Failed to write preview %s: %v", s.Path, err)
	}
}
