package glyphs

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sync"

	"github.com/d2r2/go-logger"
	"github.com/sergeymakinen/go-bmp"
)

//go:embed sprites/*
var sprite_fs embed.FS

var lg = logger.NewPackageLogger("glyphs", logger.InfoLevel)

var ErrMissingGlyph = errors.New("glyph asset missing")

// Glyph is a decoded sprite. It belongs to exactly one region at a time.
type Glyph struct {
	Key      Key
	Image    image.Image
	released bool
}

// Size returns the natural pixel dimensions of the glyph.
func (g *Glyph) Size() image.Point {
	return g.Image.Bounds().Size()
}

// Store decodes glyphs on demand from a sprite tree of BMP files.
type Store struct {
	fsys     fs.FS
	lock     sync.Mutex
	loaded   int
	released int
}

// Creates a store reading sprites from fsys. Paths are Key.Path() + ".bmp".
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Creates a store over the sprites compiled into the binary.
func Embedded() *Store {
	sub, err := fs.Sub(sprite_fs, "sprites")
	if err != nil {
		panic(err)
	}
	return NewStore(sub)
}

// Load decodes a fresh copy of the glyph. Every successful Load must be paired
// with exactly one Release.
func (s *Store) Load(key Key) (*Glyph, error) {
	filename := key.Path() + ".bmp"
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingGlyph, filename)
		}
		return nil, fmt.Errorf("reading %s failed: %w", filename, err)
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s failed: %w", filename, err)
	}

	s.lock.Lock()
	s.loaded++
	s.lock.Unlock()

	lg.Debugf("Loaded glyph %s (%dx%d)", key, img.Bounds().Dx(), img.Bounds().Dy())
	return &Glyph{Key: key, Image: img}, nil
}

// Release frees a glyph. Releasing the same glyph twice panics.
func (s *Store) Release(g *Glyph) {
	if g == nil {
		return
	}
	if g.released {
		panic(fmt.Sprintf("glyph %s released twice", g.Key))
	}
	g.released = true
	g.Image = nil

	s.lock.Lock()
	s.released++
	s.lock.Unlock()
}

// Stats reports how many glyphs were loaded and released so far.
func (s *Store) Stats() (loaded, released int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.loaded, s.released
}
