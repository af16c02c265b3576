package pixelate

import (
	"errors"
	"image"
	"sync/atomic"
)

// ErrNoImage is returned when no image has been loaded yet
var ErrNoImage = errors.New("no image loaded")

// Store holds the current source image. Loading a new image replaces the
// reference wholesale; the stored image is never modified in place, so
// callers must not write to what Current returns.
type Store struct {
	current atomic.Pointer[image.RGBA]
	loads   atomic.Uint64
}

// Replace hands ownership of img to the store
func (s *Store) Replace(img *image.RGBA) {
	s.current.Store(img)
	s.loads.Add(1)
}

// Current returns the current image, or ErrNoImage
func (s *Store) Current() (*image.RGBA, error) {
	img := s.current.Load()
	if img == nil {
		return nil, ErrNoImage
	}
	return img, nil
}

// Generation increments on every Replace. Callers compare it to decide
// whether the processed output needs recomputing.
func (s *Store) Generation() uint64 {
	return s.loads.Load()
}
