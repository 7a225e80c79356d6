package frames

import (
	"fmt"
	"image"
	"path"

	"github.com/Zachkp/diary/internal/lang"
)

// Index addresses one still of the avatar morph sequence.
type Index int

const (
	First Index = 1
	Last  Index = 40
	Count       = int(Last)
)

// SequenceDir is the URL directory the frame assets are served from.
const SequenceDir = "/avatar/sequence"

// Clamp keeps i inside [First, Last].
func Clamp(i int) Index {
	if i < int(First) {
		return First
	}
	if i > int(Last) {
		return Last
	}
	return Index(i)
}

func (i Index) Valid() bool { return i >= First && i <= Last }

// Name is the asset file name of frame i, e.g. ezgif-frame-007.webp.
func Name(i Index) string {
	return fmt.Sprintf("ezgif-frame-%03d.webp", int(Clamp(int(i))))
}

// URLPath is the served path of frame i.
func URLPath(i Index) string {
	return path.Join(SequenceDir, Name(i))
}

// For returns the resting frame of a language: First for the primary
// language, Last for the secondary one.
func For(l lang.Language) Index {
	if l.IsPrimary() {
		return First
	}
	return Last
}

// Source is anything that can hand out decoded frames.
type Source interface {
	At(i Index) (image.Image, bool)
}

// Store holds the decoded frames. It is written only by the Preloader and is
// read-only once readiness is signalled.
type Store struct {
	images [Count + 1]image.Image
}

func NewStore() *Store { return &Store{} }

// At returns the bitmap for i. ok is false for out-of-range indices and for
// frames that failed to load.
func (s *Store) At(i Index) (image.Image, bool) {
	if s == nil || !i.Valid() {
		return nil, false
	}
	img := s.images[i]
	return img, img != nil
}

// Put registers the bitmap for i. Out-of-range indices are ignored.
func (s *Store) Put(i Index, img image.Image) {
	if !i.Valid() {
		return
	}
	s.images[i] = img
}

// Loaded counts the frames that have a bitmap.
func (s *Store) Loaded() int {
	n := 0
	for i := First; i <= Last; i++ {
		if s.images[i] != nil {
			n++
		}
	}
	return n
}
