package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/badicecream/game"
)

// DefaultFPS is the frame rate of recorded episodes
const DefaultFPS int = 10

// Recorder collects frames into an animated GIF
type Recorder struct {
	delay int
	anim  gif.GIF
}

// NewRecorder returns a new Recorder which plays frames back at fps
// frames per second
func NewRecorder(fps int) (*Recorder, error) {
	if fps < 1 || fps > 100 {
		return nil, fmt.Errorf("newRecorder: fps must be in [1, 100], got %d",
			fps)
	}
	return &Recorder{delay: 100 / fps}, nil
}

// Record adds the image of a snapshot as the next frame
func (r *Recorder) Record(s game.Snapshot) {
	r.Add(Image(s))
}

// Add adds an image as the next frame. Colours are mapped to the
// nearest colour of the web safe palette.
func (r *Recorder) Add(img image.Image) {
	bounds := img.Bounds()
	frame := image.NewPaletted(bounds, palette.WebSafe)
	draw.Draw(frame, bounds, img, bounds.Min, draw.Src)

	r.anim.Image = append(r.anim.Image, frame)
	r.anim.Delay = append(r.anim.Delay, r.delay)
}

// Len returns the number of recorded frames
func (r *Recorder) Len() int {
	return len(r.anim.Image)
}

// Encode writes the recorded frames as a GIF
func (r *Recorder) Encode(w io.Writer) error {
	if r.Len() == 0 {
		return fmt.Errorf("encode: no frames recorded")
	}
	return gif.EncodeAll(w, &r.anim)
}

// Save writes the recorded frames as a GIF to filename
func (r *Recorder) Save(filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if err := r.Encode(file); err != nil {
		file.Close()
		return fmt.Errorf("save: %w", err)
	}
	return file.Close()
}
