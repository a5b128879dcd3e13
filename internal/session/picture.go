package session

import "github.com/Mohor35/collaborative-canvas/internal/canvas"

// Picture is the client's visible stroke list: the local user's completed
// strokes and remote strokes merged into one ordered sequence. It is not
// goroutine-safe; the client event loop serializes all access, mirroring
// the single-threaded model on the server side.
type Picture struct {
	strokes []*canvas.Stroke
}

// NewPicture returns an empty picture.
func NewPicture() *Picture {
	return &Picture{}
}

// Append adds a completed stroke to the end of the picture.
func (p *Picture) Append(s *canvas.Stroke) {
	p.strokes = append(p.strokes, s)
}

// Remove deletes the stroke with the given id and returns it, or nil if
// the picture does not contain it.
func (p *Picture) Remove(id string) *canvas.Stroke {
	for i, s := range p.strokes {
		if s.ID == id {
			p.strokes = append(p.strokes[:i], p.strokes[i+1:]...)
			return s
		}
	}
	return nil
}

// Replace swaps the whole picture for a snapshot received from the server.
func (p *Picture) Replace(strokes []*canvas.Stroke) {
	p.strokes = append(p.strokes[:0:0], strokes...)
}

// Clear empties the picture.
func (p *Picture) Clear() {
	p.strokes = nil
}

// Strokes returns the picture in draw order. The slice is shared; callers
// only read it.
func (p *Picture) Strokes() []*canvas.Stroke {
	return p.strokes
}

// Len reports the number of strokes in the picture.
func (p *Picture) Len() int {
	return len(p.strokes)
}
