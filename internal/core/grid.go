package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Field stores a 2D grid of float64 cell values in row-major order.
type Field struct {
	W, H int
	data []float64
}

// NewField allocates a zeroed field with the given dimensions.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Field{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (f *Field) Cells() []float64 { return f.data }

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// InBounds reports whether (x, y) addresses a stored value.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// At returns the value at (x, y). Callers must check bounds first.
func (f *Field) At(x, y int) float64 { return f.data[y*f.W+x] }

// Set writes v at (x, y). Callers must check bounds first.
func (f *Field) Set(x, y int, v float64) { f.data[y*f.W+x] = v }

// Fill sets every value to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Clear fills the field with zeros.
func (f *Field) Clear() { f.Fill(0) }

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	out := &Field{W: f.W, H: f.H, data: make([]float64, len(f.data))}
	copy(out.data, f.data)
	return out
}
