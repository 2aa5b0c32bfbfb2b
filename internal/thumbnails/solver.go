package thumbnails

import (
	"math"
	"strconv"
	"strings"
)

// Seed returns the initial spec for a new thumbnail: half the source
// resolution, rounded, aspect locked, fit.
func Seed(key string, source Dimensions) (Spec, error) {
	if !source.valid() {
		return Spec{}, ErrInvalidSource
	}
	return Spec{
		Key:     key,
		Type:    TypeFit,
		Width:   max(1, int(math.Round(float64(source.Width)/2))),
		Height:  max(1, int(math.Round(float64(source.Height)/2))),
		Chained: true,
	}, nil
}

// SetDimension applies user input to one axis. The value is clamped to the
// source; when the spec is chained the other axis is derived from the source
// aspect ratio so repeated edits never drift. Invalid input leaves spec
// untouched and returns ErrInvalidDimension.
func SetDimension(spec Spec, axis Axis, raw string, source Dimensions) (Spec, error) {
	if axis != AxisWidth && axis != AxisHeight {
		return spec, ErrInvalidAxis
	}
	if !source.valid() {
		return spec, ErrInvalidSource
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return spec, ErrInvalidDimension
	}
	value = min(value, source.get(axis))

	other := otherAxis(axis)
	out := spec
	out.set(axis, value)
	if out.Chained {
		out.set(other, derive(source, axis, value))
	}
	return out, nil
}

// Conform checks spec against source before it is registered. Sides larger
// than the source fail with ErrExceedsSource. Crop specs are unchained; a
// chained fit spec that is not proportional to source gets its height
// derived from its width.
func Conform(spec Spec, source Dimensions) (Spec, error) {
	if !source.valid() {
		return spec, ErrInvalidSource
	}
	kind, err := ParseType(string(spec.Type))
	if err != nil {
		return spec, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return spec, ErrInvalidDimension
	}
	if spec.Width > source.Width || spec.Height > source.Height {
		return spec, ErrExceedsSource
	}

	out := spec
	out.Type = kind
	if kind == TypeCrop {
		out.Chained = false
		return out, nil
	}
	if out.Chained &&
		out.Height != derive(source, AxisWidth, out.Width) &&
		out.Width != derive(source, AxisHeight, out.Height) {
		out.Height = derive(source, AxisWidth, out.Width)
	}
	return out, nil
}

// SetType switches between fit and crop. Crop thumbnails are sized
// independently, so switching to crop unchains; dimensions never change.
func SetType(spec Spec, t Type) (Spec, error) {
	parsed, err := ParseType(string(t))
	if err != nil {
		return spec, err
	}
	out := spec
	out.Type = parsed
	if parsed == TypeCrop {
		out.Chained = false
	}
	return out, nil
}

// SetChained toggles the aspect lock. Dimensions are not recomputed until
// the next SetDimension.
func SetChained(spec Spec, chained bool) Spec {
	out := spec
	out.Chained = chained
	return out
}

// Clamp bounds both sides of spec to [1, source].
func Clamp(spec Spec, source Dimensions) Spec {
	out := spec
	out.Width = clamp(out.Width, 1, source.Width)
	out.Height = clamp(out.Height, 1, source.Height)
	return out
}

func (s *Spec) set(axis Axis, value int) {
	if axis == AxisHeight {
		s.Height = value
		return
	}
	s.Width = value
}

// derive returns the side opposite axis that keeps value proportional to source.
func derive(source Dimensions, axis Axis, value int) int {
	other := otherAxis(axis)
	ratio := float64(source.get(axis)) / float64(value)
	return clamp(int(math.Round(float64(source.get(other))/ratio)), 1, source.get(other))
}

func otherAxis(axis Axis) Axis {
	if axis == AxisHeight {
		return AxisWidth
	}
	return AxisHeight
}

func clamp(value, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(value, hi))
}
