package thumbnails

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDimension reports a dimension that is not a positive integer.
	ErrInvalidDimension = errors.New("thumbnails: dimension must be a positive integer")
	// ErrInvalidType reports a thumbnail type other than fit or crop.
	ErrInvalidType = errors.New("thumbnails: type must be fit or crop")
	// ErrInvalidAxis reports an axis other than width or height.
	ErrInvalidAxis = errors.New("thumbnails: axis must be width or height")
	// ErrInvalidSize reports a size string that does not match {type}{w}x{h}.
	ErrInvalidSize = errors.New("thumbnails: malformed size string")
	// ErrInvalidSource reports a source resolution with a non-positive side.
	ErrInvalidSource = errors.New("thumbnails: source dimensions must be positive")
	// ErrExceedsSource reports a thumbnail larger than its source on either side.
	ErrExceedsSource = errors.New("thumbnails: dimensions exceed the source resolution")
)

// Type selects how a thumbnail is generated from its source.
type Type string

const (
	TypeFit  Type = "fit"
	TypeCrop Type = "crop"
)

// ParseType accepts "fit" or "crop" in any case.
func ParseType(value string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(value))) {
	case TypeFit:
		return TypeFit, nil
	case TypeCrop:
		return TypeCrop, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, value)
	}
}

// Axis names one side of an image.
type Axis string

const (
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) valid() bool { return d.Width > 0 && d.Height > 0 }

func (d Dimensions) get(axis Axis) int {
	if axis == AxisHeight {
		return d.Height
	}
	return d.Width
}

// Spec describes one derived size of a media item.
type Spec struct {
	Key     string `json:"key"`
	Type    Type   `json:"type"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Chained bool   `json:"chained"`
}

// Size returns the canonical server identifier, e.g. "fit600x400".
func (s Spec) Size() string {
	return FormatSize(s.Type, s.Width, s.Height)
}

// Dimensions returns the spec's width and height.
func (s Spec) Dimensions() Dimensions {
	return Dimensions{Width: s.Width, Height: s.Height}
}

// FormatSize renders {type}{width}x{height}.
func FormatSize(t Type, width, height int) string {
	return fmt.Sprintf("%s%dx%d", t, width, height)
}

var sizePattern = regexp.MustCompile(`^(fit|crop)(\d+)x(\d+)$`)

// ParseSize decodes a size string produced by FormatSize.
func ParseSize(size string) (Type, Dimensions, error) {
	match := sizePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(size)))
	if match == nil {
		return "", Dimensions{}, fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	width, _ := strconv.Atoi(match[2])
	height, _ := strconv.Atoi(match[3])
	if width <= 0 || height <= 0 {
		return "", Dimensions{}, fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	return Type(match[1]), Dimensions{Width: width, Height: height}, nil
}
