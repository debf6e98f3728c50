package hoverfx

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	css "github.com/mazznoer/csscolorparser"
	"golang.org/x/exp/constraints"
)

// Configuration errors returned by Resolve and New.
var (
	ErrMissingContainer    = errors.New("container is missing")
	ErrMissingDisplacement = errors.New("displacement image is missing")
	ErrMissingAssets       = errors.New("one or more images are missing")
	ErrInvalidColor        = errors.New("invalid clear color")
)

// Default values applied by Resolve when neither a specific option nor its
// general fallback is given.
const (
	DefaultImagesRatio = 1.0
	DefaultIntensity   = 1.0
	DefaultAngle       = math.Pi / 4 // 45 degrees so grayscale maps displace diagonally
	DefaultSpeedIn     = 1.6
	DefaultSpeedOut    = 1.2
	DefaultEasing      = "expo.out"
)

// Options is the loosely specified option set accepted by New. Pointer fields
// are optional; nil means "not given" and lets the resolver fall through to
// the next candidate in the chain.
//
// Either Image1 and Image2 (pair mode) or Images (carousel mode, at least two
// entries) must be set. When Images is non-empty it takes precedence.
type Options struct {
	Container    Container `json:"-"`
	Displacement string    `json:"displacementImage"`
	Image1       string    `json:"image1,omitempty"`
	Image2       string    `json:"image2,omitempty"`
	Images       []string  `json:"images,omitempty"`

	ImagesRatio *float64 `json:"imagesRatio,omitempty"`

	Intensity  *float64 `json:"intensity,omitempty"`
	Intensity1 *float64 `json:"intensity1,omitempty"`
	Intensity2 *float64 `json:"intensity2,omitempty"`

	Angle  *float64 `json:"angle,omitempty"`
	Angle1 *float64 `json:"angle1,omitempty"`
	Angle2 *float64 `json:"angle2,omitempty"`

	Speed    *float64 `json:"speed,omitempty"`
	SpeedIn  *float64 `json:"speedIn,omitempty"`
	SpeedOut *float64 `json:"speedOut,omitempty"`

	Hover  *bool   `json:"hover,omitempty"`
	Easing *string `json:"easing,omitempty"`
	Video  *bool   `json:"video,omitempty"`

	// ClearColor is any CSS color ("#fff0", "rgba(0,0,0,0.5)", "navy").
	ClearColor *string `json:"clearColor,omitempty"`
	// PixelRatio overrides the host device scale factor.
	PixelRatio *float64 `json:"pixelRatio,omitempty"`
}

// Config is the fully resolved configuration of an effect. It is immutable
// once the effect has been constructed.
type Config struct {
	Container    Container
	Displacement string
	Assets       []string
	Mode         Mode
	Kind         AssetKind

	ImagesRatio float64
	Intensity1  float64
	Intensity2  float64
	Angle1      float64
	Angle2      float64
	SpeedIn     float64
	SpeedOut    float64
	Hover       bool
	Easing      string
	ClearColor  Color
	// PixelRatio is zero when the host device scale factor should be used.
	PixelRatio float64
}

// Ptr returns a pointer to v. Handy for filling optional Options fields.
func Ptr[T any](v T) *T {
	return &v
}

// firstDefined returns the value of the first non-nil candidate, or def when
// every candidate is nil.
func firstDefined[T any](def T, chain ...*T) T {
	for _, v := range chain {
		if v != nil {
			return *v
		}
	}
	return def
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Resolve validates o and applies the fallback chains, most specific first:
//
//	ImagesRatio ← 1.0
//	Intensity1  ← Intensity ← 1.0        Intensity2 ← Intensity ← 1.0
//	Angle1      ← Angle ← π/4            Angle2     ← -3 × (Angle ← π/4)
//	SpeedIn     ← Speed ← 1.6            SpeedOut   ← Speed ← 1.2
//	Hover ← true, Easing ← "expo.out", Video ← false, ClearColor ← transparent white
//
// Resolve has no side effects.
func Resolve(o Options) (Config, error) {
	if o.Container == nil {
		return Config{}, fmt.Errorf("hoverfx: resolve: %w", ErrMissingContainer)
	}
	if o.Displacement == "" {
		return Config{}, fmt.Errorf("hoverfx: resolve: %w", ErrMissingDisplacement)
	}

	cfg := Config{
		Container:    o.Container,
		Displacement: o.Displacement,
	}

	if len(o.Images) > 0 {
		if len(o.Images) < 2 {
			return Config{}, fmt.Errorf("hoverfx: resolve: images needs at least 2 entries, got %d: %w",
				len(o.Images), ErrMissingAssets)
		}
		for i, src := range o.Images {
			if src == "" {
				return Config{}, fmt.Errorf("hoverfx: resolve: images[%d] is empty: %w", i, ErrMissingAssets)
			}
		}
		cfg.Mode = ModeCarousel
		cfg.Assets = append([]string(nil), o.Images...)
	} else {
		if o.Image1 == "" || o.Image2 == "" {
			return Config{}, fmt.Errorf("hoverfx: resolve: %w", ErrMissingAssets)
		}
		cfg.Mode = ModePair
		cfg.Assets = []string{o.Image1, o.Image2}
	}

	cfg.ImagesRatio = firstDefined(DefaultImagesRatio, o.ImagesRatio)
	cfg.Intensity1 = firstDefined(DefaultIntensity, o.Intensity1, o.Intensity)
	cfg.Intensity2 = firstDefined(DefaultIntensity, o.Intensity2, o.Intensity)

	commonAngle := firstDefined(DefaultAngle, o.Angle)
	cfg.Angle1 = firstDefined(commonAngle, o.Angle1)
	cfg.Angle2 = firstDefined(-commonAngle*3, o.Angle2)

	cfg.SpeedIn = firstDefined(DefaultSpeedIn, o.SpeedIn, o.Speed)
	cfg.SpeedOut = firstDefined(DefaultSpeedOut, o.SpeedOut, o.Speed)
	cfg.Hover = firstDefined(true, o.Hover)
	cfg.Easing = firstDefined(DefaultEasing, o.Easing)
	if firstDefined(false, o.Video) {
		cfg.Kind = AssetVideo
	}

	cfg.ClearColor = ColorTransparentWhite
	if o.ClearColor != nil {
		c, err := parseColor(*o.ClearColor)
		if err != nil {
			return Config{}, fmt.Errorf("hoverfx: resolve: %w", err)
		}
		cfg.ClearColor = c
	}
	if o.PixelRatio != nil && *o.PixelRatio > 0 {
		cfg.PixelRatio = *o.PixelRatio
	}
	return cfg, nil
}

// parseColor converts a CSS color string into a Color.
func parseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	return Color{
		R: clamp(c.R, 0, 1),
		G: clamp(c.G, 0, 1),
		B: clamp(c.B, 0, 1),
		A: clamp(c.A, 0, 1),
	}, nil
}

// LoadOptions parses a JSON options document. Field names follow the option
// names of the hover-effect JavaScript library (displacementImage, image1,
// imagesRatio, speedIn, ...). The container cannot be expressed in JSON and
// must be set on the returned Options before calling New.
func LoadOptions(jsonData []byte) (Options, error) {
	var o Options
	if err := json.Unmarshal(jsonData, &o); err != nil {
		return Options{}, fmt.Errorf("hoverfx: parse options: %w", err)
	}
	return o, nil
}
