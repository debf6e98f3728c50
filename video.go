package hoverfx

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// ErrEmptyClip is returned by decoders for a clip with no frames.
var ErrEmptyClip = errors.New("clip has no frames")

// ErrClipDelays is returned for a clip whose delay count differs from its
// frame count.
var ErrClipDelays = errors.New("clip delays do not match frames")

// Clip is a decoded video: fully composited frames and how long each is shown.
type Clip struct {
	Frames []*image.RGBA
	Delays []time.Duration
}

// Duration returns the total playback time of one loop.
func (c *Clip) Duration() time.Duration {
	var d time.Duration
	for _, delay := range c.Delays {
		d += delay
	}
	return d
}

// normalize checks the clip is playable and raises non-positive delays to
// gifMinDelay.
func (c *Clip) normalize() error {
	if c == nil || len(c.Frames) == 0 {
		return ErrEmptyClip
	}
	if len(c.Delays) != len(c.Frames) {
		return fmt.Errorf("%w: %d frames, %d delays", ErrClipDelays, len(c.Frames), len(c.Delays))
	}
	for i, f := range c.Frames {
		if f == nil {
			return fmt.Errorf("%w: frame %d is nil", ErrEmptyClip, i)
		}
	}
	for i, d := range c.Delays {
		if d <= 0 {
			c.Delays[i] = gifMinDelay
		}
	}
	return nil
}

// VideoDecoder decodes a clip from r.
type VideoDecoder func(r io.Reader) (*Clip, error)

// gifMinDelay is the delay used for frames that declare 0 or 1 hundredths
// of a second, which browsers render at 10 fps.
const gifMinDelay = 100 * time.Millisecond

// DecodeGIF decodes an animated GIF, applying each frame's disposal method so
// every returned frame is a complete picture.
func DecodeGIF(r io.Reader) (*Clip, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("hoverfx: decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("hoverfx: decode gif: %w", ErrEmptyClip)
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	bounds := image.Rect(0, 0, w, h)
	canvas := image.NewRGBA(bounds)
	var saved *image.RGBA

	clip := &Clip{
		Frames: make([]*image.RGBA, 0, len(g.Image)),
		Delays: make([]time.Duration, 0, len(g.Image)),
	}
	for i, frame := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = image.NewRGBA(bounds)
			copy(saved.Pix, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		out := image.NewRGBA(bounds)
		copy(out.Pix, canvas.Pix)
		clip.Frames = append(clip.Frames, out)

		delay := gifMinDelay
		if i < len(g.Delay) && g.Delay[i] > 1 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		clip.Delays = append(clip.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if saved != nil {
				copy(canvas.Pix, saved.Pix)
			}
		}
	}
	return clip, nil
}

// VideoPlayer plays a clip into a texture. Players created by hoverfx loop,
// are muted and start playing as soon as the first frame is decoded.
type VideoPlayer struct {
	Source   string
	Loop     bool
	Muted    bool
	Autoplay bool

	clip     *Clip
	texture  *Texture
	frame    int
	elapsed  time.Duration
	playing  bool
	disposed bool
}

func newVideoPlayer(source string) *VideoPlayer {
	return &VideoPlayer{Source: source, Loop: true, Muted: true, Autoplay: true}
}

// setClip installs a decoded clip and creates a fresh texture showing its
// first frame.
func (p *VideoPlayer) setClip(c *Clip) *Texture {
	p.clip = c
	p.frame = 0
	p.elapsed = 0
	p.texture = newTexture(p.Source)
	p.texture.setPixels(c.Frames[0])
	if p.Autoplay {
		p.playing = true
	}
	return p.texture
}

// Ready reports whether the first frame has been decoded.
func (p *VideoPlayer) Ready() bool {
	return p.clip != nil && !p.disposed
}

// Texture returns the texture the player renders into, or nil before the
// first frame is decoded.
func (p *VideoPlayer) Texture() *Texture {
	return p.texture
}

// Frame returns the index of the frame currently shown.
func (p *VideoPlayer) Frame() int {
	return p.frame
}

// Play resumes playback.
func (p *VideoPlayer) Play() {
	if p.Ready() {
		p.playing = true
	}
}

// Pause stops playback on the current frame.
func (p *VideoPlayer) Pause() {
	p.playing = false
}

// Playing reports whether the player is advancing frames.
func (p *VideoPlayer) Playing() bool {
	return p.playing
}

// Update advances playback by dt and uploads the new frame into the texture
// when it changes. A non-looping player stops on its last frame.
func (p *VideoPlayer) Update(dt time.Duration) {
	if !p.playing || !p.Ready() || len(p.clip.Frames) < 2 {
		return
	}
	p.elapsed += dt
	prev := p.frame
	for p.elapsed >= p.clip.Delays[p.frame] {
		p.elapsed -= p.clip.Delays[p.frame]
		if p.frame == len(p.clip.Frames)-1 {
			if !p.Loop {
				p.elapsed = 0
				p.playing = false
				break
			}
			p.frame = 0
		} else {
			p.frame++
		}
	}
	if p.frame != prev {
		p.texture.setPixels(p.clip.Frames[p.frame])
	}
}

// dispose stops the player and drops its texture.
func (p *VideoPlayer) dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.playing = false
	if p.texture != nil {
		p.texture.Dispose()
	}
}
