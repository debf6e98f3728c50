package hoverfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animatable is a float property a Tweener can drive.
type Animatable interface {
	Value() float64
	SetValue(v float64)
}

// TweenOptions describes one tween.
type TweenOptions struct {
	// Duration in seconds. Zero or negative jumps to To on the next Update.
	Duration float32
	// To is the end value. The start value is the target's current value.
	To float64
	// Easing defaults to ease.OutExpo when nil.
	Easing ease.TweenFunc
	// OnUpdate is called after every step with the value just applied.
	OnUpdate func(v float64)
	// OnComplete is called once, after the final OnUpdate.
	OnComplete func()
}

// Tween is one running animation of a single target. Done is set when it
// finished or was replaced by another tween on the same target.
type Tween struct {
	target Animatable
	tween  *gween.Tween
	opts   TweenOptions
	Done   bool
}

// step advances the tween by dt seconds and applies the value to the target.
func (tw *Tween) step(dt float32) (finished bool) {
	var v float64
	if tw.tween == nil {
		v, finished = tw.opts.To, true
	} else {
		val, done := tw.tween.Update(dt)
		v, finished = float64(val), done
		if finished {
			v = tw.opts.To
		}
	}
	tw.target.SetValue(v)
	if tw.opts.OnUpdate != nil {
		tw.opts.OnUpdate(v)
	}
	return finished
}

// Tweener keeps at most one tween per target. Starting a tween on a target
// that is already animating replaces the running one, continuing from the
// current value. There is no global manager; owners call Update each frame.
type Tweener struct {
	tweens  []*Tween
	scratch []*Tween
}

// NewTweener creates an empty Tweener.
func NewTweener() *Tweener {
	return &Tweener{}
}

// To starts animating target towards opts.To, replacing any tween already
// running on target. The replaced tween's OnComplete is not called.
func (m *Tweener) To(target Animatable, opts TweenOptions) *Tween {
	fn := opts.Easing
	if fn == nil {
		fn = ease.OutExpo
	}
	tw := &Tween{target: target, opts: opts}
	if opts.Duration > 0 {
		tw.tween = gween.New(float32(target.Value()), float32(opts.To), opts.Duration, fn)
	}

	for i, existing := range m.tweens {
		if existing.target == target {
			existing.Done = true
			m.tweens[i] = tw
			return tw
		}
	}
	m.tweens = append(m.tweens, tw)
	return tw
}

// Update advances every tween by dt seconds. Callbacks may start or kill
// tweens; changes take effect from the next Update.
func (m *Tweener) Update(dt float32) {
	if len(m.tweens) == 0 {
		return
	}
	m.scratch = append(m.scratch[:0], m.tweens...)
	for _, tw := range m.scratch {
		if tw.Done {
			continue
		}
		if tw.step(dt) {
			tw.Done = true
			m.remove(tw)
			if tw.opts.OnComplete != nil {
				tw.opts.OnComplete()
			}
		}
	}
	clear(m.scratch)
	m.scratch = m.scratch[:0]
}

// Kill stops the tween running on target without completing it. Returns
// false when target was not animating.
func (m *Tweener) Kill(target Animatable) bool {
	for _, tw := range m.tweens {
		if tw.target == target {
			tw.Done = true
			m.remove(tw)
			return true
		}
	}
	return false
}

// KillAll stops every tween without completing them.
func (m *Tweener) KillAll() {
	for _, tw := range m.tweens {
		tw.Done = true
	}
	clear(m.tweens)
	m.tweens = m.tweens[:0]
}

// Active reports whether target has a running tween.
func (m *Tweener) Active(target Animatable) bool {
	for _, tw := range m.tweens {
		if tw.target == target {
			return true
		}
	}
	return false
}

// Len returns the number of running tweens.
func (m *Tweener) Len() int {
	return len(m.tweens)
}

func (m *Tweener) remove(tw *Tween) {
	for i, existing := range m.tweens {
		if existing == tw {
			copy(m.tweens[i:], m.tweens[i+1:])
			m.tweens[len(m.tweens)-1] = nil
			m.tweens = m.tweens[:len(m.tweens)-1]
			return
		}
	}
}
