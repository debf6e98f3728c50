package hoverfx

import "github.com/tanema/gween/ease"

// transitionController drives the blend factor for one Mode.
type transitionController interface {
	Controller
	// TransitionTo starts a transition to the asset at index over duration
	// seconds. It reports whether the request was accepted.
	TransitionTo(index int, duration float32) bool
	// Current returns the index of the asset the controller is showing or
	// heading to.
	Current() int
	// Transitioning reports whether a blend animation is running.
	Transitioning() bool
}

// transitionBase holds what both controllers share.
type transitionBase struct {
	stage    *stage
	tweens   *Tweener
	easing   ease.TweenFunc
	speedIn  float32
	speedOut float32
	sink     EventSink
}

func newTransitionBase(cfg Config, st *stage, tweens *Tweener, sink EventSink) transitionBase {
	fn, ok := ResolveEasing(cfg.Easing)
	if !ok {
		Logger().Debug("hoverfx: unknown easing, using expo.out", "easing", cfg.Easing)
	}
	return transitionBase{
		stage:    st,
		tweens:   tweens,
		easing:   fn,
		speedIn:  float32(cfg.SpeedIn),
		speedOut: float32(cfg.SpeedOut),
		sink:     sink,
	}
}

func (b *transitionBase) emit(typ TransitionEventType, dir Direction, from, to int) {
	if b.sink == nil {
		return
	}
	b.sink.EmitEvent(TransitionEvent{
		Type:      typ,
		Direction: dir,
		From:      from,
		To:        to,
		Blend:     b.stage.Blend(),
	})
}

// renderStep is the OnUpdate callback of every blend tween.
func (b *transitionBase) renderStep(float64) {
	b.stage.Render()
}

// pairController animates the blend between exactly two assets. Requests
// retarget a running animation; the latest one wins.
type pairController struct {
	transitionBase
	target int
}

func newPairController(base transitionBase) *pairController {
	return &pairController{transitionBase: base}
}

// Next animates the blend to 1 over SpeedIn seconds.
func (c *pairController) Next() {
	c.animate(1, c.speedIn)
}

// Previous animates the blend to 0 over SpeedOut seconds.
func (c *pairController) Previous() {
	c.animate(0, c.speedOut)
}

// TransitionTo accepts index 0 or 1 and animates towards it.
func (c *pairController) TransitionTo(index int, duration float32) bool {
	if index != 0 && index != 1 {
		return false
	}
	c.animate(index, duration)
	return true
}

func (c *pairController) Current() int        { return c.target }
func (c *pairController) Transitioning() bool { return c.tweens.Active(blendProperty{c.stage}) }

func (c *pairController) animate(to int, duration float32) {
	dir := DirectionForward
	if to == 0 {
		dir = DirectionBackward
	}
	c.target = to
	c.emit(TransitionStart, dir, 1-to, to)
	c.tweens.To(blendProperty{c.stage}, TweenOptions{
		Duration: duration,
		To:       float64(to),
		Easing:   c.easing,
		OnUpdate: c.renderStep,
		OnComplete: func() {
			c.stage.Render()
			c.emit(TransitionEnd, dir, 1-to, to)
		},
	})
}
