package hoverfx

// carousel cycles through N assets. At most one transition runs at a time;
// requests made while one is in flight are dropped.
//
// Idle state: Texture1 is the current asset and Blend is 0. A transition
// binds the target as Texture2, animates Blend to 1, then commits the target
// into Texture1 and resets Blend to 0 without a visible change.
type carousel struct {
	transitionBase
	assets       []*Texture
	current      int
	inTransition bool
}

// newCarousel shares the assets slice with its owner so texture swaps are
// seen by later transitions.
func newCarousel(base transitionBase, assets []*Texture) *carousel {
	return &carousel{transitionBase: base, assets: assets}
}

// Next moves to the following asset, wrapping to the first, over SpeedIn.
func (c *carousel) Next() {
	if len(c.assets) == 0 {
		return
	}
	c.transitionTo((c.current+1)%len(c.assets), c.speedIn, DirectionForward)
}

// Previous moves to the preceding asset, wrapping to the last, over
// SpeedOut.
func (c *carousel) Previous() {
	n := len(c.assets)
	if n == 0 {
		return
	}
	c.transitionTo((c.current-1+n)%n, c.speedOut, DirectionBackward)
}

// TransitionTo transitions to the asset at index. It returns false without
// any effect when a transition is already running, the index is out of
// range, or index is the current asset.
func (c *carousel) TransitionTo(index int, duration float32) bool {
	dir := DirectionForward
	if index < c.current {
		dir = DirectionBackward
	}
	return c.transitionTo(index, duration, dir)
}

func (c *carousel) Current() int        { return c.current }
func (c *carousel) Transitioning() bool { return c.inTransition }

func (c *carousel) transitionTo(index int, duration float32, dir Direction) bool {
	if c.inTransition || index < 0 || index >= len(c.assets) || index == c.current {
		return false
	}
	c.inTransition = true
	from := c.current

	c.stage.SetAssetTexture(slotTexture2, c.assets[index])
	c.emit(TransitionStart, dir, from, index)
	c.tweens.To(blendProperty{c.stage}, TweenOptions{
		Duration: duration,
		To:       1,
		Easing:   c.easing,
		OnUpdate: c.renderStep,
		OnComplete: func() {
			c.stage.SetAssetTexture(slotTexture1, c.assets[index])
			c.stage.SetBlend(0)
			c.current = index
			c.inTransition = false
			c.stage.Render()
			c.emit(TransitionEnd, dir, from, index)
		},
	})
	return true
}
