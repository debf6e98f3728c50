package hoverfx

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// easeFamily groups the in/out/inOut/outIn variants of one easing curve.
type easeFamily struct {
	in, out, inOut, outIn ease.TweenFunc
}

var easeFamilies = map[string]easeFamily{
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad, ease.OutInQuad},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic, ease.OutInCubic},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart, ease.OutInQuart},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint, ease.OutInQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine, ease.OutInSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo, ease.OutInExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc, ease.OutInCirc},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic, ease.OutInElastic},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack, ease.OutInBack},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce, ease.OutInBounce},
}

// Aliases used by timeline libraries: powerN is the (N+1)th-degree polynomial.
var easeAliases = map[string]string{
	"power1": "quad",
	"power2": "cubic",
	"power3": "quart",
	"power4": "quint",
	"strong": "quint",
}

// ResolveEasing maps an easing name to a tween function. Accepted forms:
//
//	"expo.out", "power2.inOut", "sine.in"   family.variant
//	"expo"                                  bare family, same as family.out
//	"none", "linear", "power0"              linear
//	"OutExpo", "InOutQuad", "Linear"        ease package function names
//
// Matching is case-insensitive. The second result is false when the name is
// unknown, in which case the returned function is ease.OutExpo.
func ResolveEasing(name string) (ease.TweenFunc, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "none", "linear", "power0", "linear.none", "power0.none":
		return ease.Linear, true
	}

	if family, variant, ok := strings.Cut(n, "."); ok {
		if fn := lookupVariant(family, variant); fn != nil {
			return fn, true
		}
		return ease.OutExpo, false
	}
	if fn := lookupVariant(n, "out"); fn != nil {
		return fn, true
	}

	// ease package names: "outexpo", "inoutquad", "outinback".
	for _, prefix := range [...]string{"inout", "outin", "in", "out"} {
		if rest, ok := strings.CutPrefix(n, prefix); ok {
			if fn := lookupVariant(rest, prefix); fn != nil {
				return fn, true
			}
		}
	}
	return ease.OutExpo, false
}

func lookupVariant(family, variant string) ease.TweenFunc {
	if alias, ok := easeAliases[family]; ok {
		family = alias
	}
	f, ok := easeFamilies[family]
	if !ok {
		return nil
	}
	switch variant {
	case "in":
		return f.in
	case "out":
		return f.out
	case "inout":
		return f.inOut
	case "outin":
		return f.outIn
	}
	return nil
}
