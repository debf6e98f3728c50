// Package hoverfx renders a displaced cross-fade between two or more images
// or looping clips for [Ebitengine], the "hover distortion" effect.
//
// An effect owns an offscreen surface sized to a host [Container]. A Kage
// shader samples a grayscale displacement map, rotates and scales the sample
// per asset, offsets each asset's texture lookup by it and mixes the two
// results by a single blend factor. Animating that factor with [gween]
// produces the liquid transition.
//
// # Quick start
//
//	region := hoverfx.NewRegion(0, 0, 640, 400)
//	fx, err := hoverfx.New(hoverfx.Options{
//		Container:    region,
//		Displacement: "assets/disp.png",
//		Image1:       "assets/a.jpg",
//		Image2:       "assets/b.jpg",
//		ImagesRatio:  hoverfx.Ptr(400.0 / 640.0),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	hoverfx.Run(fx, hoverfx.RunConfig{Title: "hover", Width: 640, Height: 400})
//
// For full control, call [Effect.Update] and [Effect.Draw] from your own
// [ebiten.Game] and [Effect.HandleResize] after changing the container.
//
// # Modes
//
// With Image1 and Image2 the effect runs in pair mode: [Effect.Next]
// animates towards the second asset, [Effect.Previous] back to the first,
// and a new request retargets a running animation. With Images the effect
// is a carousel: Next and Previous cycle through the list and requests made
// while a transition runs are ignored.
//
// With Hover enabled (the default) pointer enter and touch start call Next,
// pointer leave and touch end call Previous.
//
// # Options
//
// Optional settings fall back from specific to general to default:
// Intensity1 and Intensity2 fall back to Intensity, Angle1 to Angle,
// Angle2 to -3 × Angle, SpeedIn and SpeedOut to Speed. See [Resolve].
// Options can also be decoded from JSON with [LoadOptions].
//
// # Diagnostics
//
// hoverfx is silent unless a logger is installed with [SetLogger]. ECS
// integration lives in the hoverfx/ecs module ([Donburi] adapter).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package hoverfx
