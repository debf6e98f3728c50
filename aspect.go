package hoverfx

// ComputeScale returns the UV scale factors (a1, a2) that keep assets with the
// given height/width ratio cover-fit inside a container of size
// containerW × containerH. Exactly one factor is 1 unless the container's
// height/width ratio equals assetRatio, in which case both are.
//
// A degenerate container (zero or negative size) or ratio yields (1, 1).
func ComputeScale(containerW, containerH, assetRatio float64) (a1, a2 float64) {
	if containerW <= 0 || containerH <= 0 || assetRatio <= 0 {
		return 1, 1
	}
	if containerH/containerW < assetRatio {
		return 1, (containerH / containerW) / assetRatio
	}
	return (containerW / containerH) * assetRatio, 1
}
