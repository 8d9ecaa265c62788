package apu

// mix combines the five channel outputs into one sample using the standard
// nonlinear approximation of the hardware DAC network.
func mix(p1, p2, tri, noise, dmc uint8) float32 {
	var pulseMix float64
	if p1+p2 > 0 {
		pulseMix = 95.88 / (8128.0/float64(p1+p2) + 100.0)
	}

	var tndMix float64
	if tri > 0 || noise > 0 || dmc > 0 {
		tnd := float64(tri)/8227.0 + float64(noise)/12241.0 + float64(dmc)/22638.0
		tndMix = 159.79 / (1.0/tnd + 100.0)
	}

	return float32(pulseMix + tndMix)
}
