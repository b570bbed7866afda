package kernel

// RescaleU32 windows samples in place, S = 4294967295 (§4.2 rescale).
func RescaleU32(samples []uint32, minI, maxI uint32) {
	const s = uint64(4294967295)
	if minI == maxI {
		for i, v := range samples {
			if v <= minI {
				samples[i] = 0
			} else {
				samples[i] = uint32(s)
			}
		}
		return
	}
	span := uint64(maxI) - uint64(minI)
	for i, v := range samples {
		switch {
		case v < minI:
			samples[i] = 0
		case v > maxI:
			samples[i] = uint32(s)
		default:
			samples[i] = uint32((uint64(v-minI) * s) / span)
		}
	}
}

// CompositeU32 accumulates windowed uint32 samples into a uint64
// accumulator (the promoted width for a 32-bit source per §4.2).
//
// scale rescales the sample from this channel's own full scale
// (4294967295) up to the accumulator's common full scale before weighting
// by color, so that a full-brightness sample contributes the same share of
// the output regardless of which width it was windowed at.
func CompositeU32(accum []uint64, samples []uint32, cr, cg, cb, scale float64) {
	for i, v := range samples {
		fv := float64(v) * scale
		j := i * 3
		accum[j+0] += uint64(fv*cr + 0.5)
		accum[j+1] += uint64(fv*cg + 0.5)
		accum[j+2] += uint64(fv*cb + 0.5)
	}
}
