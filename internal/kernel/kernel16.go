package kernel

// RescaleU16 windows samples in place, S = 65535 (§4.2 rescale).
func RescaleU16(samples []uint16, minI, maxI uint16) {
	const s = uint64(65535)
	if minI == maxI {
		for i, v := range samples {
			if v <= minI {
				samples[i] = 0
			} else {
				samples[i] = uint16(s)
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
			samples[i] = uint16(s)
		default:
			samples[i] = uint16((uint64(v-minI) * s) / span)
		}
	}
}

// CompositeU16 accumulates windowed uint16 samples into a uint64
// accumulator, the single accumulator width shared by all source widths.
//
// scale rescales the sample from this channel's own full scale (65535) up
// to the accumulator's common full scale before weighting by color, so
// that a full-brightness sample contributes the same share of the output
// regardless of which width it was windowed at.
func CompositeU16(accum []uint64, samples []uint16, cr, cg, cb, scale float64) {
	for i, v := range samples {
		fv := float64(v) * scale
		j := i * 3
		accum[j+0] += uint64(fv*cr + 0.5)
		accum[j+1] += uint64(fv*cg + 0.5)
		accum[j+2] += uint64(fv*cb + 0.5)
	}
}
