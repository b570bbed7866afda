package kernel

// RescaleU8 windows samples in place: each sample is linearly remapped from
// [minI, maxI] to [0, S] with saturation, where S = 255 (§4.2 rescale).
func RescaleU8(samples []uint8, minI, maxI uint8) {
	const s = uint32(255)
	if minI == maxI {
		for i, v := range samples {
			if v <= minI {
				samples[i] = 0
			} else {
				samples[i] = uint8(s)
			}
		}
		return
	}
	span := uint32(maxI) - uint32(minI)
	for i, v := range samples {
		switch {
		case v < minI:
			samples[i] = 0
		case v > maxI:
			samples[i] = uint8(s)
		default:
			samples[i] = uint8((uint32(v-minI) * s) / span)
		}
	}
}

// CompositeU8 multiplies each windowed uint8 sample by the channel color and
// adds the product into a widened accumulator, interleaved RGB (len(accum)
// == 3*len(samples)). The accumulator element type is wider than the
// source width per the promotion rule documented in §4.2/§9.
//
// scale rescales the sample from this channel's own full scale (255) up to
// the accumulator's common full scale before weighting by color, so that a
// full-brightness sample contributes the same share of the output
// regardless of which width it was windowed at.
func CompositeU8(accum []uint64, samples []uint8, cr, cg, cb, scale float64) {
	for i, v := range samples {
		fv := float64(v) * scale
		j := i * 3
		accum[j+0] += uint64(fv*cr + 0.5)
		accum[j+1] += uint64(fv*cg + 0.5)
		accum[j+2] += uint64(fv*cb + 0.5)
	}
}
