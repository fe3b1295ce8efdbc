package world

import "math/rand"

// baseCell is the lattice spacing of the first octave.
const baseCell = 32

// layeredNoise returns w*h values in [0, 1) built from octaves of bilinearly
// interpolated value noise. Each octave halves the lattice spacing and the
// amplitude; the sum is normalised by the total amplitude.
func layeredNoise(rng *rand.Rand, w, h, octaves int) []float64 {
	out := make([]float64, w*h)
	amp, total := 1.0, 0.0
	for o := 0; o < octaves; o++ {
		cell := max(baseCell>>o, 1)
		gw, gh := w/cell+2, h/cell+2
		lattice := make([]float64, gw*gh)
		for i := range lattice {
			lattice[i] = rng.Float64()
		}
		for y := 0; y < h; y++ {
			fy := float64(y) / float64(cell)
			y0 := int(fy)
			ty := fy - float64(y0)
			for x := 0; x < w; x++ {
				fx := float64(x) / float64(cell)
				x0 := int(fx)
				tx := fx - float64(x0)
				v00 := lattice[y0*gw+x0]
				v10 := lattice[y0*gw+x0+1]
				v01 := lattice[(y0+1)*gw+x0]
				v11 := lattice[(y0+1)*gw+x0+1]
				top := v00 + (v10-v00)*tx
				bot := v01 + (v11-v01)*tx
				out[y*w+x] += amp * (top + (bot-top)*ty)
			}
		}
		total += amp
		amp /= 2
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
