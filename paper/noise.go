package paper

import (
	"math"
	"math/rand/v2"
)

const fbmOctaves = 4

// noise is classic 3D Perlin noise over a shuffled permutation table.
type noise struct {
	perm [512]uint8
}

func newNoise(rng *rand.Rand) *noise {
	n := &noise{}
	for i := 0; i < 256; i++ {
		n.perm[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		j := rng.IntN(i + 1)
		n.perm[i], n.perm[j] = n.perm[j], n.perm[i]
	}
	for i := 0; i < 256; i++ {
		n.perm[256+i] = n.perm[i]
	}
	return n
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// at returns Perlin noise at (x, y, z), roughly in [-1, 1].
func (n *noise) at(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255
	x -= fx
	y -= fy
	z -= fz

	u, v, w := fade(x), fade(y), fade(z)
	p := &n.perm

	A := int(p[X]) + Y
	AA := int(p[A]) + Z
	AB := int(p[A+1]) + Z
	B := int(p[X+1]) + Y
	BA := int(p[B]) + Z
	BB := int(p[B+1]) + Z

	return lerp(w,
		lerp(v,
			lerp(u, grad(p[AA], x, y, z), grad(p[BA], x-1, y, z)),
			lerp(u, grad(p[AB], x, y-1, z), grad(p[BB], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p[AA+1], x, y, z-1), grad(p[BA+1], x-1, y, z-1)),
			lerp(u, grad(p[AB+1], x, y-1, z-1), grad(p[BB+1], x-1, y-1, z-1))))
}

// fbm sums four octaves of noise, each at double frequency and half
// amplitude, normalized back to roughly [-1, 1].
func (n *noise) fbm(x, y, z float64) float64 {
	var total, maxValue float64
	amplitude, frequency := 1.0, 1.0
	for i := 0; i < fbmOctaves; i++ {
		total += n.at(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return total / maxValue
}
