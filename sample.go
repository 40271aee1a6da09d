package jigsaw

import "math"

// DefaultStep is the approximate distance in pixels between consecutive
// samples of a curve.
const DefaultStep = 3.0

// SamplePathSegment converts a control polyline into a dense point sequence
// spaced roughly step pixels apart. Two-point segments are subdivided
// linearly; longer ones follow a uniform Catmull-Rom spline through every
// control point. All samples are rounded to integer pixels, and the first and
// last sample always equal the rounded first and last control point.
func SamplePathSegment(points Path, step float64) Path {
	if step <= 0 {
		step = DefaultStep
	}
	switch {
	case len(points) < 2:
		out := make(Path, len(points))
		for i, p := range points {
			out[i] = p.Round()
		}
		return out
	case len(points) == 2:
		return sampleLine(points[0], points[1], step)
	default:
		return sampleCatmullRom(points, step)
	}
}

func sampleLine(a, b Vec2, step float64) Path {
	count := max(2, int(math.Ceil(a.Dist(b)/step))+1)
	out := make(Path, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		out[i] = a.Lerp(b, t).Round()
	}
	out[count-1] = b.Round()
	return out
}

func sampleCatmullRom(pts Path, step float64) Path {
	n := len(pts)
	out := Path{pts[0].Round()}

	for i := 0; i < n-1; i++ {
		// Phantom neighbours duplicate the end points.
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, n-1)]

		samples := max(3, int(math.Ceil(p1.Dist(p2)/step)))
		for s := 1; s < samples; s++ {
			t := float64(s) / float64(samples)
			out = append(out, catmullRomPoint(p0, p1, p2, p3, t).Round())
		}
		out = append(out, p2.Round())
	}
	return out
}

// catmullRomPoint evaluates the uniform Catmull-Rom basis at t in [0, 1]
// between p1 and p2.
func catmullRomPoint(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t
	return Vec2{
		X: 0.5 * (2*p1.X +
			(-p0.X+p2.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y +
			(-p0.Y+p2.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}
