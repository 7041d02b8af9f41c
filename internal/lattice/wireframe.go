package lattice

// Wireframe returns the grid lines of the cube as unit segments, two points
// per segment, normalized to [-1,1] and multiplied by scale. The result does
// not depend on any node or edge data.
func Wireframe(cells int, scale float64) []Point3 {
	if cells <= 0 {
		return []Point3{}
	}
	side := cells + 1
	points := make([]Point3, 0, 2*3*side*side*cells)

	segment := func(a, b [3]int) {
		points = append(points, scaledPoint(cells, scale, a), scaledPoint(cells, scale, b))
	}

	for y := 0; y <= cells; y++ {
		for z := 0; z <= cells; z++ {
			for x := 0; x < cells; x++ {
				segment([3]int{x, y, z}, [3]int{x + 1, y, z})
			}
		}
	}
	for x := 0; x <= cells; x++ {
		for z := 0; z <= cells; z++ {
			for y := 0; y < cells; y++ {
				segment([3]int{x, y, z}, [3]int{x, y + 1, z})
			}
		}
	}
	for x := 0; x <= cells; x++ {
		for y := 0; y <= cells; y++ {
			for z := 0; z < cells; z++ {
				segment([3]int{x, y, z}, [3]int{x, y, z + 1})
			}
		}
	}
	return points
}

func scaledPoint(cells int, scale float64, p [3]int) Point3 {
	var out Point3
	for i, v := range p {
		out[i] = normalize(float64(v), cells) * scale
	}
	return out
}
