package lattice

// SlotCount returns the number of unit edges in a cells×cells×cells grid.
func SlotCount(cells int) int {
	if cells <= 0 {
		return 0
	}
	side := cells + 1
	return 3 * cells * side * side
}

// EdgeSlots enumerates the midpoint of every unit edge of the grid, x-parallel
// edges first, then y, then z, normalized from [0,cells] to [-1,1].
func EdgeSlots(cells int) []Point3 {
	slots := make([]Point3, 0, SlotCount(cells))
	if cells <= 0 {
		return slots
	}

	for y := 0; y <= cells; y++ {
		for z := 0; z <= cells; z++ {
			for x := 0; x < cells; x++ {
				slots = append(slots, gridPoint(cells, float64(x)+0.5, float64(y), float64(z)))
			}
		}
	}
	for x := 0; x <= cells; x++ {
		for z := 0; z <= cells; z++ {
			for y := 0; y < cells; y++ {
				slots = append(slots, gridPoint(cells, float64(x), float64(y)+0.5, float64(z)))
			}
		}
	}
	for x := 0; x <= cells; x++ {
		for y := 0; y <= cells; y++ {
			for z := 0; z < cells; z++ {
				slots = append(slots, gridPoint(cells, float64(x), float64(y), float64(z)+0.5))
			}
		}
	}
	return slots
}

// gridPoint maps grid coordinates to normalized space.
func gridPoint(cells int, x, y, z float64) Point3 {
	return Point3{normalize(x, cells), normalize(y, cells), normalize(z, cells)}
}

// normalize maps v in [0,cells] to [-1,1].
func normalize(v float64, cells int) float64 {
	return float64((v/float64(cells))*2) - 1
}
