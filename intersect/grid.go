package intersect

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion/mesh"
)

// cellKey is the integer coordinate of a grid cell
type cellKey struct {
	X, Y, Z int
}

type cell struct {
	indices []int
}

// spatialGrid is a uniform grid hashed into a fixed power-of-two number of buckets.
// Hash collisions only add candidates, callers filter them with an exact test.
type spatialGrid struct {
	cellSize float64
	cells    []cell
	cellMask int
}

func newSpatialGrid(cellSize float64, numCells int) *spatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 4)
	}

	return &spatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// nextPowerOfTwo rounds n up to a power of two
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// insert registers index in every cell box touches
func (sg *spatialGrid) insert(index int, box mesh.AABB) {
	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := sg.hashCell(cellKey{x, y, z})
				sg.cells[idx].indices = append(sg.cells[idx].indices, index)
			}
		}
	}
}

func (sg *spatialGrid) sortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].indices) > 1 {
			sort.Ints(sg.cells[i].indices)
		}
	}
}

// query calls fn once per distinct index stored in the cells box touches.
// seen must be sized to the number of inserted indices; stamp must differ from
// every value already stored in it.
func (sg *spatialGrid) query(box mesh.AABB, seen []int, stamp int, fn func(index int)) {
	minCell := sg.worldToCell(box.Min)
	maxCell := sg.worldToCell(box.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := sg.hashCell(cellKey{x, y, z})
				for _, other := range sg.cells[idx].indices {
					if seen[other] == stamp {
						continue
					}
					seen[other] = stamp
					fn(other)
				}
			}
		}
	}
}

// worldToCell converts a world position into cell coordinates
func (sg *spatialGrid) worldToCell(pos mgl64.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell maps a cell onto a bucket index
func (sg *spatialGrid) hashCell(key cellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
