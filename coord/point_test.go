package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
}

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 4, Y: 5, Z: 6}
	b := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Point{X: 3, Y: 3, Z: 3}, a.Sub(b))
}

func TestPoint_DistanceXY(t *testing.T) {
	dist := Point{X: 1, Y: 2, Z: 3}.DistanceXY(4, 5)
	assert.InEpsilon(t, 4.24264, dist, .01)
}

func TestBox_Extend(t *testing.T) {
	b := Box{Min: Point{X: 1, Y: 1}, Max: Point{X: 2, Y: 2}}

	b = b.Extend(Point{X: 5, Y: -1})
	assert.Equal(t, Box{Min: Point{X: 1, Y: -1}, Max: Point{X: 5, Y: 2}}, b)
}

func TestBox_Center(t *testing.T) {
	b := Box{Min: Point{X: 0, Y: 10}, Max: Point{X: 10, Y: 20}}
	assert.Equal(t, Point{X: 5, Y: 15}, b.Center())

	assert.Equal(t, Point{X: 10, Y: 10}, b.Size())
}
