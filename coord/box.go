package coord

// Box is an axis-aligned bounding box.
type Box struct{ Min, Max Point }

// Extend grows the box to include p.
func (b Box) Extend(p Point) Box {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
	return b
}

// Size returns the box dimensions along each axis.
func (b Box) Size() Point {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Box) Center() Point {
	return b.Min.Add(b.Max.Sub(b.Min).Mul(0.5))
}
