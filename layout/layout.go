package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Point struct {
	X, Y int
}

type Flex struct {
	Dir   Direction // direction of the main axis
	Items []FlexItem
}

func Column(items ...FlexItem) *Flex {
	return &Flex{Dir: Y, Items: items}
}

func Row(items ...FlexItem) *Flex {
	return &Flex{Dir: X, Items: items}
}

func (f Flex) StartLayouting(width, height int) {
	c := context{
		curDimensions: Dimensions{
			Origin: Point{X: 0, Y: 0},
			Width:  width,
			Height: height,
		},
	}
	f.Layout(c)
}

// Layout sizes the items along the main axis and calls their boxes in order.
//
// Items get their min size in order while there is room; an item whose min
// size does not fit is skipped and its box is not called. The remaining space
// is shared in proportion to how much each item may still grow (max - min).
func (f Flex) Layout(c context) {
	total := c.curDimensions.Height
	if f.Dir == X {
		total = c.curDimensions.Width
	}

	sizes := f.distribute(total)

	orig := c.curDimensions.Origin
	for i, item := range f.Items {
		if sizes[i] < 0 {
			continue
		}
		dim := Dimensions{orig, c.curDimensions.Width, sizes[i]}
		orig = Point{orig.X, orig.Y + sizes[i]}
		if f.Dir == X {
			dim = Dimensions{dim.Origin, sizes[i], c.curDimensions.Height}
			orig = Point{dim.Origin.X + sizes[i], dim.Origin.Y}
		}

		if item.Box != nil {
			item.Box(dim)
		}
		// recursively layout flex items
		if item.Flex != nil {
			item.Flex.Layout(context{dim})
		}
	}
}

// distribute returns the main axis size of every item, -1 for skipped items.
func (f Flex) distribute(total int) []int {
	sizes := make([]int, len(f.Items))
	growth := make([]float64, len(f.Items))

	remaining := total
	for i, item := range f.Items {
		minSize := item.Size.Min.toAbs(total)
		if minSize > remaining {
			sizes[i] = -1
			continue
		}
		sizes[i] = minSize
		remaining -= minSize
		growth[i] = float64(max(item.Size.Max.toAbs(total)-minSize, 0))
	}

	capacity := floats.Sum(growth)
	if remaining <= 0 || capacity == 0 {
		return sizes
	}
	if capacity > float64(remaining) {
		floats.Scale(float64(remaining)/capacity, growth)
	}

	for i := range growth {
		if sizes[i] < 0 {
			continue
		}
		grow := int(math.Floor(growth[i]))
		sizes[i] += grow
		remaining -= grow
	}

	// rounding leftovers go to the first items that can still grow
	for i, item := range f.Items {
		if remaining == 0 {
			break
		}
		if sizes[i] < 0 {
			continue
		}
		if sizes[i] < item.Size.Max.toAbs(total) {
			sizes[i]++
			remaining--
		}
	}
	return sizes
}

type FlexItem struct {
	Box  LayoutBox
	Flex *Flex
	Size Constraint
}

func FlexItemBox(box LayoutBox, size Constraint, flex *Flex) FlexItem {
	return FlexItem{Box: box, Size: size, Flex: flex}
}

type Constraint struct {
	Min, Max Size
}

func Exact(size Size) Constraint {
	return Constraint{Min: size, Max: size}
}

func Max(size Size) Constraint {
	return Constraint{Min: Abs(0), Max: size}
}

type Size struct {
	abs int     // absolute size
	rel float64 // [0, 1]
}

func Abs(abs int) Size {
	return Size{abs: abs}
}

func Rel(rel float64) Size {
	return Size{rel: rel}
}

func (s Size) toAbs(size int) int {
	if s.abs != 0 {
		return s.abs
	}

	return int(s.rel * float64(size))
}

type Direction int

const (
	Y Direction = iota
	X
)

type context struct {
	curDimensions Dimensions
}

// Resolve dimensions for a box
type Dimensions struct {
	Origin        Point // TL corner
	Width, Height int
}

type LayoutBox func(Dimensions)

func EmptyBox(Dimensions) {}
