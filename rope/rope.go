// The rope package provides an immutable, value-oriented Rope of runes.
// Ropes allow large sequences of text to be manipulated efficiently and
// keep track of newlines so that lines can be located in logarithmic time.
package rope

import (
	"strings"
)

const (
	maxDepth    = 64
	maxLeafSize = 1024
)

// A Rope is a data structure for storing long runs of text.
// Ropes are persistent: there is no way to modify an existing rope.
// Instead, all operations return a new rope with the requested changes.
//
// This persistence makes it easy to store old versions of a Rope just by holding on to old roots.
//
// Offsets are counted in runes, not bytes.
type Rope struct {
	// leaf content, never mutated after construction
	content        []rune
	length, height int
	// number of '\n' runes in the rope
	newlines int

	left, right *Rope
}

// Return a new empty rope.
func New() Rope {
	return Rope{}
}

// Return a new rope with the contents of string s.
func NewString(s string) Rope {
	return NewRunes([]rune(s))
}

// Return a new rope with the given runes. The slice is owned by the rope afterwards.
func NewRunes(rs []rune) Rope {
	if len(rs) <= maxLeafSize {
		return leaf(rs)
	}

	var leaves []Rope
	for len(rs) > 0 {
		n := min(len(rs), maxLeafSize)
		leaves = append(leaves, leaf(rs[:n:n]))
		rs = rs[n:]
	}
	return merge(leaves, 0, len(leaves))
}

func leaf(rs []rune) Rope {
	return Rope{content: rs, length: len(rs), newlines: countNewlines(rs)}
}

// Notice that all of the methods take and return ropes by value.
// This is slightly less efficient than if we'd done pointers, but it
// seems cleaner from a "persistent data structure" point of view.
func (rope Rope) concat(other Rope) Rope {
	switch {
	case rope.length == 0:
		return other
	case other.length == 0:
		return rope
	case rope.length+other.length <= maxLeafSize:
		return leaf(joinRunes(rope.runes(), other.runes()))
	case !rope.isLeaf() && other.isLeaf() && rope.right.isLeaf() && rope.right.length+other.length <= maxLeafSize:
		// typing at the end keeps filling the last leaf instead of growing the tree
		return rope.left.concat(rope.right.concat(other))
	default:
		height := rope.height
		if other.height > height {
			height = other.height
		}
		return Rope{
			length:   rope.length + other.length,
			newlines: rope.newlines + other.newlines,
			height:   height + 1,
			left:     &rope,
			right:    &other,
		}
	}
}

// Return a new rope that is the concatenation of this rope and the other rope.
func (rope Rope) Append(other Rope) Rope {
	return rope.concat(other).rebalanceIfNeeded()
}

// Return a new rope that is the concatenation of this rope and string s.
func (rope Rope) AppendString(other string) Rope {
	return rope.Append(NewString(other))
}

// Return a new rope with length runes at offset deleted.
func (rope Rope) Delete(offset, length int) Rope {
	if length == 0 || offset == rope.length {
		return rope
	}

	left, right := rope.Split(offset)
	_, newRight := right.Split(length)
	return left.Append(newRight)
}

// Returns true if this rope has the same content as other.
func (rope Rope) Equal(other Rope) bool {
	if rope.length != other.length || rope.newlines != other.newlines {
		return false
	}

	for i := 0; i < rope.length; i += maxLeafSize {
		a := rope.Slice(i, min(i+maxLeafSize, rope.length))
		b := other.Slice(i, min(i+maxLeafSize, other.length))
		if string(a) != string(b) {
			return false
		}
	}

	return true
}

// Return a new rope with the contents of other inserted at the given index.
func (rope Rope) Insert(at int, other Rope) Rope {
	switch at {
	case 0:
		return other.Append(rope)
	case rope.length:
		return rope.Append(other)
	default:
		left, right := rope.Split(at)
		return left.concat(other).Append(right)
	}
}

// Return a new rope with the contents of string other inserted at the given index.
func (rope Rope) InsertString(at int, other string) Rope {
	return rope.Insert(at, NewString(other))
}

// Return the length of the rope in runes.
func (rope Rope) Length() int {
	return rope.length
}

// Return the number of lines. A rope always has at least one (possibly empty) line.
func (rope Rope) LineCount() int {
	return rope.newlines + 1
}

// Return a new version of this rope that is balanced for better performance.
// Generally speaking, this will be invoked automatically during the course of other operations and
// thus only needs to be called if you know you'll be generating a lot of unbalanced ropes.
func (rope Rope) Rebalance() Rope {
	if rope.isBalanced() {
		return rope
	}

	var leaves []Rope
	rope.walk(func(node Rope) {
		leaves = append(leaves, node)
	})

	return merge(leaves, 0, len(leaves))
}

// Return the runes in [a, b). The bounds are clamped to the rope.
func (rope Rope) Slice(a, b int) []rune {
	a, b = max(a, 0), min(b, rope.length)
	if a >= b {
		return []rune{}
	}

	p := make([]rune, 0, b-a)
	rope.collect(a, b, &p)
	return p
}

func (rope Rope) collect(a, b int, p *[]rune) {
	if a >= b {
		return
	}
	if rope.isLeaf() {
		*p = append(*p, rope.content[a:b]...)
		return
	}

	ll := rope.left.length
	if a < ll {
		rope.left.collect(a, min(b, ll), p)
	}
	if b > ll {
		rope.right.collect(max(a, ll)-ll, b-ll, p)
	}
}

// Returns two new ropes, one containing the content to the left of the given index and the other the content to the right.
func (rope Rope) Split(at int) (Rope, Rope) {
	switch {
	case rope.isLeaf():
		return leaf(rope.content[:at:at]), leaf(rope.content[at:])

	case at == 0:
		return Rope{}, rope

	case at == rope.length:
		return rope, Rope{}

	case at < rope.left.length:
		left, right := rope.left.Split(at)
		return left, right.Append(*rope.right)

	case at > rope.left.length:
		left, right := rope.right.Split(at - rope.left.length)
		return rope.left.Append(left), right

	default:
		return *rope.left, *rope.right
	}
}

// Return the contents of the rope as a string.
func (rope Rope) String() string {
	if rope.isLeaf() {
		return string(rope.content)
	}

	var builder strings.Builder
	rope.walk(func(node Rope) {
		for _, r := range node.content {
			builder.WriteRune(r)
		}
	})

	return builder.String()
}

// OffsetOfLine returns the offset of the first rune of the given 0-based line,
// which is 1 plus the position of the line's preceding newline.
// Rows past the last line return the length of the rope.
func (rope Rope) OffsetOfLine(row int) int {
	if row <= 0 {
		return 0
	}
	if row > rope.newlines {
		return rope.length
	}

	if rope.isLeaf() {
		seen := 0
		for i, r := range rope.content {
			if r == '\n' {
				seen++
				if seen == row {
					return i + 1
				}
			}
		}
		panic("Invariance: leaf newline count does not match its content")
	}

	// row == left.newlines starts after the last newline of the left side, possibly at its very end
	if row <= rope.left.newlines {
		return rope.left.OffsetOfLine(row)
	}
	return rope.left.length + rope.right.OffsetOfLine(row-rope.left.newlines)
}

// LineOfOffset returns the 0-based line containing the given offset.
// Note that LineOfOffset is the inverse of OffsetOfLine and vice versa.
func (rope Rope) LineOfOffset(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= rope.length {
		return rope.newlines
	}

	if rope.isLeaf() {
		return countNewlines(rope.content[:offset])
	}

	if offset <= rope.left.length {
		return rope.left.LineOfOffset(offset)
	}
	return rope.left.newlines + rope.right.LineOfOffset(offset-rope.left.length)
}

func (rope Rope) isBalanced() bool {
	switch {
	case rope.isLeaf():
		return true
	case rope.height >= len(fibonacci)-2:
		return false
	default:
		return fibonacci[rope.height+2] <= rope.length
	}
}

func (rope Rope) isLeaf() bool {
	return rope.left == nil
}

func (rope Rope) runes() []rune {
	if rope.isLeaf() {
		return rope.content
	}
	return rope.Slice(0, rope.length)
}

func (rope Rope) leafForOffset(at int) (Rope, int) {
	switch {
	case rope.isLeaf():
		return rope, at
	case at < rope.left.length:
		return rope.left.leafForOffset(at)
	default:
		return rope.right.leafForOffset(at - rope.left.length)
	}
}

func (rope Rope) rebalanceIfNeeded() Rope {
	if rope.isBalanced() || abs(rope.left.height-rope.right.height) < maxDepth {
		return rope
	}

	return rope.Rebalance()
}

func (rope Rope) walk(callback func(Rope)) {
	if rope.isLeaf() {
		callback(rope)
	} else {
		rope.left.walk(callback)
		rope.right.walk(callback)
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func countNewlines(rs []rune) int {
	n := 0
	for _, r := range rs {
		if r == '\n' {
			n++
		}
	}
	return n
}

// joinRunes always allocates, leaves may share backing arrays with other ropes.
func joinRunes(a, b []rune) []rune {
	out := make([]rune, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func merge(leaves []Rope, start, end int) Rope {
	length := end - start
	switch length {
	case 0:
		return Rope{}
	case 1:
		return leaves[start]
	case 2:
		return leaves[start].concat(leaves[start+1])
	default:
		mid := start + length/2
		return merge(leaves, start, mid).concat(merge(leaves, mid, end))
	}
}

var fibonacci []int

func init() {
	// The heurstic for whether a rope is balanced depends on the Fibonacci sequence;
	// we initialize the table of Fibonacci numbers here.
	first := 0
	second := 1

	for c := 0; c < maxDepth+3; c++ {
		next := 0
		if c <= 1 {
			next = c
		} else {
			next = first + second
			first = second
			second = next
		}
		fibonacci = append(fibonacci, next)
	}
}
