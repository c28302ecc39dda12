package graphics

import "fmt"

// StringAlignment selects which point of a string's bounding box is placed
// at the anchor passed to WriteString.
type StringAlignment uint8

const (
	TopLeft StringAlignment = iota
	TopCenter
	TopRight
	CenterLeft
	Center
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight
)

var stringAlignmentNames = [...]string{
	"TopLeft", "TopCenter", "TopRight",
	"CenterLeft", "Center", "CenterRight",
	"BottomLeft", "BottomCenter", "BottomRight",
}

func (a StringAlignment) String() string {
	if int(a) < len(stringAlignmentNames) {
		return stringAlignmentNames[a]
	}
	return fmt.Sprintf("StringAlignment(%d)", uint8(a))
}

// offset returns how far the top left corner lies left of and above the
// anchor for a box of the given size.
func (a StringAlignment) offset(width, height uint32) (dx, dy uint32) {
	switch a % 3 {
	case 1:
		dx = width / 2
	case 2:
		dx = width
	}
	switch a / 3 {
	case 1:
		dy = height / 2
	case 2:
		dy = height
	}
	return dx, dy
}
