package frames

// Canvas size of every background.
const (
	Width  = 1280
	Height = 800
)

// Rect is a slot position on the canvas in pixels.
type Rect struct {
	X, Y, W, H int
}

var baseLayout = [SlotCount]Rect{
	{83, 102, 237, 268},
	{405, 102, 238, 268},
	{718, 102, 239, 268},
	{236, 458, 235, 268},
	{554, 458, 235, 268},
}

// Layouts maps a background id to its slot rectangles.
var Layouts = map[int][SlotCount]Rect{
	10: baseLayout,
	11: baseLayout,
	12: {
		{95, 102, 236, 268},
		{416, 102, 238, 268},
		{728, 102, 238, 268},
		{245, 457, 238, 269},
		{564, 457, 235, 269},
	},
}

// DefaultBackground is the background every user starts with.
const DefaultBackground = 10

// LayoutFor returns the slots for background, falling back to the default.
func LayoutFor(background int) [SlotCount]Rect {
	if l, ok := Layouts[background]; ok {
		return l
	}
	return Layouts[DefaultBackground]
}
