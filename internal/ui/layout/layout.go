package layout

// Layout holds calculated dimensions for the navigation and the active view.
type Layout struct {
	Width  int
	Height int

	// SideNav is true when navigation is drawn as a left column instead of
	// a tab bar across the top.
	SideNav  bool
	NavWidth int

	ContentWidth  int
	ContentHeight int

	// Compact views stack their panels vertically.
	Compact bool
}

const (
	tabBarHeight    = 1
	statusBarHeight = 1
	minNavWidth     = 16
	maxNavWidth     = 24

	compactBreakpoint = 60
	sideNavBreakpoint = 100
)

// Calculate computes the layout from terminal dimensions. navVisible only
// matters on terminals wide enough for a side column.
func Calculate(width, height int, navVisible bool) Layout {
	l := Layout{
		Width:   width,
		Height:  height,
		Compact: width < compactBreakpoint,
	}

	if width >= sideNavBreakpoint && navVisible {
		l.SideNav = true
		l.NavWidth = clamp(width/6, minNavWidth, maxNavWidth)
		l.ContentWidth = width - l.NavWidth
		l.ContentHeight = height - statusBarHeight
	} else {
		l.ContentWidth = width
		l.ContentHeight = height - tabBarHeight - statusBarHeight
	}

	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}
	if l.ContentWidth < 1 {
		l.ContentWidth = 1
	}
	return l
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
