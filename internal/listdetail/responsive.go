package listdetail

// Viewport width breakpoints.
const (
	// TabletMinWidth is the narrowest width rendered as tablet.
	TabletMinWidth = 768

	// DesktopMinWidth is the narrowest width rendered as desktop.
	DesktopMinWidth = 1024
)

// LayoutMode selects how list and detail are arranged.
type LayoutMode int

const (
	// LayoutMobile is a full-screen navigation stack: list, then detail.
	LayoutMobile LayoutMode = iota
	// LayoutTablet shows the list with a collapsible detail pane.
	LayoutTablet
	// LayoutDesktop shows list and detail side by side.
	LayoutDesktop
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutMobile:
		return "mobile"
	case LayoutTablet:
		return "tablet"
	case LayoutDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// ModeForWidth maps a width to its layout mode. It is a pure function of
// width; there is no hysteresis.
func ModeForWidth(width int) LayoutMode {
	switch {
	case width >= DesktopMinWidth:
		return LayoutDesktop
	case width >= TabletMinWidth:
		return LayoutTablet
	default:
		return LayoutMobile
	}
}

// ResponsiveState is the last observed viewport.
type ResponsiveState struct {
	Width int
	Mode  LayoutMode
}

// NewResponsiveState resolves width into a state.
func NewResponsiveState(width int) ResponsiveState {
	return ResponsiveState{Width: width, Mode: ModeForWidth(width)}
}
