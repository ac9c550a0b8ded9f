package ui

import (
	"time"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// cellWidth approximates the pixel width of one terminal column, so that
// terminal sizes map onto the viewport breakpoints: 96 columns and up is
// tablet, 128 and up is desktop.
const cellWidth = 8

// LayoutExtraWideWidth is the column count above which the list pane shrinks
// to 30% of the screen.
const LayoutExtraWideWidth = 160

// chromeHeight is the header plus the command bar.
const chromeHeight = 2

// DefaultUIInterval is how often relative timestamps are redrawn.
const DefaultUIInterval = time.Second

// perPageSteps are the page sizes cycled by +/-.
var perPageSteps = []int{10, 20, 50, 100}

// viewportPixels converts a terminal width to the pixel scale used by
// listdetail.ModeForWidth.
func viewportPixels(columns int) int {
	return columns * cellWidth
}

// paneWidths splits width between the list and detail panes. A zero width
// means the pane is hidden.
//
//   - mobile: one pane at a time; detail replaces the list when open
//   - tablet: list alone until a client is opened, then 40/60
//   - desktop: always split, 30/70 on extra wide terminals
func paneWidths(mode listdetail.LayoutMode, width int, detailOpen bool) (list, detail int) {
	switch mode {
	case listdetail.LayoutMobile:
		if detailOpen {
			return 0, width
		}
		return width, 0
	case listdetail.LayoutTablet:
		if !detailOpen {
			return width, 0
		}
	}
	list = width * 40 / 100
	if width >= LayoutExtraWideWidth {
		list = width * 30 / 100
	}
	return list, width - list
}

// stepPerPage returns the next page size in perPageSteps above (dir > 0) or
// below current, staying at the ends of the range.
func stepPerPage(current, dir int) int {
	if dir > 0 {
		for _, n := range perPageSteps {
			if n > current {
				return n
			}
		}
		return perPageSteps[len(perPageSteps)-1]
	}
	for i := len(perPageSteps) - 1; i >= 0; i-- {
		if perPageSteps[i] < current {
			return perPageSteps[i]
		}
	}
	return perPageSteps[0]
}
