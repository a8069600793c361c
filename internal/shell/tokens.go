package shell

import "fmt"

// Rail widths in CSS pixels.
const (
	ExpandedWidth  = 256
	CollapsedWidth = 72
)

// RailWidth returns the rail width for the given collapse flag.
func RailWidth(collapsed bool) int {
	if collapsed {
		return CollapsedWidth
	}
	return ExpandedWidth
}

// railStyle and contentStyle keep the rail and the content region complementary so the
// total layout width stays constant.
func railStyle(collapsed bool) string {
	return fmt.Sprintf("width:%dpx", RailWidth(collapsed))
}

func contentStyle(collapsed bool) string {
	w := RailWidth(collapsed)
	return fmt.Sprintf("margin-left:%dpx;width:calc(100%% - %dpx)", w, w)
}
