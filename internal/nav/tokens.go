package nav

// IconTag names an icon in the dashboard icon set. The renderer maps tags to glyphs;
// an unknown tag renders as the generic icon.
type IconTag string

const (
	IconGeneric    IconTag = "circle"
	IconDashboard  IconTag = "layout-dashboard"
	IconGavel      IconTag = "gavel"
	IconBriefcase  IconTag = "briefcase"
	IconUsers      IconTag = "users"
	IconFolder     IconTag = "folder"
	IconFileText   IconTag = "file-text"
	IconPenLine    IconTag = "pen-line"
	IconCalendar   IconTag = "calendar"
	IconReceipt    IconTag = "receipt"
	IconMessage    IconTag = "message-square"
	IconSettings   IconTag = "settings"
	IconCalculator IconTag = "calculator"
	IconScale      IconTag = "scale"
	IconClock      IconTag = "clock"
)

// ColorToken is an accent colour from the fixed dashboard palette.
type ColorToken string

const (
	ColorNeutral ColorToken = "slate"
	ColorIndigo  ColorToken = "indigo"
	ColorAmber   ColorToken = "amber"
	ColorEmerald ColorToken = "emerald"
	ColorSky     ColorToken = "sky"
	ColorRose    ColorToken = "rose"
	ColorViolet  ColorToken = "violet"
	ColorTeal    ColorToken = "teal"
	ColorOrange  ColorToken = "orange"
)

// palette maps each accent token to its banner background and foreground hex values.
var palette = map[ColorToken][2]string{
	ColorNeutral: {"#f1f5f9", "#334155"},
	ColorIndigo:  {"#e0e7ff", "#3730a3"},
	ColorAmber:   {"#fef3c7", "#92400e"},
	ColorEmerald: {"#d1fae5", "#065f46"},
	ColorSky:     {"#e0f2fe", "#075985"},
	ColorRose:    {"#ffe4e6", "#9f1239"},
	ColorViolet:  {"#ede9fe", "#5b21b6"},
	ColorTeal:    {"#ccfbf1", "#115e59"},
	ColorOrange:  {"#ffedd5", "#9a3412"},
}

// Hex returns the background and foreground colours for the token.
// Tokens outside the palette fall back to the neutral pair.
func (c ColorToken) Hex() (background, foreground string) {
	pair, ok := palette[c]
	if !ok {
		pair = palette[ColorNeutral]
	}
	return pair[0], pair[1]
}
