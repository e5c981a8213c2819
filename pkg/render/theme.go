package render

// Default color scale and empty-cell color.
var DefaultColors = []string{"#61cdbb", "#97e3d5", "#e8c1a0", "#f47560"}

// DefaultEmptyColor fills days that have no bound datum.
const DefaultEmptyColor = "#fff"

// Theme controls the non-data visual properties of a rendered chart:
// borders, text and background. Data colors come from the color scale,
// not the theme.
type Theme struct {
	Name             string  `json:"name"`
	Background       string  `json:"background,omitempty"` // empty = transparent
	TextColor        string  `json:"text_color"`
	FontFamily       string  `json:"font_family"`
	FontSize         float64 `json:"font_size"`
	MonthBorderColor string  `json:"month_border_color"`
	MonthBorderWidth float64 `json:"month_border_width"`
	DayBorderColor   string  `json:"day_border_color"`
	DayBorderWidth   float64 `json:"day_border_width"`
}

// DefaultTheme is the light theme used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{
		Name:             "default",
		TextColor:        "#333333",
		FontFamily:       "sans-serif",
		FontSize:         11,
		MonthBorderColor: "#000",
		MonthBorderWidth: 2,
		DayBorderColor:   "#000",
		DayBorderWidth:   1,
	}
}

// DarkTheme renders light text and borders on a dark background.
func DarkTheme() Theme {
	return Theme{
		Name:             "dark",
		Background:       "#1b1b1b",
		TextColor:        "#e0e0e0",
		FontFamily:       "sans-serif",
		FontSize:         11,
		MonthBorderColor: "#e0e0e0",
		MonthBorderWidth: 2,
		DayBorderColor:   "#1b1b1b",
		DayBorderWidth:   1,
	}
}

// ThemeByName resolves a theme name from configuration.
// Unknown names and the empty string resolve to the default theme.
func ThemeByName(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	default:
		return DefaultTheme()
	}
}
