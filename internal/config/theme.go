package config

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Semantic colors
	Create string `yaml:"create"` // Green - creation dialogs
	Edit   string `yaml:"edit"`   // Blue - edit dialogs
	Delete string `yaml:"delete"` // Red - delete confirmations

	// UI element colors
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	DropTarget     string `yaml:"drop_target"`
	Pending        string `yaml:"pending"` // cards whose move is in flight

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Notification colors
	InfoFg  string `yaml:"info_fg"`
	ErrorFg string `yaml:"error_fg"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "default",
		Accent: "#874BFD",

		Create: "#5FD75F",
		Edit:   "#5F87D7",
		Delete: "#FF0000",

		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DropTarget:     "#FFD700",
		Pending:        "#FFAF00",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:  "#00AFFF",
		ErrorFg: "#FF5F5F",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "monochrome",
		Accent: "#FFFFFF",

		Create: "#FFFFFF",
		Edit:   "#FFFFFF",
		Delete: "#FFFFFF",

		ColumnBorder:   "#808080",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DropTarget:     "#D0D0D0",
		Pending:        "#A8A8A8",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:  "#FFFFFF",
		ErrorFg: "#FFFFFF",
	}
}

// presetColorScheme returns a preset color scheme by name
func presetColorScheme(name string) ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

// MergeFrom copies every non-empty color of other over c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	for _, pair := range [][2]*string{
		{&c.Preset, &other.Preset},
		{&c.Accent, &other.Accent},
		{&c.Create, &other.Create},
		{&c.Edit, &other.Edit},
		{&c.Delete, &other.Delete},
		{&c.ColumnBorder, &other.ColumnBorder},
		{&c.CardBorder, &other.CardBorder},
		{&c.SelectedBorder, &other.SelectedBorder},
		{&c.DropTarget, &other.DropTarget},
		{&c.Pending, &other.Pending},
		{&c.Title, &other.Title},
		{&c.Subtle, &other.Subtle},
		{&c.Normal, &other.Normal},
		{&c.InfoFg, &other.InfoFg},
		{&c.ErrorFg, &other.ErrorFg},
	} {
		if *pair[1] != "" {
			*pair[0] = *pair[1]
		}
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	merged := presetColorScheme(c.Preset)
	merged.MergeFrom(*c)
	*c = merged
}
