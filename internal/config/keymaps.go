package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Cards
	AddCard    string `yaml:"add_card"`
	EditCard   string `yaml:"edit_card"`
	DeleteCard string `yaml:"delete_card"`
	ViewCard   string `yaml:"view_card"`

	// Drag and drop
	PickUp     string `yaml:"pick_up"`
	Drop       string `yaml:"drop"`
	CancelDrag string `yaml:"cancel_drag"`

	// Forms
	SaveForm string `yaml:"save_form"`

	// Columns
	CreateColumn string `yaml:"create_column"`
	DeleteColumn string `yaml:"delete_column"`

	// Boards
	CreateBoard string `yaml:"create_board"`
	NextBoard   string `yaml:"next_board"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevCard   string `yaml:"prev_card"`
	NextCard   string `yaml:"next_card"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Cards
		AddCard:    "a",
		EditCard:   "e",
		DeleteCard: "d",
		ViewCard:   "v",

		// Drag and drop
		PickUp:     "space",
		Drop:       "enter",
		CancelDrag: "esc",
		SaveForm:   "ctrl+s",

		// Columns
		CreateColumn: "C",
		DeleteColumn: "X",

		// Boards
		CreateBoard: "B",
		NextBoard:   "b",

		// Navigation
		PrevColumn: "h",
		NextColumn: "l",
		PrevCard:   "k",
		NextCard:   "j",

		// Other
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.AddCard == "" {
		k.AddCard = defaults.AddCard
	}
	if k.EditCard == "" {
		k.EditCard = defaults.EditCard
	}
	if k.DeleteCard == "" {
		k.DeleteCard = defaults.DeleteCard
	}
	if k.ViewCard == "" {
		k.ViewCard = defaults.ViewCard
	}
	if k.PickUp == "" {
		k.PickUp = defaults.PickUp
	}
	if k.Drop == "" {
		k.Drop = defaults.Drop
	}
	if k.CancelDrag == "" {
		k.CancelDrag = defaults.CancelDrag
	}
	if k.SaveForm == "" {
		k.SaveForm = defaults.SaveForm
	}
	if k.CreateColumn == "" {
		k.CreateColumn = defaults.CreateColumn
	}
	if k.DeleteColumn == "" {
		k.DeleteColumn = defaults.DeleteColumn
	}
	if k.CreateBoard == "" {
		k.CreateBoard = defaults.CreateBoard
	}
	if k.NextBoard == "" {
		k.NextBoard = defaults.NextBoard
	}
	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevCard == "" {
		k.PrevCard = defaults.PrevCard
	}
	if k.NextCard == "" {
		k.NextCard = defaults.NextCard
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
