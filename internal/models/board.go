package models

// Board is the top-level container. Exactly one board is active in a session.
type Board struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GetID returns the board ID (used by quiet CLI output)
func (b Board) GetID() string {
	return b.ID
}
