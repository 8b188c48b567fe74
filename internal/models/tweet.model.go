package models

// Tweet is a short text post. UserID is expected to reference a User,
// but nothing enforces it; a dangling reference resolves to no author.
type Tweet struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	UserID string `json:"userId"`
}
