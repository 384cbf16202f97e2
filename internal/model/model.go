package model

// Item is a single task. Text is trimmed and non-empty when the item is created;
// it is not re-validated afterwards.
type Item struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
