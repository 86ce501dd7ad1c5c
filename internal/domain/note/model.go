package note

// Note is one user-authored note. JSON field names are the persisted wire
// format of the note collection and must stay stable.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	ImageURI  string   `json:"imageUri,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"` // milliseconds since epoch
	UpdatedAt int64    `json:"updatedAt"` // milliseconds since epoch

	// IsSynced is reserved for a future synchronization feature. It is forced
	// to false on every local mutation and never read back.
	IsSynced bool `json:"isSynced"`
}
