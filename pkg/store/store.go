package store

// Store is the uniform surface every search-criteria store offers to
// transports that address stores by ID.
type Store interface {
	// ID is the store's stable name (e.g., "character").
	ID() string

	// Snapshot returns every field, empty ones included.
	Snapshot() map[string]string

	// Apply merges the non-nil entries of fields. Unknown keys are ignored.
	Apply(fields map[string]*string)

	// Clear resets every field to the empty string.
	Clear()

	// Encode renders the store's non-empty state as a URL query string.
	Encode() string

	// Watch calls fn after every change. The returned function unsubscribes.
	Watch(fn func()) (unsubscribe func())
}

// Store IDs.
const (
	SearchID         = "search"
	CharacterID      = "character"
	CharacterCellsID = "characterCells"
	UserID           = "user"
)
