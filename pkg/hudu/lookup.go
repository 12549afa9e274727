package hudu

import "encoding/json"

// LookupEntry is one name↔id pair of a lookup table.
type LookupEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LookupTable is a bidirectional mapping between a resource's display
// name and its numeric id, built once at client construction for
// companies and asset layouts. It is write-once, read-many: never
// refreshed automatically, safe for concurrent reads.
type LookupTable struct {
	byName map[string]int
	byID   map[int]string
}

// NewLookupTable builds a table from entries. Later entries win when a
// name or id repeats, matching the order the API returned them in.
func NewLookupTable(entries []LookupEntry) *LookupTable {
	table := &LookupTable{
		byName: make(map[string]int, len(entries)),
		byID:   make(map[int]string, len(entries)),
	}

	for _, entry := range entries {
		table.byName[entry.Name] = entry.ID
		table.byID[entry.ID] = entry.Name
	}

	return table
}

// ID resolves a display name to its id.
func (t *LookupTable) ID(name string) (int, error) {
	id, ok := t.byName[name]
	if !ok {
		return 0, ErrLookupNameNotFound
	}

	return id, nil
}

// Name resolves an id to its display name.
func (t *LookupTable) Name(id int) (string, error) {
	name, ok := t.byID[id]
	if !ok {
		return "", ErrLookupIDNotFound
	}

	return name, nil
}

// Len returns the number of entries.
func (t *LookupTable) Len() int {
	return len(t.byID)
}

// Entries returns the table contents, for display and persistence.
func (t *LookupTable) Entries() []LookupEntry {
	entries := make([]LookupEntry, 0, len(t.byID))
	for id, name := range t.byID {
		entries = append(entries, LookupEntry{ID: id, Name: name})
	}

	return entries
}

// MarshalJSON serializes the table as its entry list, so it can be
// persisted through a Cache backend.
func (t *LookupTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Entries())
}

// UnmarshalJSON restores a table from its entry list.
func (t *LookupTable) UnmarshalJSON(data []byte) error {
	var entries []LookupEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	*t = *NewLookupTable(entries)

	return nil
}
