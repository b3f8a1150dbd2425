package store

import "context"

// Well-known settings keys in the meta table.
const (
	// SettingNewCardsPerDay caps how many brand-new items may be introduced
	// per UTC calendar day.
	SettingNewCardsPerDay = "new_cards_per_day"

	// SettingJLPTFocus is the level the learner is currently studying.
	SettingJLPTFocus = "jlpt_focus"
)

// SettingsStore defines the interface to the flat key/value meta table.
// Values are JSON-encoded strings; callers parse them.
type SettingsStore interface {
	// Get retrieves the raw JSON-encoded value for a key.
	// Returns ErrSettingNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the raw JSON-encoded value for a key, inserting or
	// replacing as needed.
	Set(ctx context.Context, key, value string) error
}
