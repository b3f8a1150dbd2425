package domain

// ItemType distinguishes the two kinds of catalog items a card can track.
type ItemType string

// Possible item type values.
const (
	ItemTypeVocab ItemType = "vocab"
	ItemTypeKanji ItemType = "kanji"
)

// IsValid reports whether the item type is one of the known kinds.
func (t ItemType) IsValid() bool {
	return t == ItemTypeVocab || t == ItemTypeKanji
}

// JLPTLevel is a Japanese-Language Proficiency Test level, N5 (easiest)
// through N1 (hardest).
type JLPTLevel string

// JLPT levels in study order.
const (
	JLPTN5 JLPTLevel = "N5"
	JLPTN4 JLPTLevel = "N4"
	JLPTN3 JLPTLevel = "N3"
	JLPTN2 JLPTLevel = "N2"
	JLPTN1 JLPTLevel = "N1"
)

// AllJLPTLevels lists every level in study order. Used when aggregating
// statistics across the whole catalog.
var AllJLPTLevels = []JLPTLevel{JLPTN5, JLPTN4, JLPTN3, JLPTN2, JLPTN1}

// IsValid reports whether the level is one of N5-N1.
func (l JLPTLevel) IsValid() bool {
	switch l {
	case JLPTN5, JLPTN4, JLPTN3, JLPTN2, JLPTN1:
		return true
	default:
		return false
	}
}

// CatalogItem is the read-only view of a catalog entry that the scheduling
// side needs. The catalog is externally seeded and never written by this
// service; keeping this interface one-directional prevents the catalog from
// depending back on scheduling types.
type CatalogItem interface {
	// CatalogID returns the item's identity within its kind.
	CatalogID() int64

	// Type returns the item kind (vocab or kanji).
	Type() ItemType

	// Level returns the item's JLPT level.
	Level() JLPTLevel
}

// Vocab is one vocabulary item seeded from JMdict.
type Vocab struct {
	ID           int64     `json:"id"`
	Word         string    `json:"word"`           // Surface form, e.g. 食べる
	Reading      string    `json:"reading"`        // Kana reading, e.g. たべる
	Meaning      string    `json:"meaning"`        // Primary English gloss
	PartOfSpeech string    `json:"part_of_speech"` // verb / noun / adjective / ...
	JLPTLevel    JLPTLevel `json:"jlpt_level"`
	ExampleJP    string    `json:"example_jp,omitempty"`
	ExampleEN    string    `json:"example_en,omitempty"`
}

// CatalogID implements CatalogItem.
func (v *Vocab) CatalogID() int64 { return v.ID }

// Type implements CatalogItem.
func (v *Vocab) Type() ItemType { return ItemTypeVocab }

// Level implements CatalogItem.
func (v *Vocab) Level() JLPTLevel { return v.JLPTLevel }

// Kanji is one character entry sourced from KANJIDIC2. The multi-valued
// reading and meaning fields are stored as JSONB arrays in PostgreSQL.
type Kanji struct {
	ID              int64     `json:"id"`
	Character       string    `json:"character"` // Single kanji, e.g. 日
	OnYomi          []string  `json:"on_yomi"`
	KunYomi         []string  `json:"kun_yomi"`
	Meanings        []string  `json:"meanings"`
	StrokeCount     int       `json:"stroke_count"`
	JLPTLevel       JLPTLevel `json:"jlpt_level"`
	FreqRank        int       `json:"freq_rank,omitempty"` // Newspaper frequency rank, 0 when unranked
	ExampleWord     string    `json:"example_word,omitempty"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
}

// CatalogID implements CatalogItem.
func (k *Kanji) CatalogID() int64 { return k.ID }

// Type implements CatalogItem.
func (k *Kanji) Type() ItemType { return ItemTypeKanji }

// Level implements CatalogItem.
func (k *Kanji) Level() JLPTLevel { return k.JLPTLevel }
