// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// KeywordTier is a named keyword group sharing one per-match weight.
type KeywordTier struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Weight is added once per keyword present in title or abstract.
	Weight float64 `json:"weight" yaml:"weight"`

	// TitleBonus is added on top of Weight when the keyword is in the title.
	TitleBonus float64 `json:"title_bonus" yaml:"title_bonus"`
}

// PhraseSet is a list of phrases sharing one weight. Whether the weight is
// a bonus or a penalty, and whether matches accumulate, depends on the
// table it is used in.
type PhraseSet struct {
	Phrases []string `json:"phrases" yaml:"phrases"`
	Weight  float64  `json:"weight" yaml:"weight"`
}

// CategorySet is a set of source-category tags that earn a flat bonus.
type CategorySet struct {
	Tags  []string `json:"tags" yaml:"tags"`
	Bonus float64  `json:"bonus" yaml:"bonus"`
}

// AuthorBands configures the author-count adjustment. A count within
// [SweetMin, SweetMax] earns SweetBonus; a count above CrowdMax loses
// CrowdPenalty.
type AuthorBands struct {
	SweetMin     int     `json:"sweet_min" yaml:"sweet_min"`
	SweetMax     int     `json:"sweet_max" yaml:"sweet_max"`
	SweetBonus   float64 `json:"sweet_bonus" yaml:"sweet_bonus"`
	CrowdMax     int     `json:"crowd_max" yaml:"crowd_max"`
	CrowdPenalty float64 `json:"crowd_penalty" yaml:"crowd_penalty"`
}

// RecencyBand awards Bonus to documents at most MaxAgeDays old.
type RecencyBand struct {
	MaxAgeDays int     `json:"max_age_days" yaml:"max_age_days"`
	Bonus      float64 `json:"bonus" yaml:"bonus"`
}

// ScoringTables is the per-run scoring configuration. Treat it as
// immutable once a run starts.
type ScoringTables struct {
	// Tiers are evaluated in order (high, medium, basic).
	Tiers []KeywordTier `json:"tiers" yaml:"tiers"`

	// Exclusions subtract Weight for every phrase present.
	Exclusions PhraseSet `json:"exclusions" yaml:"exclusions"`

	// Affiliations add Weight once, for the first phrase found in the authors.
	Affiliations PhraseSet `json:"affiliations" yaml:"affiliations"`

	// Practical adds Weight for every phrase present.
	Practical PhraseSet `json:"practical" yaml:"practical"`

	BonusCategories CategorySet   `json:"bonus_categories" yaml:"bonus_categories"`
	AuthorBands     AuthorBands   `json:"author_bands" yaml:"author_bands"`
	Recency         []RecencyBand `json:"recency" yaml:"recency"`
}

// TrendCategory is a thematic keyword bucket used for trend reporting.
type TrendCategory struct {
	Name     string   `json:"name" yaml:"name"`
	Display  string   `json:"display" yaml:"display"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// TrendTables is the per-run trend aggregation configuration.
type TrendTables struct {
	// Categories are reported in this order.
	Categories []TrendCategory `json:"categories" yaml:"categories"`

	// Emerging lists keywords for the emerging-technology section.
	Emerging []string `json:"emerging" yaml:"emerging"`

	// Institutions lists lowercase name fragments matched against authors.
	Institutions []string `json:"institutions" yaml:"institutions"`

	// CategoryNames maps a source tag (e.g. "cs.SE") to a display name.
	CategoryNames map[string]string `json:"category_names" yaml:"category_names"`
}
