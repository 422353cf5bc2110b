package domain

import "time"

// Verb is a German verb document: properties plus the full conjugation table.
// ID is the lowercase infinitive and is immutable once stored.
type Verb struct {
	ID           string         `json:"_id"`
	URL          string         `json:"url"`
	Verb         string         `json:"verb"`
	Data         VerbData       `json:"data"`
	Descriptions *LocalizedText `json:"descriptions,omitempty"`
	Examples     Examples       `json:"examples,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// VerbData groups the grammatical properties and the conjugation table.
type VerbData struct {
	Properties Properties `json:"properties"`
	Tenses     Tenses     `json:"tenses"`
}

// Properties are the scalar attributes of a verb used for filtering and display.
type Properties struct {
	Level             string       `json:"level"`
	VerbHTML          string       `json:"verbHTML"`
	StemFormationHTML string       `json:"stemFormationHTML"`
	IsIrregular       bool         `json:"isIrregular"`
	IsSeparable       bool         `json:"isSeparable"`
	IsPrefixed        bool         `json:"prefixed"`
	IsModal           bool         `json:"isModal"`
	Auxiliary         string       `json:"auxiliary"`
	Translations      Translations `json:"translations"`
}

// Translations holds the required per-language translation of a verb.
type Translations struct {
	EN string `json:"en"`
	ES string `json:"es"`
	FR string `json:"fr"`
	DE string `json:"de"`
}

// LocalizedText holds optional per-language free text.
type LocalizedText struct {
	EN string `json:"en,omitempty"`
	ES string `json:"es,omitempty"`
	FR string `json:"fr,omitempty"`
	DE string `json:"de,omitempty"`
}

// Set stores text for the given language.
func (t *LocalizedText) Set(lang Language, text string) {
	switch lang {
	case LanguageEN:
		t.EN = text
	case LanguageES:
		t.ES = text
	case LanguageFR:
		t.FR = text
	case LanguageDE:
		t.DE = text
	}
}

// Tenses is the conjugation table: mood -> tense -> ordered conjugation entries.
type Tenses map[Mood]map[Tense][]Conjugation

// Examples holds usage examples keyed like the conjugation table.
type Examples map[Mood]map[Tense]LocalizedText

// Conjugation is one inflected form. Person is absent for impersonal forms
// such as participles.
type Conjugation struct {
	Person          string `json:"person,omitempty"`
	Conjugation     string `json:"conjugation"`
	ConjugationHTML string `json:"conjugationHTML"`
}

// ---------------------------------------------------------------------------
// Read views produced by projections
// ---------------------------------------------------------------------------

// VerbSummary is a search-bar hit: display name and level only.
type VerbSummary struct {
	Verb  string `json:"verb"`
	Level string `json:"level"`
}

// VerbProperties is a verb with its properties and without tenses.
type VerbProperties struct {
	Verb       string     `json:"verb"`
	Properties Properties `json:"properties"`
}

// VerbTenses is a verb restricted to a subset of its conjugation table.
type VerbTenses struct {
	Verb string         `json:"verb"`
	Data VerbTensesData `json:"data"`
}

// VerbTensesData wraps the projected tenses so the nesting matches the stored document.
type VerbTensesData struct {
	Tenses Tenses `json:"tenses"`
}

// VerbSample is the identity and properties of a randomly selected verb.
type VerbSample struct {
	ID         string     `json:"_id"`
	Properties Properties `json:"properties"`
}

// VerbRef is an identity-only projection.
type VerbRef struct {
	ID string `json:"_id"`
}
