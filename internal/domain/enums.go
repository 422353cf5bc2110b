package domain

// Mood is the top-level grammatical category under which a verb's tenses are stored.
type Mood string

const (
	MoodIndicative                 Mood = "indicative"
	MoodInfinitive                 Mood = "infinitive"
	MoodImperative                 Mood = "imperative"
	MoodConjunctive                Mood = "conjunctive"
	MoodConditionalOrConjunctiveII Mood = "conditionalOrConjunctiveII"
)

func (m Mood) String() string { return string(m) }

func (m Mood) IsValid() bool {
	switch m {
	case MoodIndicative, MoodInfinitive, MoodImperative, MoodConjunctive, MoodConditionalOrConjunctiveII:
		return true
	}
	return false
}

// Tense is a conjugation paradigm within a mood.
type Tense string

const (
	TensePrasens      Tense = "präsens"
	TensePrateritum   Tense = "präteritum"
	TensePerfekt      Tense = "perfekt"
	TensePlusquam     Tense = "plusquam"
	TenseFuturI       Tense = "futur_I"
	TenseFuturII      Tense = "futur_II"
	TenseInfinitivI   Tense = "infinitiv_I"
	TenseInfinitivII  Tense = "infinitiv_II"
	TensePartizipI    Tense = "partizip_I"
	TensePartizipII   Tense = "partizip_II"
	TenseImperative   Tense = "imperative"
	TenseKonjunktivI  Tense = "konjunktiv_I"
	TenseKonjunktivII Tense = "konjunktiv_II"
	TenseKonjPerfekt  Tense = "konj_perfekt"
	TenseKonjPlusquam Tense = "konj_plusquam"
	TenseKonjFuturI   Tense = "konj_futur_I"
	TenseKonjFuturII  Tense = "konj_futur_II"
)

func (t Tense) String() string { return string(t) }

// Language is a supported translation/description language.
type Language string

const (
	LanguageEN Language = "en"
	LanguageES Language = "es"
	LanguageFR Language = "fr"
	LanguageDE Language = "de"
)

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageEN, LanguageES, LanguageFR, LanguageDE:
		return true
	}
	return false
}

// VerbType is a category selector accepted by the random-verb filter.
type VerbType string

const (
	VerbTypeRegular     VerbType = "regular"
	VerbTypeIrregular   VerbType = "irregular"
	VerbTypeSeparable   VerbType = "separable"
	VerbTypeInseparable VerbType = "inseparable"
	VerbTypePrefixed    VerbType = "prefixed"
	VerbTypeModal       VerbType = "modal"
)

func (t VerbType) String() string { return string(t) }
