package domain

// tenseMoods is the classification table from tense name to owning mood.
// Each known tense belongs to exactly one mood.
var tenseMoods = map[Tense]Mood{
	TensePrasens:    MoodIndicative,
	TensePrateritum: MoodIndicative,
	TensePerfekt:    MoodIndicative,
	TensePlusquam:   MoodIndicative,
	TenseFuturI:     MoodIndicative,
	TenseFuturII:    MoodIndicative,

	TenseInfinitivI:  MoodInfinitive,
	TenseInfinitivII: MoodInfinitive,
	TensePartizipI:   MoodInfinitive,
	TensePartizipII:  MoodInfinitive,

	TenseImperative:   MoodConditionalOrConjunctiveII,
	TenseKonjunktivII: MoodConditionalOrConjunctiveII,

	TenseKonjunktivI:  MoodConjunctive,
	TenseKonjPerfekt:  MoodConjunctive,
	TenseKonjPlusquam: MoodConjunctive,
	TenseKonjFuturI:   MoodConjunctive,
	TenseKonjFuturII:  MoodConjunctive,
}

// tenseAliases maps ASCII spellings accepted in requests to their stored tense.
var tenseAliases = map[string]Tense{
	"prasens":    TensePrasens,
	"prateritum": TensePrateritum,
	"pratertium": TensePrateritum,
}

// ParseTense resolves a requested tense name to a known tense.
// Matching is exact and case-sensitive; the only normalization is the
// ASCII alias table. Unknown names return false.
func ParseTense(name string) (Tense, bool) {
	if t, ok := tenseAliases[name]; ok {
		return t, true
	}
	t := Tense(name)
	if _, ok := tenseMoods[t]; !ok {
		return "", false
	}
	return t, true
}

// ClassifyTense returns the mood owning the given tense name.
// An unknown name yields ("", false); it is not an error.
func ClassifyTense(name string) (Mood, bool) {
	t, ok := ParseTense(name)
	if !ok {
		return "", false
	}
	return tenseMoods[t], true
}

// MoodOf returns the mood owning a known tense.
func (t Tense) MoodOf() (Mood, bool) {
	m, ok := tenseMoods[t]
	return m, ok
}

// ExpandTensesToMoods derives the moods that must be projected for the
// requested tenses. Order is first appearance; duplicates and names that do
// not classify are dropped. Empty input yields an empty (nil) result, which
// means "no tenses requested".
func ExpandTensesToMoods(tenses []string) []Mood {
	var moods []Mood
	seen := make(map[Mood]bool, len(tenses))
	for _, name := range tenses {
		m, ok := ClassifyTense(name)
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		moods = append(moods, m)
	}
	return moods
}
