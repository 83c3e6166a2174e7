package file

// Built-in dictionary defaults, used when no file overrides them.
// These are starter vocabularies; deployments extend them through the
// TOML files in the dictionary directory.

var defaultTherapeuticTerms = []string{
	"anxiety", "stress", "depression", "grief", "trauma", "healing",
	"meditation", "mindfulness", "breathing", "relaxation", "calm",
	"resilience", "acceptance", "forgiveness", "gratitude", "patience",
	"loneliness", "anger", "fear", "worry", "insomnia", "burnout",
	"self-compassion", "wellbeing", "relief",
}

var defaultTherapeuticSynonyms = map[string][]string{
	"anxiety":    {"worry", "unease", "apprehension"},
	"anxieti":    {"worry", "unease", "apprehension"},
	"stress":     {"tension", "pressure", "strain"},
	"depression": {"melancholy", "despair"},
	"depress":    {"melancholy", "despair"},
	"grief":      {"mourning", "loss", "sorrow"},
	"meditation": {"contemplation", "stillness"},
	"medit":      {"contemplation", "stillness"},
	"healing":    {"recovery", "restoration"},
	"heal":       {"recovery", "restoration"},
	"calm":       {"peace", "tranquility", "serenity"},
	"anger":      {"rage", "resentment"},
	"fear":       {"dread", "apprehension"},
}

var defaultCulturalTerms = []string{
	"buddhist", "taoist", "hindu", "sufi", "yoruba", "celtic",
	"maori", "navajo", "zen", "vedic", "stoic", "shinto",
	"aboriginal", "andean", "confucian",
}

var defaultCulturalSynonyms = map[string]map[string][]string{
	"buddhist": {
		"meditation": {"vipassana", "samatha", "zazen"},
		"medit":      {"vipassana", "samatha", "zazen"},
		"compassion": {"metta", "karuna"},
		"mindfulness": {"sati"},
	},
	"hindu": {
		"meditation": {"dhyana"},
		"medit":      {"dhyana"},
		"breathing":  {"pranayama"},
		"breath":     {"pranayama"},
	},
	"taoist": {
		"balance": {"wu-wei", "yin-yang"},
		"energy":  {"qi"},
	},
	"sufi": {
		"meditation": {"muraqaba", "dhikr"},
		"medit":      {"muraqaba", "dhikr"},
	},
	"stoic": {
		"acceptance": {"amor-fati"},
		"calm":       {"ataraxia", "apatheia"},
	},
}

var defaultStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"but": true, "of": true, "to": true, "in": true, "on": true,
	"for": true, "with": true, "about": true, "from": true,
	"is": true, "are": true, "was": true, "be": true, "been": true,
	"i": true, "me": true, "my": true, "we": true, "our": true,
	"you": true, "your": true, "it": true, "its": true,
	"how": true, "what": true, "when": true, "where": true,
	"do": true, "does": true, "did": true, "can": true, "will": true,
	"that": true, "this": true, "these": true, "those": true,
	"deal": true, "help": true, "need": true, "want": true,
}

var defaultGeneralSynonyms = map[string][]string{
	"calm":    {"peaceful", "quiet"},
	"story":   {"tale", "narrative"},
	"stori":   {"tale", "narrative"},
	"proverb": {"saying", "adage"},
	"wisdom":  {"insight", "knowledge"},
	"sleep":   {"rest", "slumber"},
	"practic": {"exercise", "routine"},
}
