package normalize

// Language identifies which stopword set and reply language apply to a query.
type Language string

const (
	// LanguageThai is chosen when any Thai code point is present, including
	// mixed Thai/English input.
	LanguageThai Language = "th"
	// LanguageEnglish is chosen for input with no Thai code points.
	LanguageEnglish Language = "en"
)

// DetectLanguage classifies text by presence of code points in the Thai
// Unicode block. Mixed input counts as Thai, since that decides the stopword
// set and downstream reply language; correction rules are language-agnostic.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if r >= 0x0E00 && r <= 0x0E7F {
			return LanguageThai
		}
	}
	return LanguageEnglish
}
