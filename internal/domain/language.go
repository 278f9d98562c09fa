package domain

// DefaultLanguage язык упрощения по умолчанию
const DefaultLanguage = "English"

// speechCodes маппинг отображаемых названий языков на коды синтеза речи
var speechCodes = map[string]string{
	"English": "en",
	"Hindi":   "hi",
	"Kannada": "kn",
}

// SpeechCode возвращает код синтеза речи для отображаемого названия языка.
// Для неизвестного названия возвращается английский код
func SpeechCode(language string) string {
	if code, ok := speechCodes[language]; ok {
		return code
	}
	return speechCodes[DefaultLanguage]
}

// SupportedLanguages возвращает список поддерживаемых названий языков
func SupportedLanguages() []string {
	languages := make([]string, 0, len(speechCodes))
	for name := range speechCodes {
		languages = append(languages, name)
	}
	return languages
}
