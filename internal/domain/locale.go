package domain

import "github.com/pkg/errors"

// Locale selects which chapter language is surfaced. Code is the language
// code used by the API in lang_code, FilterCode is the value of the
// mangadex_filter_langs cookie.
type Locale struct {
	Lang       string
	Code       string
	FilterCode int
}

var Locales = []Locale{
	{Lang: "en", Code: "gb", FilterCode: 1},
	{Lang: "ja", Code: "jp", FilterCode: 2},
	{Lang: "pl", Code: "pl", FilterCode: 3},
	{Lang: "sr", Code: "rs", FilterCode: 4},
	{Lang: "nl", Code: "nl", FilterCode: 5},
	{Lang: "it", Code: "it", FilterCode: 6},
	{Lang: "ru", Code: "ru", FilterCode: 7},
	{Lang: "de", Code: "de", FilterCode: 8},
	{Lang: "hu", Code: "hu", FilterCode: 9},
	{Lang: "fr", Code: "fr", FilterCode: 10},
	{Lang: "fi", Code: "fi", FilterCode: 11},
	{Lang: "vi", Code: "vn", FilterCode: 12},
	{Lang: "el", Code: "gr", FilterCode: 13},
	{Lang: "bg", Code: "bg", FilterCode: 14},
	{Lang: "es", Code: "es", FilterCode: 15},
	{Lang: "pt-BR", Code: "br", FilterCode: 16},
	{Lang: "pt", Code: "pt", FilterCode: 17},
	{Lang: "sv", Code: "se", FilterCode: 18},
	{Lang: "ar", Code: "sa", FilterCode: 19},
	{Lang: "da", Code: "dk", FilterCode: 20},
	{Lang: "zh", Code: "cn", FilterCode: 21},
	{Lang: "ro", Code: "ro", FilterCode: 23},
	{Lang: "cs", Code: "cz", FilterCode: 24},
	{Lang: "mn", Code: "mn", FilterCode: 25},
	{Lang: "tr", Code: "tr", FilterCode: 26},
	{Lang: "id", Code: "id", FilterCode: 27},
	{Lang: "ko", Code: "kr", FilterCode: 28},
	{Lang: "es-419", Code: "mx", FilterCode: 29},
	{Lang: "fa", Code: "ir", FilterCode: 30},
	{Lang: "ms", Code: "my", FilterCode: 31},
	{Lang: "th", Code: "th", FilterCode: 32},
	{Lang: "ca", Code: "ct", FilterCode: 33},
	{Lang: "fil", Code: "ph", FilterCode: 34},
	{Lang: "zh-Hant", Code: "hk", FilterCode: 35},
	{Lang: "uk", Code: "ua", FilterCode: 36},
	{Lang: "my", Code: "mm", FilterCode: 37},
	{Lang: "lt", Code: "lt", FilterCode: 38},
	{Lang: "he", Code: "il", FilterCode: 39},
	{Lang: "hi", Code: "in", FilterCode: 40},
	{Lang: "no", Code: "no", FilterCode: 42},
}

// LookupLocale finds the locale for a language setting such as "en".
func LookupLocale(lang string) (Locale, error) {
	for _, l := range Locales {
		if l.Lang == lang {
			return l, nil
		}
	}
	return Locale{}, errors.Errorf("unsupported language: %q", lang)
}
