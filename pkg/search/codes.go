package search

import "strings"

// CountryCode is an ISO 3166-1 alpha-2 country code. Providers adjust the
// casing and parameter name themselves (Kagi wants a lowercase "region",
// SerpAPI a lowercase "gl", You.com the code verbatim).
type CountryCode string

// LanguageCode is an ISO 639-1 language code.
type LanguageCode string

const (
	CountryAR CountryCode = "AR"
	CountryAU CountryCode = "AU"
	CountryAT CountryCode = "AT"
	CountryBE CountryCode = "BE"
	CountryBR CountryCode = "BR"
	CountryCA CountryCode = "CA"
	CountryCH CountryCode = "CH"
	CountryCL CountryCode = "CL"
	CountryCN CountryCode = "CN"
	CountryDE CountryCode = "DE"
	CountryDK CountryCode = "DK"
	CountryES CountryCode = "ES"
	CountryFI CountryCode = "FI"
	CountryFR CountryCode = "FR"
	CountryGB CountryCode = "GB"
	CountryHK CountryCode = "HK"
	CountryID CountryCode = "ID"
	CountryIN CountryCode = "IN"
	CountryIT CountryCode = "IT"
	CountryJP CountryCode = "JP"
	CountryKR CountryCode = "KR"
	CountryMX CountryCode = "MX"
	CountryMY CountryCode = "MY"
	CountryNL CountryCode = "NL"
	CountryNO CountryCode = "NO"
	CountryNZ CountryCode = "NZ"
	CountryPL CountryCode = "PL"
	CountryPT CountryCode = "PT"
	CountryRU CountryCode = "RU"
	CountrySE CountryCode = "SE"
	CountrySG CountryCode = "SG"
	CountryTR CountryCode = "TR"
	CountryTW CountryCode = "TW"
	CountryUS CountryCode = "US"
	CountryZA CountryCode = "ZA"
)

const (
	LanguageAR LanguageCode = "ar"
	LanguageDA LanguageCode = "da"
	LanguageDE LanguageCode = "de"
	LanguageEN LanguageCode = "en"
	LanguageES LanguageCode = "es"
	LanguageFI LanguageCode = "fi"
	LanguageFR LanguageCode = "fr"
	LanguageHI LanguageCode = "hi"
	LanguageID LanguageCode = "id"
	LanguageIT LanguageCode = "it"
	LanguageJA LanguageCode = "ja"
	LanguageKO LanguageCode = "ko"
	LanguageNL LanguageCode = "nl"
	LanguageNO LanguageCode = "no"
	LanguagePL LanguageCode = "pl"
	LanguagePT LanguageCode = "pt"
	LanguageRU LanguageCode = "ru"
	LanguageSV LanguageCode = "sv"
	LanguageTH LanguageCode = "th"
	LanguageTR LanguageCode = "tr"
	LanguageVI LanguageCode = "vi"
	LanguageZH LanguageCode = "zh"
)

// Lower returns the code in the lowercase form some providers expect.
func (c CountryCode) Lower() string {
	return strings.ToLower(string(c))
}

// Upper returns the code in the uppercase form some providers expect.
func (c CountryCode) Upper() string {
	return strings.ToUpper(string(c))
}

// Lower returns the code in the lowercase form some providers expect.
func (l LanguageCode) Lower() string {
	return strings.ToLower(string(l))
}
