package catalog

// countryMapping maps the country codes used in sheet names (and country
// pickers) to the literal values found in the raw data's Country column.
var countryMapping = map[string]string{
	"FR🇫🇷":  "France",
	"ES🇪🇸":  "Spain",
	"UK🇬🇧":  "United Kingdom",
	"PT🇵🇹":  "Portugal",
	"NL🇳🇱":  "Netherlands",
	"DE🇩🇪":  "Germany",
	"IT🇮🇹":  "Italy",
	"BEL🇧🇪": "Belgium",
}

// CountryDataValue converts a selection code like "FR🇫🇷" to the data
// value "France". Unknown codes pass through unchanged.
func CountryDataValue(code string) string {
	if v, ok := countryMapping[code]; ok {
		return v
	}
	return code
}

// CountryCode converts a data value like "France" back to the selection
// code. Unknown values pass through unchanged.
func CountryCode(value string) string {
	for code, v := range countryMapping {
		if v == value {
			return code
		}
	}
	return value
}
