package scraper

import "regexp"

// countryRegions assigns every AACRAO EDGE country profile to a continent
// bucket. Profiles the map does not know about land in "UNKNOWN".
var countryRegions = map[string]string{
	// AFRICA
	"Algeria": "AFRICA", "Angola": "AFRICA", "Benin": "AFRICA",
	"Botswana": "AFRICA", "Burkina Faso": "AFRICA", "Burundi": "AFRICA",
	"Cameroon": "AFRICA", "Cape Verde": "AFRICA", "Central African Republic": "AFRICA",
	"Chad": "AFRICA", "Comoros": "AFRICA", "Congo, Democratic Republic of": "AFRICA",
	"Congo, Republic of": "AFRICA", "Côte d'Ivoire, (Republic of)": "AFRICA",
	"Djibouti": "AFRICA", "Egypt": "AFRICA", "Equatorial Guinea": "AFRICA",
	"Eritrea": "AFRICA", "Eswatini": "AFRICA", "Ethiopia": "AFRICA",
	"Gabon": "AFRICA", "Gambia, The": "AFRICA", "Ghana": "AFRICA",
	"Guinea": "AFRICA", "Guinea-Bissau": "AFRICA", "Kenya": "AFRICA",
	"Lesotho": "AFRICA", "Liberia": "AFRICA", "Libya": "AFRICA",
	"Madagascar": "AFRICA", "Malawi": "AFRICA", "Mali": "AFRICA",
	"Mauritania": "AFRICA", "Mauritius": "AFRICA", "Mayotte": "AFRICA",
	"Morocco": "AFRICA", "Mozambique": "AFRICA", "Namibia": "AFRICA",
	"Niger": "AFRICA", "Nigeria": "AFRICA", "Reunion": "AFRICA",
	"Rwanda": "AFRICA", "Saint Helena": "AFRICA", "Sao Tome and Principe": "AFRICA",
	"Senegal": "AFRICA", "Seychelles": "AFRICA", "Sierra Leone": "AFRICA",
	"Somalia": "AFRICA", "South Africa": "AFRICA", "Sudan": "AFRICA",
	"Tanzania": "AFRICA", "Togo": "AFRICA", "Tunisia": "AFRICA",
	"Uganda": "AFRICA", "Zambia": "AFRICA", "Zimbabwe": "AFRICA",
	// ASIA
	"Afghanistan": "ASIA", "Azerbaijan": "ASIA", "Bahrain": "ASIA",
	"Bangladesh": "ASIA", "Bhutan": "ASIA", "British Indian Ocean Territory": "ASIA",
	"Brunei": "ASIA", "Cambodia": "ASIA", "China": "ASIA",
	"Georgia": "ASIA", "Hong Kong SAR, China": "ASIA", "India": "ASIA",
	"Indonesia": "ASIA", "Iran (Islamic Republic of)": "ASIA", "Iraq": "ASIA",
	"Israel": "ASIA", "Japan": "ASIA", "Jordan": "ASIA",
	"Kazakhstan": "ASIA", "Korea, Republic of (South Korea)": "ASIA", "Kuwait": "ASIA",
	"Kyrgyzstan": "ASIA", "Laos": "ASIA", "Lebanon": "ASIA",
	"Macau SAR, China": "ASIA", "Malaysia": "ASIA", "Maldives": "ASIA",
	"Mongolia": "ASIA", "Myanmar": "ASIA", "Nepal": "ASIA",
	"Oman": "ASIA", "Pakistan": "ASIA", "Palestine": "ASIA",
	"Philippines": "ASIA", "Qatar": "ASIA", "Russia": "ASIA",
	"Saudi Arabia": "ASIA", "Singapore": "ASIA", "Sri Lanka": "ASIA",
	"Syrian Arab Republic": "ASIA", "Taiwan": "ASIA", "Tajikistan": "ASIA",
	"Thailand": "ASIA", "Türkiye": "ASIA", "Turkey": "ASIA",
	"Turkmenistan": "ASIA", "United Arab Emirates": "ASIA", "Uzbekistan": "ASIA",
	"Vietnam": "ASIA", "Yemen, Republic of": "ASIA",
	// EUROPE
	"Albania": "EUROPE", "Andorra": "EUROPE", "Armenia": "EUROPE",
	"Austria": "EUROPE", "Bailiwick of Guernsey": "EUROPE", "Bailiwick of Jersey": "EUROPE",
	"Belarus": "EUROPE", "Belgium": "EUROPE", "Bologna Process": "EUROPE",
	"Bosnia and Herzegovina": "EUROPE", "Bulgaria": "EUROPE", "Croatia": "EUROPE",
	"Cyprus": "EUROPE", "Czech Republic": "EUROPE", "Denmark": "EUROPE",
	"Estonia": "EUROPE", "Faroe Islands": "EUROPE", "Finland": "EUROPE",
	"France": "EUROPE", "Germany": "EUROPE", "Gibraltar": "EUROPE",
	"Greece": "EUROPE", "Greenland": "EUROPE", "Hungary": "EUROPE",
	"Iceland": "EUROPE", "Ireland": "EUROPE", "Isle of Man": "EUROPE",
	"Italy": "EUROPE", "Kosovo": "EUROPE", "Latvia": "EUROPE",
	"Liechtenstein": "EUROPE", "Lithuania": "EUROPE", "Luxembourg": "EUROPE",
	"Macedonia": "EUROPE", "Malta": "EUROPE", "Moldova": "EUROPE",
	"Monaco": "EUROPE", "Montenegro": "EUROPE", "Netherlands, The": "EUROPE",
	"Norway": "EUROPE", "Poland": "EUROPE", "Portugal": "EUROPE",
	"Romania": "EUROPE", "San Marino": "EUROPE", "Scotland": "EUROPE",
	"Serbia": "EUROPE", "Slovakia": "EUROPE", "Slovenia": "EUROPE",
	"Spain": "EUROPE", "Sweden": "EUROPE", "Switzerland": "EUROPE",
	"Ukraine": "EUROPE", "United Kingdom": "EUROPE", "Vatican City (Holy See)": "EUROPE",
	"Yugoslavia": "EUROPE",
	// NORTH AMERICA
	"Anguilla": "NORTH AMERICA", "Antigua and Barbuda": "NORTH AMERICA",
	"Aruba": "NORTH AMERICA", "Bahamas": "NORTH AMERICA",
	"Barbados": "NORTH AMERICA", "Belize": "NORTH AMERICA",
	"Bermuda": "NORTH AMERICA", "British Virgin Islands (BVI)": "NORTH AMERICA",
	"Canada: Alberta": "NORTH AMERICA", "Canada: British Columbia": "NORTH AMERICA",
	"Canada: Manitoba": "NORTH AMERICA", "Canada: New Brunswick": "NORTH AMERICA",
	"Canada: Newfoundland and Labrador": "NORTH AMERICA", "Canada: Northwest Territories": "NORTH AMERICA",
	"Canada: Nova Scotia": "NORTH AMERICA", "Canada: Nunavut": "NORTH AMERICA",
	"Canada: Ontario": "NORTH AMERICA", "Canada: Prince Edward Island": "NORTH AMERICA",
	"Canada: Quebec": "NORTH AMERICA", "Canada: Saskatchewan": "NORTH AMERICA",
	"Canada: Yukon": "NORTH AMERICA", "Cayman Islands": "NORTH AMERICA",
	"Costa Rica": "NORTH AMERICA", "Cuba": "NORTH AMERICA",
	"Dominica": "NORTH AMERICA", "Dominican Republic": "NORTH AMERICA",
	"El Salvador": "NORTH AMERICA", "Grenada": "NORTH AMERICA",
	"Guadeloupe": "NORTH AMERICA", "Guatemala": "NORTH AMERICA",
	"Haiti": "NORTH AMERICA", "Honduras": "NORTH AMERICA",
	"Jamaica": "NORTH AMERICA", "Martinique": "NORTH AMERICA",
	"Mexico": "NORTH AMERICA", "Montserrat": "NORTH AMERICA",
	"Netherlands Antilles": "NORTH AMERICA", "Nicaragua": "NORTH AMERICA",
	"Panama": "NORTH AMERICA", "Puerto Rico": "NORTH AMERICA",
	"Saint Kitts and Nevis": "NORTH AMERICA", "Saint Lucia": "NORTH AMERICA",
	"Saint Pierre and Miquelon": "NORTH AMERICA", "Saint Vincent and the Grenadines": "NORTH AMERICA",
	"Trinidad and Tobago": "NORTH AMERICA", "Turks and Caicos Islands": "NORTH AMERICA",
	"U.S. Virgin Islands": "NORTH AMERICA", "United States of America": "NORTH AMERICA",
	"USA": "NORTH AMERICA",
	// OCEANIA
	"American Samoa": "OCEANIA", "Australia": "OCEANIA",
	"Cook Islands": "OCEANIA", "Fiji Islands": "OCEANIA",
	"French Polynesia": "OCEANIA", "Guam": "OCEANIA",
	"Kiribati": "OCEANIA", "Marshall Islands": "OCEANIA",
	"Micronesia, Federated States of": "OCEANIA", "Nauru": "OCEANIA",
	"New Caledonia": "OCEANIA", "New Zealand": "OCEANIA",
	"Niue": "OCEANIA", "Norfolk Island": "OCEANIA",
	"Northern Mariana Islands (Commonwealth of the)": "OCEANIA", "Palau": "OCEANIA",
	"Papua New Guinea": "OCEANIA", "Pitcairn Island": "OCEANIA",
	"Samoa": "OCEANIA", "Solomon Islands": "OCEANIA",
	"Tokelau": "OCEANIA", "Tonga": "OCEANIA",
	"Tuvalu": "OCEANIA", "U.S. Territories and Minor Outlying Islands": "OCEANIA",
	"Vanuatu": "OCEANIA", "Wallis and Futuna": "OCEANIA",
	// SOUTH AMERICA
	"Argentina": "SOUTH AMERICA", "Bolivia": "SOUTH AMERICA",
	"Brazil": "SOUTH AMERICA", "Chile": "SOUTH AMERICA",
	"Colombia": "SOUTH AMERICA", "Ecuador": "SOUTH AMERICA",
	"Falkland Islands": "SOUTH AMERICA", "French Guiana": "SOUTH AMERICA",
	"Guyana": "SOUTH AMERICA", "Paraguay": "SOUTH AMERICA",
	"Peru": "SOUTH AMERICA", "South Georgia and the South Sandwich Islands": "SOUTH AMERICA",
	"Suriname": "SOUTH AMERICA", "Uruguay": "SOUTH AMERICA",
	"Venezuela": "SOUTH AMERICA",
}

// RegionUnknown is assigned to countries missing from the mapping.
const RegionUnknown = "UNKNOWN"

// RegionFor returns the continent bucket for a country profile name.
func RegionFor(country string) string {
	if region, ok := countryRegions[country]; ok {
		return region
	}
	return RegionUnknown
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizePathSegment replaces every character that is not safe in an object
// key segment with an underscore.
func SanitizePathSegment(s string) string {
	return unsafePathChars.ReplaceAllString(s, "_")
}
