package model

import "strings"

// CountryInternationalWaters is the non-ISO code used for strains collected
// outside any national jurisdiction.
const CountryInternationalWaters = "INW"

// isoCountries maps current ISO 3166-1 alpha-3 codes to English short names.
var isoCountries = map[string]string{
	"ABW": "Aruba",
	"AFG": "Afghanistan",
	"AGO": "Angola",
	"AIA": "Anguilla",
	"ALA": "Aland Islands",
	"ALB": "Albania",
	"AND": "Andorra",
	"ARE": "United Arab Emirates",
	"ARG": "Argentina",
	"ARM": "Armenia",
	"ASM": "American Samoa",
	"ATA": "Antarctica",
	"ATF": "French Southern Territories",
	"ATG": "Antigua and Barbuda",
	"AUS": "Australia",
	"AUT": "Austria",
	"AZE": "Azerbaijan",
	"BDI": "Burundi",
	"BEL": "Belgium",
	"BEN": "Benin",
	"BES": "Bonaire, Sint Eustatius and Saba",
	"BFA": "Burkina Faso",
	"BGD": "Bangladesh",
	"BGR": "Bulgaria",
	"BHR": "Bahrain",
	"BHS": "Bahamas",
	"BIH": "Bosnia and Herzegovina",
	"BLM": "Saint Barthelemy",
	"BLR": "Belarus",
	"BLZ": "Belize",
	"BMU": "Bermuda",
	"BOL": "Bolivia",
	"BRA": "Brazil",
	"BRB": "Barbados",
	"BRN": "Brunei Darussalam",
	"BTN": "Bhutan",
	"BVT": "Bouvet Island",
	"BWA": "Botswana",
	"CAF": "Central African Republic",
	"CAN": "Canada",
	"CCK": "Cocos (Keeling) Islands",
	"CHE": "Switzerland",
	"CHL": "Chile",
	"CHN": "China",
	"CIV": "Cote d'Ivoire",
	"CMR": "Cameroon",
	"COD": "Congo, Democratic Republic of the",
	"COG": "Congo",
	"COK": "Cook Islands",
	"COL": "Colombia",
	"COM": "Comoros",
	"CPV": "Cabo Verde",
	"CRI": "Costa Rica",
	"CUB": "Cuba",
	"CUW": "Curacao",
	"CXR": "Christmas Island",
	"CYM": "Cayman Islands",
	"CYP": "Cyprus",
	"CZE": "Czechia",
	"DEU": "Germany",
	"DJI": "Djibouti",
	"DMA": "Dominica",
	"DNK": "Denmark",
	"DOM": "Dominican Republic",
	"DZA": "Algeria",
	"ECU": "Ecuador",
	"EGY": "Egypt",
	"ERI": "Eritrea",
	"ESH": "Western Sahara",
	"ESP": "Spain",
	"EST": "Estonia",
	"ETH": "Ethiopia",
	"FIN": "Finland",
	"FJI": "Fiji",
	"FLK": "Falkland Islands (Malvinas)",
	"FRA": "France",
	"FRO": "Faroe Islands",
	"FSM": "Micronesia, Federated States of",
	"GAB": "Gabon",
	"GBR": "United Kingdom",
	"GEO": "Georgia",
	"GGY": "Guernsey",
	"GHA": "Ghana",
	"GIB": "Gibraltar",
	"GIN": "Guinea",
	"GLP": "Guadeloupe",
	"GMB": "Gambia",
	"GNB": "Guinea-Bissau",
	"GNQ": "Equatorial Guinea",
	"GRC": "Greece",
	"GRD": "Grenada",
	"GRL": "Greenland",
	"GTM": "Guatemala",
	"GUF": "French Guiana",
	"GUM": "Guam",
	"GUY": "Guyana",
	"HKG": "Hong Kong",
	"HMD": "Heard Island and McDonald Islands",
	"HND": "Honduras",
	"HRV": "Croatia",
	"HTI": "Haiti",
	"HUN": "Hungary",
	"IDN": "Indonesia",
	"IMN": "Isle of Man",
	"IND": "India",
	"IOT": "British Indian Ocean Territory",
	"IRL": "Ireland",
	"IRN": "Iran",
	"IRQ": "Iraq",
	"ISL": "Iceland",
	"ISR": "Israel",
	"ITA": "Italy",
	"JAM": "Jamaica",
	"JEY": "Jersey",
	"JOR": "Jordan",
	"JPN": "Japan",
	"KAZ": "Kazakhstan",
	"KEN": "Kenya",
	"KGZ": "Kyrgyzstan",
	"KHM": "Cambodia",
	"KIR": "Kiribati",
	"KNA": "Saint Kitts and Nevis",
	"KOR": "Korea, Republic of",
	"KWT": "Kuwait",
	"LAO": "Lao People's Democratic Republic",
	"LBN": "Lebanon",
	"LBR": "Liberia",
	"LBY": "Libya",
	"LCA": "Saint Lucia",
	"LIE": "Liechtenstein",
	"LKA": "Sri Lanka",
	"LSO": "Lesotho",
	"LTU": "Lithuania",
	"LUX": "Luxembourg",
	"LVA": "Latvia",
	"MAC": "Macao",
	"MAF": "Saint Martin (French part)",
	"MAR": "Morocco",
	"MCO": "Monaco",
	"MDA": "Moldova, Republic of",
	"MDG": "Madagascar",
	"MDV": "Maldives",
	"MEX": "Mexico",
	"MHL": "Marshall Islands",
	"MKD": "North Macedonia",
	"MLI": "Mali",
	"MLT": "Malta",
	"MMR": "Myanmar",
	"MNE": "Montenegro",
	"MNG": "Mongolia",
	"MNP": "Northern Mariana Islands",
	"MOZ": "Mozambique",
	"MRT": "Mauritania",
	"MSR": "Montserrat",
	"MTQ": "Martinique",
	"MUS": "Mauritius",
	"MWI": "Malawi",
	"MYS": "Malaysia",
	"MYT": "Mayotte",
	"NAM": "Namibia",
	"NCL": "New Caledonia",
	"NER": "Niger",
	"NFK": "Norfolk Island",
	"NGA": "Nigeria",
	"NIC": "Nicaragua",
	"NIU": "Niue",
	"NLD": "Netherlands",
	"NOR": "Norway",
	"NPL": "Nepal",
	"NRU": "Nauru",
	"NZL": "New Zealand",
	"OMN": "Oman",
	"PAK": "Pakistan",
	"PAN": "Panama",
	"PCN": "Pitcairn",
	"PER": "Peru",
	"PHL": "Philippines",
	"PLW": "Palau",
	"PNG": "Papua New Guinea",
	"POL": "Poland",
	"PRI": "Puerto Rico",
	"PRK": "Korea, Democratic People's Republic of",
	"PRT": "Portugal",
	"PRY": "Paraguay",
	"PSE": "Palestine, State of",
	"PYF": "French Polynesia",
	"QAT": "Qatar",
	"REU": "Reunion",
	"ROU": "Romania",
	"RUS": "Russian Federation",
	"RWA": "Rwanda",
	"SAU": "Saudi Arabia",
	"SDN": "Sudan",
	"SEN": "Senegal",
	"SGP": "Singapore",
	"SGS": "South Georgia and the South Sandwich Islands",
	"SHN": "Saint Helena, Ascension and Tristan da Cunha",
	"SJM": "Svalbard and Jan Mayen",
	"SLB": "Solomon Islands",
	"SLE": "Sierra Leone",
	"SLV": "El Salvador",
	"SMR": "San Marino",
	"SOM": "Somalia",
	"SPM": "Saint Pierre and Miquelon",
	"SRB": "Serbia",
	"SSD": "South Sudan",
	"STP": "Sao Tome and Principe",
	"SUR": "Suriname",
	"SVK": "Slovakia",
	"SVN": "Slovenia",
	"SWE": "Sweden",
	"SWZ": "Eswatini",
	"SXM": "Sint Maarten (Dutch part)",
	"SYC": "Seychelles",
	"SYR": "Syrian Arab Republic",
	"TCA": "Turks and Caicos Islands",
	"TCD": "Chad",
	"TGO": "Togo",
	"THA": "Thailand",
	"TJK": "Tajikistan",
	"TKL": "Tokelau",
	"TKM": "Turkmenistan",
	"TLS": "Timor-Leste",
	"TON": "Tonga",
	"TTO": "Trinidad and Tobago",
	"TUN": "Tunisia",
	"TUR": "Turkiye",
	"TUV": "Tuvalu",
	"TWN": "Taiwan, Province of China",
	"TZA": "Tanzania, United Republic of",
	"UGA": "Uganda",
	"UKR": "Ukraine",
	"UMI": "United States Minor Outlying Islands",
	"URY": "Uruguay",
	"USA": "United States of America",
	"UZB": "Uzbekistan",
	"VAT": "Holy See",
	"VCT": "Saint Vincent and the Grenadines",
	"VEN": "Venezuela",
	"VGB": "Virgin Islands (British)",
	"VIR": "Virgin Islands (U.S.)",
	"VNM": "Viet Nam",
	"VUT": "Vanuatu",
	"WLF": "Wallis and Futuna",
	"WSM": "Samoa",
	"YEM": "Yemen",
	"ZAF": "South Africa",
	"ZMB": "Zambia",
	"ZWE": "Zimbabwe",
}

// historicCountries covers codes retired from ISO 3166-1 that still appear in
// collection records.
var historicCountries = map[string]string{
	"ANT": "Netherlands Antilles",
	"BUR": "Burma",
	"CSK": "Czechoslovakia",
	"DDR": "German Democratic Republic",
	"ROM": "Romania (pre-2002 code)",
	"SCG": "Serbia and Montenegro",
	"SUN": "USSR",
	"TMP": "East Timor",
	"YUG": "Yugoslavia",
	"ZAR": "Zaire",
}

// commonNames holds lookup aliases the catalog uses where the ISO short name
// differs from everyday usage.
var commonNames = map[string]string{
	"RUS": "Russia",
	"KOR": "South Korea",
	"PRK": "North Korea",
	"USA": "United States",
	"GBR": "United Kingdom of Great Britain and Northern Ireland",
	"VNM": "Vietnam",
	"TWN": "Taiwan",
	"TZA": "Tanzania",
	"MDA": "Moldova",
	"SYR": "Syria",
	"LAO": "Laos",
	"CZE": "Czech Republic",
	"TUR": "Turkey",
	"MKD": "Macedonia",
	"SWZ": "Swaziland",
	"CPV": "Cape Verde",
	"COD": "Democratic Republic of the Congo",
	"FSM": "Micronesia",
	"VEN": "Venezuela (Bolivarian Republic of)",
	"BOL": "Bolivia (Plurinational State of)",
	"IRN": "Iran (Islamic Republic of)",
}

// AllCountryCodes returns every accepted country code: current ISO, historic
// and the INW literal.
func AllCountryCodes() []string {
	codes := make([]string, 0, len(isoCountries)+len(historicCountries)+1)
	for code := range isoCountries {
		codes = append(codes, code)
	}
	for code := range historicCountries {
		codes = append(codes, code)
	}
	return append(codes, CountryInternationalWaters)
}

// ValidCountryCode reports whether code is a current or historic ISO 3166-1
// alpha-3 code or the INW literal.
func ValidCountryCode(code string) bool {
	if code == CountryInternationalWaters {
		return true
	}
	if _, ok := isoCountries[code]; ok {
		return true
	}
	_, ok := historicCountries[code]
	return ok
}

// CountryName returns the English short name for a country code, or "" when
// the code is unknown.
func CountryName(code string) string {
	if code == CountryInternationalWaters {
		return "International Waters"
	}
	if name, ok := isoCountries[code]; ok {
		return name
	}
	return historicCountries[code]
}

// CountryNames returns the candidate display names for a code, most common
// first. Reference resolution against the catalog tries them in order.
func CountryNames(code string) []string {
	var names []string
	if common, ok := commonNames[code]; ok {
		names = append(names, common)
	}
	if name := CountryName(code); name != "" && (len(names) == 0 || names[0] != name) {
		names = append(names, name)
	}
	return names
}

// CountryCodeFromName resolves a display name back to its alpha-3 code.
// Matching is case-insensitive and covers ISO, historic and common names.
func CountryCodeFromName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "International Waters") || name == CountryInternationalWaters {
		return CountryInternationalWaters, true
	}
	for code, n := range isoCountries {
		if strings.EqualFold(n, name) {
			return code, true
		}
	}
	for code, n := range historicCountries {
		if strings.EqualFold(n, name) {
			return code, true
		}
	}
	for code, n := range commonNames {
		if strings.EqualFold(n, name) {
			return code, true
		}
	}
	return "", false
}
