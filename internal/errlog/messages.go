package errlog

// messages is the fixed error code table for MIRRI spec 20200601. Templates
// may interpolate {pk} (the row's primary key) and {value} (the offending
// cell value).
var messages = map[string]string{
	// workbook open
	"EXL00": "The provided file is not a valid xlsx workbook",

	// excel structure
	"EFS01": "The 'Strains' sheet is missing. Please check the provided excel template",
	"EFS02": "The 'Growth media' sheet is missing. Please check the provided excel template",
	"EFS03": "The 'Geographic origin' sheet is missing. Please check the provided excel template",
	"EFS04": "The 'Literature' sheet is missing. Please check the provided excel template",
	"EFS05": "The 'Genomic information' sheet is missing. Please check the provided excel template",
	"EFS06": "The 'Ontobiotope' sheet is missing. Please check the provided excel template",
	"EFS07": "The column '{value}' is missing in the '{pk}' sheet",

	// growth media
	"GMD01": "The 'Acronym' column is a mandatory column in the Growth media sheet",
	"GMD02": "The 'Acronym' is a mandatory field. The row can not be identified",
	"GMD03": "The 'Description' column is a mandatory column in the Growth media sheet",
	"GMD04": "The 'Description' is a mandatory field for growth medium with Acronym {pk}",
	"GMD05": "The 'Acronym' with value {value} is duplicated in the Growth media sheet",
	"GMD06": "The 'pH' for growth medium with Acronym {pk} is not a number: {value}",

	// geographic origin
	"GOD01": "The 'ID' column is a mandatory column in the Geographic origin sheet",
	"GOD02": "The 'ID' is a mandatory field. The row can not be identified",
	"GOD03": "The 'Country' column is a mandatory column in the Geographic origin sheet",
	"GOD04": "The 'Country' is a mandatory field for geographic origin with ID {pk}",
	"GOD05": "The 'Country' for geographic origin with ID {pk} is not a valid country code: {value}",
	"GOD06": "The 'ID' with value {value} is duplicated in the Geographic origin sheet",

	// literature
	"LID01": "The 'ID' column is a mandatory column in the Literature sheet",
	"LID02": "The 'ID' is a mandatory field. The row can not be identified",
	"LID03": "The literature record with ID {pk} does not carry the minimum fields of a journal article or a book chapter",
	"LID04": "The 'Year' for literature record with ID {pk} is not a valid year: {value}",
	"LID05": "The 'ID' with value {value} is duplicated in the Literature sheet",

	// strains
	"STD01": "The 'Accession number' column is a mandatory column in the Strains sheet",
	"STD02": "The 'Accession number' is a mandatory field. The row can not be identified",
	"STD03": "The 'Accession number' with value {value} does not follow the '{collection} {number}' convention",
	"STD04": "The 'Accession number' with value {value} is duplicated in the Strains sheet",
	"STD05": "The 'Restrictions on use' column is a mandatory column in the Strains sheet",
	"STD06": "The 'Restrictions on use' is a mandatory field for strain {pk}",
	"STD07": "The 'Restrictions on use' for strain {pk} is not in the accepted value set: {value}",
	"STD08": "The 'Nagoya protocol restrictions and compliance conditions' column is a mandatory column in the Strains sheet",
	"STD09": "The 'Nagoya protocol restrictions and compliance conditions' is a mandatory field for strain {pk}",
	"STD10": "The 'Nagoya protocol restrictions and compliance conditions' for strain {pk} is not in the accepted value set: {value}",
	"STD11": "The 'Other culture collection numbers' for strain {pk} does not follow the '{collection} {number}' convention: {value}",
	"STD12": "The 'Risk group' column is a mandatory column in the Strains sheet",
	"STD13": "The 'Risk group' is a mandatory field for strain {pk}",
	"STD14": "The 'Risk group' for strain {pk} is not in the accepted value set: {value}",
	"STD15": "The 'Strain from a registered collection' for strain {pk} is not in the accepted value set: {value}",
	"STD16": "The 'Dual use' for strain {pk} is not in the accepted value set: {value}",
	"STD17": "The 'Quarantine in Europe' for strain {pk} is not in the accepted value set: {value}",
	"STD18": "The 'Organism type' column is a mandatory column in the Strains sheet",
	"STD19": "The 'Organism type' is a mandatory field for strain {pk}",
	"STD20": "The 'Organism type' for strain {pk} is not in the accepted value set: {value}",
	"STD21": "The 'Taxon name' column is a mandatory column in the Strains sheet",
	"STD22": "The 'Taxon name' is a mandatory field for strain {pk}",
	"STD23": "The 'Interspecific hybrid' for strain {pk} is not in the accepted value set: {value}",
	"STD24": "The 'Status' for strain {pk} could not be interpreted: {value}",
	"STD25": "The 'Date of deposit' for strain {pk} is not a valid date: {value}",
	"STD26": "The 'Date of collection' for strain {pk} is not a valid date: {value}",
	"STD27": "The 'Date of isolation' for strain {pk} is not a valid date: {value}",
	"STD28": "The 'Date of inclusion in the catalogue' for strain {pk} is not a valid date: {value}",
	"STD29": "The 'Geographic origin' column is a mandatory column in the Strains sheet",
	"STD30": "The 'Geographic origin' is a mandatory field for strain {pk}",
	"STD31": "The 'Geographic origin' for strain {pk} is not an ID of the Geographic origin sheet: {value}",
	"STD32": "The 'Coordinates of geographic origin' for strain {pk} are malformed or out of range: {value}",
	"STD33": "The 'Altitude of geographic origin' for strain {pk} is not a number: {value}",
	"STD34": "The 'GMO' for strain {pk} is not in the accepted value set: {value}",
	"STD35": "The 'Ploidy' for strain {pk} is not in the accepted value set: {value}",
	"STD36": "The 'Literature' for strain {pk} is not an ID of the Literature sheet: {value}",
	"STD37": "The 'Recommended growth temperature' column is a mandatory column in the Strains sheet",
	"STD38": "The 'Recommended growth temperature' is a mandatory field for strain {pk}",
	"STD39": "The 'Recommended growth temperature' for strain {pk} is not a number: {value}",
	"STD40": "The 'Recommended medium for growth' column is a mandatory column in the Strains sheet",
	"STD41": "The 'Recommended medium for growth' is a mandatory field for strain {pk}",
	"STD42": "The 'Recommended medium for growth' for strain {pk} is not an Acronym of the Growth media sheet: {value}",
	"STD43": "The 'Form of supply' is a mandatory field for strain {pk}",
	"STD44": "The 'Taxon name' for strain {pk} is not a valid taxon name: {value}",
	"STD45": "The 'Form of supply' for strain {pk} is not in the accepted value set: {value}",
	"STD46": "The 'Tested temperature growth range' for strain {pk} is not a number: {value}",
	"STD47": "The strain {pk} has a known date in 2014 or later and its geographic origin does not resolve to a country, as the Nagoya protocol requires",
	"STD48": "The 'Form of supply' column is a mandatory column in the Strains sheet",
	"STD49": "The 'Ontobiotope term for the isolation habitat' for strain {pk} is not an ID of the Ontobiotope sheet: {value}",
	"STD50": "The 'Sexual state' for strain {pk} is not in the accepted value set: {value}",

	// genomic information
	"GID01": "The 'Strain AN' column is a mandatory column in the Genomic information sheet",
	"GID02": "The 'Strain AN' is a mandatory field. The row can not be identified",
	"GID03": "The 'Strain AN' with value {value} is not an Accession number of the Strains sheet",
	"GID04": "The 'Marker' for sequence of strain {pk} is not in the accepted value set: {value}",
	"GID05": "The 'INSDC AN' for sequence of strain {pk} does not look like an INSDC accession: {value}",

	// uncategorized
	"UCT00": "The value {value} for record {pk} could not be interpreted",

	// ontobiotope
	"OTD01": "The 'ID' column is a mandatory column in the Ontobiotope sheet",
	"OTD02": "The 'ID' is a mandatory field. The row can not be identified",
	"OTD03": "The 'ID' for ontobiotope term {pk} is malformed: {value}",
	"OTD04": "The 'ID' with value {value} is duplicated in the Ontobiotope sheet",
}

// MessageForCode exposes the raw template for a code, mainly for tests.
func MessageForCode(code string) (string, bool) {
	msg, ok := messages[code]
	return msg, ok
}
