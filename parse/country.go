package parse

import "strings"

// countryRules is ordered; detection returns the first country whose
// keywords appear in the text. Keywords like "fta " carry a trailing space
// to avoid matching inside longer words.
var countryRules = []struct {
	code     string
	keywords []string
}{
	// Middle East
	{"SA", []string{"saudi", "zatca", "ksa", "fatoorah"}},
	{"AE", []string{"uae", "emirates", "dubai", "fta "}},
	{"EG", []string{"egypt", "egyptian", "eta "}},
	{"BH", []string{"bahrain"}},
	{"OM", []string{"oman"}},
	{"QA", []string{"qatar"}},
	{"KW", []string{"kuwait"}},
	{"JO", []string{"jordan"}},
	// Europe
	{"EU", []string{"european union", "eu ", "vida", "european commission"}},
	{"DE", []string{"germany", "german", "xrechnung", "zugferd"}},
	{"FR", []string{"france", "french", "chorus pro", "factur-x"}},
	{"IT", []string{"italy", "italian", "sdi "}},
	{"ES", []string{"spain", "spanish", "verifactu", "ticketbai"}},
	{"PL", []string{"poland", "polish", "ksef"}},
	{"BE", []string{"belgium", "belgian"}},
	{"NL", []string{"netherlands", "dutch"}},
	{"PT", []string{"portugal", "portuguese", "saf-t"}},
	{"GR", []string{"greece", "greek", "mydata"}},
	{"RO", []string{"romania", "romanian"}},
	{"HR", []string{"croatia", "croatian"}},
	// Americas
	{"BR", []string{"brazil", "brazilian", "nf-e", "nfe"}},
	{"MX", []string{"mexico", "mexican", "cfdi"}},
	{"CL", []string{"chile", "chilean", "dte"}},
	{"CO", []string{"colombia", "colombian", "dian"}},
	{"AR", []string{"argentina"}},
	// Asia-Pacific
	{"IN", []string{"india", "indian", "gst", "gstn"}},
	{"AU", []string{"australia", "australian"}},
	{"SG", []string{"singapore"}},
	{"MY", []string{"malaysia", "myinvois"}},
	{"VN", []string{"vietnam"}},
	{"PH", []string{"philippines", "eis"}},
	{"CN", []string{"china", "chinese", "fapiao"}},
	// Africa
	{"KE", []string{"kenya", "kenyan", "tims"}},
	{"NG", []string{"nigeria", "nigerian"}},
	{"ZA", []string{"south africa"}},
}

var countryRegions = map[string]string{
	"SA": "middle-east", "AE": "middle-east", "EG": "middle-east",
	"BH": "middle-east", "OM": "middle-east", "QA": "middle-east",
	"KW": "middle-east", "JO": "middle-east",
	"EU": "europe", "DE": "europe", "FR": "europe", "IT": "europe",
	"ES": "europe", "PL": "europe", "BE": "europe", "NL": "europe",
	"PT": "europe", "GR": "europe", "RO": "europe", "HR": "europe",
	"BR": "americas", "MX": "americas", "CL": "americas",
	"CO": "americas", "AR": "americas",
	"IN": "asia-pacific", "AU": "asia-pacific", "SG": "asia-pacific",
	"MY": "asia-pacific", "VN": "asia-pacific", "PH": "asia-pacific",
	"CN": "asia-pacific",
	"KE": "africa", "NG": "africa", "ZA": "africa",
}

var countryNames = map[string]string{
	"SA": "Saudi Arabia", "AE": "UAE", "EG": "Egypt", "BH": "Bahrain",
	"OM": "Oman", "QA": "Qatar", "KW": "Kuwait", "JO": "Jordan",
	"EU": "European Union", "DE": "Germany", "FR": "France", "IT": "Italy",
	"ES": "Spain", "PL": "Poland", "BE": "Belgium", "NL": "Netherlands",
	"PT": "Portugal", "GR": "Greece", "RO": "Romania", "HR": "Croatia",
	"BR": "Brazil", "MX": "Mexico", "CL": "Chile", "CO": "Colombia", "AR": "Argentina",
	"IN": "India", "AU": "Australia", "SG": "Singapore", "MY": "Malaysia",
	"VN": "Vietnam", "PH": "Philippines", "CN": "China",
	"KE": "Kenya", "NG": "Nigeria", "ZA": "South Africa",
}

// DetectCountry scans title and summary for country keywords and returns the
// ISO code, display name, and region. Articles with no match are tagged as
// global with an empty code.
func DetectCountry(title, summary string) (code, name, region string) {
	text := strings.ToLower(title + " " + summary)
	for _, rule := range countryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.code, countryNames[rule.code], regionFor(rule.code)
			}
		}
	}
	return "", "Global", "global"
}

// CountryName returns the display name for an ISO country code.
func CountryName(code string) string { return countryNames[code] }

func regionFor(code string) string {
	if r, ok := countryRegions[code]; ok {
		return r
	}
	return "global"
}
