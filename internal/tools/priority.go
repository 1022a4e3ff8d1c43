package tools

// Countries queried when a multi-country tool is called without one.
// The lists bound the number of provider calls per question.
var (
	datePriority = []string{
		"US", "GB", "CA", "AU", "IN", "NG", "FR", "DE", "IT", "ES",
		"BR", "MX", "JP", "CN", "ZA", "AR", "RU", "KR", "ID", "SA",
		"AE", "EG", "KE", "GH", "PK", "BD", "VN", "TH", "PH", "MY",
		"SG", "NZ", "IE", "NL", "BE", "CH", "SE", "NO", "DK", "FI",
		"PL", "TR", "IL", "QA", "KW",
	}

	searchPriority = []string{
		"US", "GB", "CA", "AU", "IN", "NG", "ZA", "FR", "DE", "IT",
		"ES", "JP", "CN", "BR", "MX", "AR", "RU", "KR", "ID", "TR",
		"NL", "SE", "NO", "DK", "FI", "PL", "UA", "RO", "CZ", "GR",
		"PT", "BE", "HU", "AT", "CH", "IL", "SG", "MY", "TH", "PH",
		"VN", "PK", "BD", "EG", "SA", "AE", "KE", "GH", "ET", "TZ",
	}

	todayPriority = []string{
		"US", "GB", "CA", "AU", "IN", "NG", "ZA", "FR", "DE", "JP", "CN", "BR",
	}
)
