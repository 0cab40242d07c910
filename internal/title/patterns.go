package title

import "regexp"

// metadataPatterns flag lines that are conference boilerplate rather than titles.
var metadataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`©`),
	regexp.MustCompile(`人工知能学会`),
	regexp.MustCompile(`(?i)zoom`),
	regexp.MustCompile(`会議室`),
	regexp.MustCompile(`座長`),
	regexp.MustCompile(`\d{4}年`),
	regexp.MustCompile(`(?i)conference`),
	regexp.MustCompile(`(?i)proceedings`),
	regexp.MustCompile(`(?i)session`),
	regexp.MustCompile(`(?i)abstract`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^[A-Z]$`),
	regexp.MustCompile(`@`),
	regexp.MustCompile(`https?://`),
	regexp.MustCompile(`(?i)tel:`),
	regexp.MustCompile(`(?i)fax:`),
}

// latinWord matches a Latin word of at least three letters.
var latinWord = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
