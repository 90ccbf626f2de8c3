package render

import (
	"fmt"
	"strings"
)

// Provenance is the italic note under every document heading
const Provenance = "Generated from WhatsApp export"

var monthNames = map[string]string{
	"01": "January", "02": "February", "03": "March", "04": "April",
	"05": "May", "06": "June", "07": "July", "08": "August",
	"09": "September", "10": "October", "11": "November", "12": "December",
}

// MonthName maps a two-digit month number to its English name.
// Unknown numbers fall back to a Month<NN> label.
func MonthName(nn string) string {
	if name, ok := monthNames[nn]; ok {
		return name
	}
	return "Month" + nn
}

// SplitMonthKey splits a YYYY-MM key into its year and month name
func SplitMonthKey(key string) (year, monthName string) {
	year, nn, _ := strings.Cut(key, "-")
	return year, MonthName(nn)
}

// FileName returns <prefix>_<MonthName>_<Year>.<ext> for a month key
func FileName(prefix, key, ext string) string {
	year, monthName := SplitMonthKey(key)
	return fmt.Sprintf("%s_%s_%s.%s", prefix, monthName, year, ext)
}

func writeHeader(sb *strings.Builder, title, monthName, year string) {
	fmt.Fprintf(sb, "# %s\n\n", title)
	fmt.Fprintf(sb, "*%s*\n\n", Provenance)
	fmt.Fprintf(sb, "**Period:** %s %s\n\n", monthName, year)
	sb.WriteString("---\n\n")
}
