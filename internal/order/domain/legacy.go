package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// The legacy system stored marketplace metadata inside the customer name as
// parenthetical suffixes: "Budi (Resi: JX123) (Toko: Shopee) (Via: JNE)".
// New rows keep the name and metadata in separate columns; this codec exists
// to normalize legacy rows at the repository boundary and to re-compose the
// label for the audit trail.

var legacySuffixRe = regexp.MustCompile(`\s*\((Resi|Toko|Via):\s*([^)]*)\)`)

// ParseLegacyCustomerName splits an encoded customer name into the plain name
// and its structured metadata. Names without suffixes pass through unchanged.
func ParseLegacyCustomerName(encoded string) (string, Metadata) {
	var meta Metadata
	for _, match := range legacySuffixRe.FindAllStringSubmatch(encoded, -1) {
		value := strings.TrimSpace(match[2])
		switch match[1] {
		case "Resi":
			meta.Resi = value
		case "Toko":
			meta.Shop = value
		case "Via":
			meta.Channel = value
		}
	}
	name := strings.TrimSpace(legacySuffixRe.ReplaceAllString(encoded, ""))
	return name, meta
}

// EncodeLegacyCustomerName re-applies the suffix encoding. Used only for
// audit-trail labels so movement records match rows written by the old system.
func EncodeLegacyCustomerName(name string, meta Metadata) string {
	var b strings.Builder
	b.WriteString(name)
	if meta.Resi != "" {
		fmt.Fprintf(&b, " (Resi: %s)", meta.Resi)
	}
	if meta.Shop != "" {
		fmt.Fprintf(&b, " (Toko: %s)", meta.Shop)
	}
	if meta.Channel != "" {
		fmt.Fprintf(&b, " (Via: %s)", meta.Channel)
	}
	return b.String()
}
