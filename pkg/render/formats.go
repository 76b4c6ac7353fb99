package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/taxoviz/pkg/errors"
)

// Output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatHTML

// Formats lists every supported format in canonical order.
var Formats = []string{FormatHTML, FormatSVG, FormatDOT, FormatJSON}

// ValidateFormat returns an INVALID_FORMAT error unless s is supported.
// Format names are case-sensitive.
func ValidateFormat(s string) error {
	if !slices.Contains(Formats, s) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of %s)", s, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats validates every entry of formats. An empty list is valid
// and means [DefaultFormat].
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. An empty string yields [DefaultFormat].
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{DefaultFormat}
	}
	return out
}
