package codec

import (
	"errors"
	"fmt"
)

// Format identifies a supported document format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ErrMalformed marks input whose top-level structure cannot be parsed.
// Decoders wrap it so callers can distinguish a broken document from an IO
// failure.
var ErrMalformed = errors.New("malformed document")

// ParseFormat validates a format name from config, CLI flags, or query
// parameters.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatMarkdown, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}
