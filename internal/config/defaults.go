package config

// DefaultOutputExtension is the extension given to rendered files.
const DefaultOutputExtension = ".ts"

// DefaultTypeMappings returns target names for common external Go types that
// the built-in primitive table does not know about.
func DefaultTypeMappings() map[string]string {
	return map[string]string{
		// JSON types
		"encoding/json.RawMessage": "unknown",

		// Decimal types
		"github.com/shopspring/decimal.Decimal": "string",

		// Network types
		"net.IP":      "string",
		"net/url.URL": "string",
	}
}
