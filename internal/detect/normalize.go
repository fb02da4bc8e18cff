package detect

import "fmt"

// Normalize coerces an arbitrary decoded value to its textual
// representation for scanning. Non-string inputs are stringified rather
// than rejected; this is the explicit input-normalization step at the
// detection boundary.
func Normalize(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
