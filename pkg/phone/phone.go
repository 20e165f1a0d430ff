// Package phone validates the 8-digit phone numbers that act as the
// canonical identity for both vendors and customers.
package phone

// Valid reports whether the value is exactly eight ASCII digits.
func Valid(value string) bool {
	if len(value) != 8 {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
