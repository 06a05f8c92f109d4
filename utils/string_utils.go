package utils

// PointerToString renders a *string for logging, "<nil>" when absent.
func PointerToString(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
