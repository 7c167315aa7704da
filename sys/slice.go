package sys

func First[T any](slice []T, fallback T) T {
	if len(slice) > 0 {
		return slice[0]
	}
	return fallback
}

func Dedup[T comparable](slice []T) []T {
	var (
		seen   = make(map[T]bool)
		result = make([]T, 0, len(slice))
	)
	for _, item := range slice {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}
