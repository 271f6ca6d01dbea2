package common

// Sign returns -1, 0 or 1 for v, treating |v| <= eps as zero.
func Sign(v, eps float64) int {
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	}
	return 0
}
