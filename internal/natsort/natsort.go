// Package natsort implements natural string ordering: runs of digits
// compare by numeric value instead of character by character, so
// "foo2" sorts before "foo10". Non-digit text compares byte-wise,
// which keeps uppercase names ahead of lowercase ones.
package natsort

import "sort"

// Compare returns -1, 0 or 1 ordering a relative to b.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			da, ni := digitRun(a, i)
			db, nj := digitRun(b, j)
			if c := compareNumeric(da, db); c != 0 {
				return c
			}
			i, j = ni, nj
			continue
		}
		if a[i] != b[j] {
			if a[i] < b[j] {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts ss in place in natural order.
func Strings(ss []string) {
	sort.Slice(ss, func(i, j int) bool { return Less(ss[i], ss[j]) })
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun returns the digit run starting at i and the index just
// past it.
func digitRun(s string, i int) (string, int) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return s[i:j], j
}

// compareNumeric compares two digit runs by value. Leading zeros are
// ignored; a longer significant part is always the larger number.
func compareNumeric(a, b string) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func trimZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
