package core

import (
	"strconv"
	"strings"
)

// choiceLetters are the accepted letter labels, in choice order.
const choiceLetters = "abcdefghij"

// ParseChoiceIndex turns a letter ("b") or a 1-based number ("2") into a
// 0-based choice index. Anything outside [0, n) is rejected.
func ParseChoiceIndex(raw string, n int) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || n <= 0 {
		return 0, false
	}
	if len(s) == 1 {
		if i := strings.IndexByte(choiceLetters, s[0]); i >= 0 {
			return i, i < n
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// ChoiceLabel returns the letter label of a 0-based choice index.
func ChoiceLabel(i int) string {
	if i < 0 || i >= len(choiceLetters) {
		return strconv.Itoa(i + 1)
	}
	return string(choiceLetters[i])
}
