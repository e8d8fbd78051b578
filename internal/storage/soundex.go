package storage

import "strings"

// soundexCode maps a letter to its Soundex digit, or 0 for vowels
// and the letters h, w, y which are skipped.
func soundexCode(r byte) byte {
	switch r {
	case 'b', 'f', 'p', 'v':
		return '1'
	case 'c', 'g', 'j', 'k', 'q', 's', 'x', 'z':
		return '2'
	case 'd', 't':
		return '3'
	case 'l':
		return '4'
	case 'm', 'n':
		return '5'
	case 'r':
		return '6'
	}
	return 0
}

// Soundex returns the four character Soundex code for a word.
// Adjacent letters sharing a digit collapse to one, and h/w between
// two letters with the same digit do not break the run. Non-letter
// input yields an empty string.
func Soundex(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))

	// Skip to the first letter
	start := -1
	for i := 0; i < len(word); i++ {
		if word[i] >= 'a' && word[i] <= 'z' {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	first := word[start]
	code := make([]byte, 0, 4)
	code = append(code, first-'a'+'A')

	prev := soundexCode(first)
	for i := start + 1; i < len(word) && len(code) < 4; i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			prev = 0
			continue
		}
		d := soundexCode(c)
		if c == 'h' || c == 'w' {
			// h and w do not reset the previous digit
			continue
		}
		if d != 0 && d != prev {
			code = append(code, d)
		}
		prev = d
	}

	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// lastNameWord returns the final whitespace separated word of a name,
// which for faculty names is the surname the phonetic match keys on.
func lastNameWord(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
