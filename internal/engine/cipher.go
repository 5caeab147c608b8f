package engine

import (
	"strconv"
	"strings"
)

// Validator reports whether attempt decrypts encrypted. Validators are pure.
type Validator func(encrypted, attempt string) bool

// Caesar accepts any of the 26 shifts of encrypted.
func Caesar(encrypted, attempt string) bool {
	want := strings.ToUpper(strings.TrimSpace(attempt))
	src := strings.ToUpper(encrypted)
	for shift := 0; shift < 26; shift++ {
		if shiftLetters(src, shift) == want {
			return true
		}
	}
	return false
}

func shiftLetters(s string, shift int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			r = 'A' + (r-'A'-rune(shift)+26)%26
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Reverse accepts encrypted read backwards.
func Reverse(encrypted, attempt string) bool {
	r := []rune(strings.ToUpper(encrypted))
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r) == strings.ToUpper(strings.TrimSpace(attempt))
}

// Numeric decodes dash-separated alphabet positions, 1 for A through 26 for
// Z. Any group out of range invalidates the attempt.
func Numeric(encrypted, attempt string) bool {
	var b strings.Builder
	for _, part := range strings.Split(encrypted, "-") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 26 {
			return false
		}
		b.WriteRune(rune('A' + n - 1))
	}
	return b.String() == strings.ToUpper(strings.TrimSpace(attempt))
}

// CipherItem is one encrypted artifact in a cipher room.
type CipherItem struct {
	ID         string
	Name       string
	Encrypted  string
	Decrypted  string
	CipherType string
	Hint       string
	Provides   string
	Validate   Validator
}

// CipherPuzzle is a table of cipher items keyed by id, in display order.
type CipherPuzzle struct {
	Items []CipherItem
}

func (p *CipherPuzzle) Item(id string) (CipherItem, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return CipherItem{}, false
}

// ValidateDecryption checks attempt against the item's validator. Unknown
// items never validate.
func (p *CipherPuzzle) ValidateDecryption(id, attempt string) bool {
	it, ok := p.Item(id)
	if !ok || it.Validate == nil {
		return false
	}
	return it.Validate(it.Encrypted, attempt)
}

func (p *CipherPuzzle) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
