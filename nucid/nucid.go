// Package nucid handles nuclide identifiers in ZZZAAASSSS form.
//
// Z is the atomic number, A the mass number (0 for a natural element) and S
// the excitation state, so H-1 is 10010000, O-16 is 80160000 and the first
// metastable state of Am-242 is 952420001.
package nucid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/matlib/errs"
)

const (
	zScale = 10000000
	aScale = 10000

	// MaxZ is the largest atomic number with a symbol.
	MaxZ = 118
	// MaxA is the largest accepted mass number.
	MaxA = 300
	// MaxS is the largest accepted excitation state.
	MaxS = 9999
)

// ID describes a nuclide in ZZZAAASSSS format.
type ID int32

// Z returns the atomic number of a nuclide.
func (n ID) Z() int {
	return int(n) / zScale
}

// A returns the mass number of a nuclide, 0 for a natural element.
func (n ID) A() int {
	return (int(n) / aScale) % 1000
}

// S returns the excitation state of a nuclide.
func (n ID) S() int {
	return int(n) % aScale
}

// Valid reports whether n names a real element with a plausible mass number.
func (n ID) Valid() bool {
	if n <= 0 {
		return false
	}
	z, a := n.Z(), n.A()
	if z < 1 || z > MaxZ {
		return false
	}

	return a == 0 || (a >= z && a <= MaxA)
}

// Element returns the element symbol, or "" for an invalid Z.
func (n ID) Element() string {
	z := n.Z()
	if z < 1 || z > MaxZ {
		return ""
	}

	return symbols[z]
}

// String returns the human form, e.g. "H1", "U235", "Am242M", "Fe".
// Invalid ids print as their decimal value.
func (n ID) String() string {
	if !n.Valid() {
		return strconv.Itoa(int(n))
	}

	var b strings.Builder
	b.WriteString(n.Element())
	if a := n.A(); a > 0 {
		b.WriteString(strconv.Itoa(a))
	}
	switch s := n.S(); {
	case s == 1:
		b.WriteByte('M')
	case s > 1:
		b.WriteByte('M')
		b.WriteString(strconv.Itoa(s))
	}

	return b.String()
}

// FromZAS builds an id from its parts.
func FromZAS(z, a, s int) (ID, error) {
	if s < 0 || s > MaxS || a < 0 {
		return 0, fmt.Errorf("%w: z=%d a=%d s=%d", errs.ErrInvalidNuclide, z, a, s)
	}
	n := ID(z*zScale + a*aScale + s)
	if !n.Valid() {
		return 0, fmt.Errorf("%w: z=%d a=%d s=%d", errs.ErrInvalidNuclide, z, a, s)
	}

	return n, nil
}

// Parse reads a nuclide in any of the accepted forms:
//
//   - "922350000": ZZZAAASSSS
//   - "92235", "1001": ZZAAA / ZZZAAA, scaled to ZZZAAASSSS
//   - "U235", "U-235", "u235m", "Am-242M2", "Fe": symbol, mass number, state
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", errs.ErrInvalidNuclide)
	}

	if isDigits(s) {
		return parseNumeric(s)
	}

	return parseName(s)
}

// MustParse is like Parse but panics on error. Intended for constants in tests
// and examples.
func MustParse(s string) ID {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return n
}

func parseNumeric(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
	}
	if v < zScale {
		v *= aScale
	}
	if v > int64(MaxZ+1)*zScale {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
	}

	n := ID(v)
	if !n.Valid() {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
	}

	return n, nil
}

func parseName(s string) (ID, error) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i > 2 {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
	}
	z, ok := bySymbol[strings.ToUpper(s[:1])+strings.ToLower(s[1:i])]
	if !ok {
		return 0, fmt.Errorf("%w: unknown element in %q", errs.ErrInvalidNuclide, s)
	}

	rest, dashed := strings.CutPrefix(s[i:], "-")
	j := 0
	for j < len(rest) && isDigit(rest[j]) {
		j++
	}
	if dashed && j == 0 {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
	}
	a := 0
	if j > 0 {
		a, _ = strconv.Atoi(rest[:j])
	}

	state := 0
	rest = rest[j:]
	if rest != "" {
		if rest[0] != 'm' && rest[0] != 'M' {
			return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
		}
		state = 1
		if len(rest) > 1 {
			if !isDigits(rest[1:]) {
				return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
			}
			state, _ = strconv.Atoi(rest[1:])
		}
	}

	n, err := FromZAS(z, a, state)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidNuclide, s)
	}

	return n, nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}
