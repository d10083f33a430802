package bridge

import "strings"

// Flag is the bit set carried in ArrowSchema.flags.
type Flag int64

const (
	FlagDictionaryOrdered Flag = 1 << iota
	FlagNullable
	FlagMapKeysSorted
)

// Has reports whether every bit of x is set in f.
func (f Flag) Has(x Flag) bool { return f&x == x }

// String lists the set flags joined by "|", or "0" when none are set.
func (f Flag) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f.Has(FlagDictionaryOrdered) {
		parts = append(parts, "dictionary-ordered")
	}
	if f.Has(FlagNullable) {
		parts = append(parts, "nullable")
	}
	if f.Has(FlagMapKeysSorted) {
		parts = append(parts, "map-keys-sorted")
	}
	if rest := f &^ (FlagDictionaryOrdered | FlagNullable | FlagMapKeysSorted); rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
