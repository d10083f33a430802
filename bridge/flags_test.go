package bridge

import "testing"

func TestFlagBits(t *testing.T) {
	if FlagDictionaryOrdered != 1 || FlagNullable != 2 || FlagMapKeysSorted != 4 {
		t.Fatalf("flag bits changed: %d %d %d", FlagDictionaryOrdered, FlagNullable, FlagMapKeysSorted)
	}

	f := FlagNullable | FlagMapKeysSorted
	if !f.Has(FlagNullable) || !f.Has(FlagMapKeysSorted) || f.Has(FlagDictionaryOrdered) {
		t.Errorf("Has misreports bits of %d", f)
	}
	if f.Has(FlagNullable | FlagDictionaryOrdered) {
		t.Error("Has must require every bit")
	}

	tests := []struct {
		flag Flag
		want string
	}{
		{0, "0"},
		{FlagNullable, "nullable"},
		{FlagDictionaryOrdered | FlagMapKeysSorted, "dictionary-ordered|map-keys-sorted"},
		{FlagNullable | 64, "nullable|unknown"},
	}
	for _, tt := range tests {
		if got := tt.flag.String(); got != tt.want {
			t.Errorf("Flag(%d).String() = %q, want %q", int64(tt.flag), got, tt.want)
		}
	}
}
