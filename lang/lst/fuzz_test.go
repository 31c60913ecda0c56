package lst_test

import (
	"context"
	"testing"

	"github.com/ardnew/apml/lang/lst"
)

// FuzzParse checks the defining invariant: any input that parses
// renders back byte-for-byte, and the count-only scanner agrees with
// the full parser on both acceptance and token count.
func FuzzParse(f *testing.F) {
	for _, seed := range []string{
		"",
		"a=b\nb=c\nc=\"$1\"",
		"# comment\n\nPKG=name-1.0 # inline\n",
		`a='one'"two"three` + "\n",
		"a=${V:-fallback} b=${W/#x/y}\n",
		"a=back\\\nslash\\ escaped\n",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tree, err := lst.Parse(context.Background(), src)

		count, scanErr := lst.Scan(src)

		if err != nil {
			if scanErr == nil {
				t.Errorf("Parse rejected %q but Scan accepted", src)
			}

			return
		}

		if scanErr != nil {
			t.Fatalf("Parse accepted %q but Scan rejected: %v", src, scanErr)
		}

		if count != len(tree.Tokens) {
			t.Errorf("Scan = %d tokens, Parse = %d for %q",
				count, len(tree.Tokens), src)
		}

		if got := tree.String(); got != src {
			t.Errorf("round trip mismatch:\n got: %q\nwant: %q", got, src)
		}
	})
}
