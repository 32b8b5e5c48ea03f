package calc_test

import (
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("D(x, x^2)")
	f.Add("-(-sin(x)^2, 1")
	f.Add("(0-1)^0.5")
	f.Fuzz(func(t *testing.T, s string) {
		for _, fold := range []bool{false, true} {
			e, err := calc.Parse(s, fold)
			if err != nil {
				var ie calc.InputError
				if !errors.As(err, &ie) {
					t.Errorf("parsing %q: error %v is not an InputError", s, err)
				}
				continue
			}
			_ = e.String()
			_ = e.Vars()
			if !e.Clone().Equal(e) {
				t.Errorf("clone of %q differs", s)
			}
		}
	})
}
