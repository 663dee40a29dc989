package doi

import "testing"

func TestValid(t *testing.T) {
	good := []string{"10.3139/9783446450776", "10.1234/sample", "10.1000/a.b-c_(1)"}
	for _, s := range good {
		if !Valid(s) {
			t.Fatalf("Valid(%q): want true", s)
		}
	}
	bad := []string{"", "10.12/x", "11.1234/x", "10.1234/", "10.1234", "10.1234/a b"}
	for _, s := range bad {
		if Valid(s) {
			t.Fatalf("Valid(%q): want false", s)
		}
	}
}

func TestSplit(t *testing.T) {
	p, s, ok := Split("10.3139/9783446450776")
	if !ok || p != "10.3139" || s != "9783446450776" {
		t.Fatalf("Split: %q %q %v", p, s, ok)
	}
	if _, _, ok := Split("/x"); ok {
		t.Fatalf("Split leading slash should fail")
	}
}

func TestFromBookPath(t *testing.T) {
	d, tail, ok := FromBookPath([]string{"doi", "book", "10.3139", "9783446450776"})
	if !ok || d != "10.3139/9783446450776" || tail != "9783446450776" {
		t.Fatalf("FromBookPath: %q %q %v", d, tail, ok)
	}
	if _, _, ok := FromBookPath([]string{"doi", "abs", "10.3139", "9783446450776"}); ok {
		t.Fatalf("non-book doi path accepted")
	}
	if _, _, ok := FromBookPath([]string{"doi", "book", "3139", "9783446450776"}); ok {
		t.Fatalf("invalid doi prefix accepted")
	}
}
