package i18n

import "testing"

func TestT(t *testing.T) {
	if got := T("el", "prefix.M"); got != "Μεταφορά" {
		t.Fatalf("got %q", got)
	}
	if got := T("en", "prefix.M"); got != "Transportation" {
		t.Fatalf("got %q", got)
	}
	if got := T("en", "status.in_production"); got != "In Production" {
		t.Fatalf("got %q", got)
	}
	// unknown language falls back to Greek
	if got := T("de", "report.balance"); got != "Υπόλοιπο" {
		t.Fatalf("got %q", got)
	}
	// unknown code falls back to the code itself
	if got := T("el", "no.such.code"); got != "no.such.code" {
		t.Fatalf("got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"":                          "el",
		"el-GR,el;q=0.9":            "el",
		"en-US,en;q=0.9,el;q=0.8":   "en",
		"EN":                        "en",
		"fr-FR,de;q=0.9":            "el",
		"de;q=0.9, el-GR;q=0.8":     "el",
		"fr, en-GB;q=0.8, en;q=0.7": "en",
	}
	for header, want := range cases {
		if got := DetectLanguage(header); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}
