package i18n

import "testing"

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		header   string
		want     string
	}{
		{"nothing", "", "", "en"},
		{"explicit", "fr", "", "fr"},
		{"explicit beats header", "es", "ru-RU,ru;q=0.9", "es"},
		{"header region", "", "ru-RU,ru;q=0.9,en;q=0.5", "ru"},
		{"header quality order", "", "de;q=1.0,fr;q=0.8", "fr"},
		{"unsupported", "de", "ja", "en"},
		{"garbage", "??", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Negotiate(tt.explicit, tt.header); got != tt.want {
				t.Errorf("Negotiate(%q, %q) = %q, want %q", tt.explicit, tt.header, got, tt.want)
			}
		})
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for lang, tr := range catalog {
		for key := range catalog[Default] {
			if _, ok := tr[key]; !ok {
				t.Errorf("%s: missing %q", lang, key)
			}
		}
		if len(tr) != len(catalog[Default]) {
			t.Errorf("%s: %d keys, want %d", lang, len(tr), len(catalog[Default]))
		}
	}
}

func TestMessage(t *testing.T) {
	if got := Message("fr", "auth.weak_password"); got != "Le mot de passe doit contenir au moins 8 caractères." {
		t.Errorf("fr = %q", got)
	}
	if got := Message("de", "auth.weak_password"); got != catalog["en"]["auth.weak_password"] {
		t.Errorf("unknown lang = %q", got)
	}
	if got := Message("en", "no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q", got)
	}
}
