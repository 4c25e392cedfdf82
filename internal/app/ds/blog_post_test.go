package ds

import "testing"

func TestValidSlug(t *testing.T) {
	valid := []string{"split-systems", "top-10-models-2025", "a", "ac"}
	for _, s := range valid {
		if !ValidSlug(s) {
			t.Errorf("ValidSlug(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "-leading", "trailing-", "double--dash", "С-кириллицей", "With Space", "UPPER"}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Errorf("ValidSlug(%q) = true, want false", s)
		}
	}
}
