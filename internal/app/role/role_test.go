package role

import "testing"

func TestRoleString(t *testing.T) {
	cases := []struct {
		role Role
		want string
	}{
		{Editor, "editor"},
		{Admin, "admin"},
		{SuperAdmin, "superadmin"},
		{Role(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.role.String(); got != c.want {
			t.Errorf("Role(%d).String() = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"editor", "admin", "superadmin"} {
		r, ok := Parse(name)
		if !ok {
			t.Fatalf("Parse(%q) not ok", name)
		}
		if r.String() != name {
			t.Errorf("Parse(%q).String() = %q", name, r.String())
		}
	}

	if _, ok := Parse("moderator"); ok {
		t.Error("Parse accepted unknown role")
	}
}
