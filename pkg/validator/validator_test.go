package validator

import "testing"

func TestValidateRegister(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		email     string
		userName  string
		password  string
		wantField string
	}{
		{"valid", "sam@example.com", "Sam", "Sup3rSecret", ""},
		{"missing email", "", "Sam", "Sup3rSecret", "email"},
		{"bad email", "not-an-email", "Sam", "Sup3rSecret", "email"},
		{"short name", "sam@example.com", "S", "Sup3rSecret", "name"},
		{"short password", "sam@example.com", "Sam", "Ab1", "password"},
		{"no digit", "sam@example.com", "Sam", "Password", "password"},
		{"no uppercase", "sam@example.com", "Sam", "password1", "password"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := ValidateRegister(c.email, c.userName, c.password)
			if c.wantField == "" {
				if errs.HasErrors() {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if _, ok := errs[c.wantField]; !ok {
				t.Errorf("missing error for %q, got: %v", c.wantField, errs)
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	t.Parallel()
	if errs := ValidateEvent("Launch", "ship it", 1735689600000); errs.HasErrors() {
		t.Errorf("valid event: unexpected errors %v", errs)
	}
	if errs := ValidateEvent("", "c", 1); errs["title"] == "" {
		t.Errorf("empty title: got %v", errs)
	}
	if errs := ValidateEvent("t", "", 1); errs["content"] == "" {
		t.Errorf("empty content: got %v", errs)
	}
	if errs := ValidateEvent("t", "c", 0); errs["deadline"] == "" {
		t.Errorf("zero deadline: got %v", errs)
	}
}

func TestValidateMessage(t *testing.T) {
	t.Parallel()
	if errs := ValidateMessage("hello"); errs.HasErrors() {
		t.Errorf("valid body: unexpected errors %v", errs)
	}
	if errs := ValidateMessage("   "); errs["body"] == "" {
		t.Errorf("blank body: got %v", errs)
	}
}
