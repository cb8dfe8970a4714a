package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // v1
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29"}
	invalid := []string{"2023-02-29", "01-01-2024", "2024/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		wantFields []string
	}{
		{"ordered", "2024-06-03", "2024-06-07", nil},
		{"same day", "2024-06-03", "2024-06-03", nil},
		{"reversed", "2024-06-07", "2024-06-03", []string{"end_date"}},
		{"bad start", "June 3", "2024-06-03", []string{"start_date"}},
		{"both bad", "", "", []string{"start_date", "end_date"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var errs ValidationErrors
			ValidateDateRange(&errs, "start_date", c.start, "end_date", c.end)
			if len(errs) != len(c.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(c.wantFields))
			}
			for i, field := range c.wantFields {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

type structSample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func TestStruct(t *testing.T) {
	if errs := Struct(structSample{Email: "a@b.cd", Password: "password123", Role: "admin"}); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	errs := Struct(structSample{Email: "nope", Password: "short", Role: "owner"})
	got := errs.ToMap()
	want := map[string]string{
		"email":    "invalid email format",
		"password": "password must be at least 8 characters",
		"role":     "role must be one of: user, admin",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q message = %q, want %q", field, got[field], msg)
		}
	}
}

func TestValidationErrorsErr(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatal("empty ValidationErrors.Err() should be nil")
	}
	errs.Add("field", "broken")
	if errs.Err() == nil || errs.Error() != "field: broken" {
		t.Fatalf("Err() = %v, want field: broken", errs.Err())
	}
}
