package social

import "testing"

func TestValidatePayload_Register(t *testing.T) {
	cases := []struct {
		name string
		req  registerRequest
		ok   bool
	}{
		{"valid", registerRequest{Name: "ada", Email: "ada@stud.noroff.no", Password: "hunter22"}, true},
		{"missing name", registerRequest{Email: "ada@stud.noroff.no", Password: "hunter22"}, false},
		{"bad email", registerRequest{Name: "ada", Email: "nope", Password: "hunter22"}, false},
		{"short password", registerRequest{Name: "ada", Email: "ada@stud.noroff.no", Password: "short"}, false},
	}
	for _, tc := range cases {
		err := validatePayload(tc.req)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			if err.Kind != KindBadRequest || err.Message == "" {
				t.Fatalf("%s: err = %#v, want bad request with message", tc.name, err)
			}
		}
	}
}

func TestValidatePayload_PostRequiresTitle(t *testing.T) {
	if err := validatePayload(PostPayload{Title: "hi"}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	err := validatePayload(PostPayload{Body: "body only"})
	if err == nil {
		t.Fatal("empty title accepted")
	}
	if err.Message != "The title field is required!" {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestFieldMessage_EmailAndMin(t *testing.T) {
	err := validatePayload(loginRequest{Email: "nope", Password: "x"})
	if err == nil || err.Message != "The email address is not valid!" {
		t.Fatalf("email message = %v", err)
	}
	err = validatePayload(registerRequest{Name: "a", Email: "a@b.co", Password: "short"})
	if err == nil || err.Message != "The password must be at least 8 characters!" {
		t.Fatalf("min message = %v", err)
	}
}
