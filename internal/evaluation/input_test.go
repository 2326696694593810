package evaluation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validAnswersYAML = `user:
  nombre: Ana
  apellido: Gómez
  email: ana@example.com
  empresa: Acme S.A.S.
secciones:
  - [1, 1, 1, 1, 1]
  - [1, 1, 0, 1, 1]
  - [3, 2, 3, 2, 2]
  - [2, 1, 1, 2, 1]
  - [2, 1, 2, 2, 0]
  - [2, 2, 2, 2, 0]
  - [1, 1, 1, 1, 1]
`

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	return path
}

func TestLoadAnswerSet(t *testing.T) {
	path := writeAnswers(t, validAnswersYAML)
	set, hash, err := LoadAnswerSet(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("expected file hash")
	}
	if set.User.Nombre != "Ana" || set.User.Empresa != "Acme S.A.S." {
		t.Fatalf("unexpected user: %+v", set.User)
	}
	if len(set.Secciones) != SectionCount {
		t.Fatalf("sections = %d, want %d", len(set.Secciones), SectionCount)
	}
	if set.Secciones[2][0] != 3 {
		t.Fatalf("section 3 answer 1 = %d, want 3", set.Secciones[2][0])
	}
}

func TestLoadAnswerSetRejectsUnknownField(t *testing.T) {
	path := writeAnswers(t, validAnswersYAML+"extra: true\n")
	_, _, err := LoadAnswerSet(path)
	if err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), "answers.extra") {
		t.Fatalf("error should name the field: %v", err)
	}
}

func TestLoadAnswerSetRejectsWrongSectionCount(t *testing.T) {
	content := `user:
  nombre: Ana
  apellido: Gómez
  email: ana@example.com
  empresa: Acme
secciones:
  - [1, 1, 1, 1, 1]
`
	path := writeAnswers(t, content)
	_, _, err := LoadAnswerSet(path)
	if err == nil || !strings.Contains(err.Error(), "exactly 7 sections") {
		t.Fatalf("expected section count error, got %v", err)
	}
}

func TestLoadAnswerSetRejectsNonIntegerAnswer(t *testing.T) {
	content := strings.Replace(validAnswersYAML, "[3, 2, 3, 2, 2]", "[3, dos, 3, 2, 2]", 1)
	path := writeAnswers(t, content)
	_, _, err := LoadAnswerSet(path)
	if err == nil || !strings.Contains(err.Error(), "must be an integer") {
		t.Fatalf("expected integer error, got %v", err)
	}
}

func TestLoadAnswerSetReportsLineNumbers(t *testing.T) {
	path := writeAnswers(t, validAnswersYAML+"extra: true\n")
	_, _, err := LoadAnswerSet(path)
	if err == nil || !strings.Contains(err.Error(), "line ") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestLoadAnswerSetRejectsMissingUser(t *testing.T) {
	content := `secciones:
  - [1, 1, 1, 1, 1]
  - [1, 1, 1, 1, 1]
  - [1, 1, 1, 1, 1]
  - [1, 1, 1, 1, 1]
  - [1, 1, 1, 1, 1]
  - [1, 1, 1, 1, 1]
  - [1, 1, 1, 1, 1]
`
	path := writeAnswers(t, content)
	_, _, err := LoadAnswerSet(path)
	if err == nil || !strings.Contains(err.Error(), "answers.user") {
		t.Fatalf("expected missing user error, got %v", err)
	}
}

func TestValidateUser(t *testing.T) {
	ok := UserProfile{Nombre: "Ana", Apellido: "Gómez", Email: "ana@example.com", Empresa: "Acme"}
	if err := ValidateUser(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name  string
		mod   func(u *UserProfile)
		field string
	}{
		{"empty nombre", func(u *UserProfile) { u.Nombre = " " }, "nombre"},
		{"empty apellido", func(u *UserProfile) { u.Apellido = "" }, "apellido"},
		{"empty email", func(u *UserProfile) { u.Email = "" }, "email"},
		{"email without at", func(u *UserProfile) { u.Email = "ana.example.com" }, "email"},
		{"empty empresa", func(u *UserProfile) { u.Empresa = "" }, "empresa"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := ok
			tc.mod(&u)
			err := ValidateUser(u)
			missing, isMissing := err.(*MissingRequiredDataError)
			if !isMissing {
				t.Fatalf("expected MissingRequiredDataError, got %v", err)
			}
			if missing.Field != tc.field {
				t.Fatalf("field = %q, want %q", missing.Field, tc.field)
			}
		})
	}
}
