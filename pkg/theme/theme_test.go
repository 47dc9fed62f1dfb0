package theme

import (
	"testing"

	"github.com/matzehuels/okrdash/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestWithDoesNotMutateBase(t *testing.T) {
	base := Default()
	out, err := base.With(Overrides{Accent: "#00ff00", Palette: []string{"#111111"}, TitleSize: 16})
	if err != nil {
		t.Fatalf("With() error: %v", err)
	}

	if out.Accent != "#00ff00" {
		t.Errorf("Accent = %v, want #00ff00", out.Accent)
	}
	if out.TitleSize != 16 {
		t.Errorf("TitleSize = %v, want 16", out.TitleSize)
	}
	if base.Accent != "#D4A84B" {
		t.Errorf("base Accent changed to %v", base.Accent)
	}
	if base.Palette[0] != "#222222" {
		t.Errorf("base Palette changed to %v", base.Palette)
	}
	if out.Background != base.Background {
		t.Errorf("Background = %v, want unchanged %v", out.Background, base.Background)
	}
}

func TestWithRejectsBadColor(t *testing.T) {
	_, err := Default().With(Overrides{Background: "javascript:alert(1)"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("With() error = %v, want INVALID_INPUT", err)
	}
}

func TestFontFamily(t *testing.T) {
	tests := []struct {
		family  string
		wantErr bool
	}{
		{"Segoe UI, system-ui, sans-serif", false},
		{"'Segoe UI', sans-serif", false},
		{`"Segoe UI"`, true},
		{"Arial; background:url(x)", true},
		{"</style>", true},
	}
	for _, tt := range tests {
		_, err := Default().With(Overrides{FontFamily: tt.family})
		if (err != nil) != tt.wantErr {
			t.Errorf("With(FontFamily: %q) error = %v, wantErr %v", tt.family, err, tt.wantErr)
		}
	}
}

func TestSegmentColor(t *testing.T) {
	th := Default()
	if got := th.SegmentColor(0); got != th.Accent {
		t.Errorf("SegmentColor(0) = %v, want accent", got)
	}
	if got := th.SegmentColor(1); got != "#222222" {
		t.Errorf("SegmentColor(1) = %v, want #222222", got)
	}
	if got := th.SegmentColor(5); got != "#222222" {
		t.Errorf("SegmentColor(5) = %v, want palette wrap to #222222", got)
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		in      Color
		wantErr bool
	}{
		{"#fff", false},
		{"#0a0a0a", false},
		{"red", false},
		{"", true},
		{"#12345", true},
		{"rgb(1,2,3)", true},
		{`"><script>`, true},
	}
	for _, tt := range tests {
		if err := ValidateColor(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestResolve(t *testing.T) {
	th := Default()
	tests := map[Role]Color{
		RoleAccent: th.Accent,
		RoleText:   th.Text,
		RoleMuted:  th.Muted,
		RoleAlert:  th.Alert,
	}
	for role, want := range tests {
		if got := th.Resolve(role); got != want {
			t.Errorf("Resolve(%s) = %v, want %v", role, got, want)
		}
	}
	if _, err := ParseRole("purple"); err == nil {
		t.Error("ParseRole(purple) should fail")
	}
}
