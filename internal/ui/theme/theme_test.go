package theme

import "testing"

func TestBuiltinPalettesRegistered(t *testing.T) {
	want := []string{"dracula", "github", "gruvbox", "nord", "tokyonight"}
	got := Available()
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDefaultPaletteIsCurrent(t *testing.T) {
	if CurrentName() != DefaultName {
		t.Fatalf("expected default palette %q, got %q", DefaultName, CurrentName())
	}
	if Current().Name != DefaultName {
		t.Fatalf("Current().Name = %q", Current().Name)
	}
}

func TestSetAndCycle(t *testing.T) {
	t.Cleanup(func() { Set(DefaultName) })

	if Set("missing") {
		t.Fatal("expected Set to reject unknown palette")
	}
	if !Set("nord") {
		t.Fatal("expected Set(nord) to succeed")
	}
	if got := Cycle(); got != "tokyonight" {
		t.Fatalf("Cycle() from nord = %q, want tokyonight", got)
	}
	if got := Cycle(); got != "dracula" {
		t.Fatalf("Cycle() should wrap to dracula, got %q", got)
	}
}

func TestPalettesDefineEveryRole(t *testing.T) {
	for _, name := range Available() {
		Set(name)
		p := Current()
		for role, c := range map[string]string{
			"accent": p.Accent.Dark, "todo": p.Todo.Dark, "inprogress": p.InProgress.Dark,
			"done": p.Done.Dark, "error": p.Error.Dark, "text": p.Text.Light,
			"muted": p.TextMuted.Light, "selected": p.Selected.Dark, "border": p.Border.Light,
			"link": p.Link.Light,
		} {
			if c == "" {
				t.Errorf("palette %s missing %s color", name, role)
			}
		}
	}
	Set(DefaultName)
}
