package fuzzy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		max  int
		want int
	}{
		{"identical", "doom", "doom", 2, 0},
		{"identical empty", "", "", 2, 0},
		{"single substitution", "doom", "dood", 2, 1},
		{"adjacent transposition costs one", "teh", "the", 2, 1},
		{"insertion", "mario", "marios", 2, 1},
		{"deletion", "marios", "mario", 2, 1},
		{"length gap rejected early", "a", "abcdef", 2, 3},
		{"over the bound", "abcdef", "uvwxyz", 2, 3},
		{"exactly at the bound", "abcd", "abxy", 2, 2},
		{"empty versus short", "", "ab", 2, 2},
		{"accent is one substitution", "pokémon", "pokemon", 2, 1},
		{"accents count per character", "réséda", "reseda", 2, 2},
		{"multibyte length gap rejected early", "éé", "ééxxx", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b, tt.max); got != tt.want {
				t.Errorf("Distance(%q, %q, %d) = %d, want %d", tt.a, tt.b, tt.max, got, tt.want)
			}
			if got := Distance(tt.b, tt.a, tt.max); got != tt.want {
				t.Errorf("Distance(%q, %q, %d) = %d, want %d (symmetry)", tt.b, tt.a, tt.max, got, tt.want)
			}
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	writeFile := func(t *testing.T, dir, name string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("exact match beats earlier-enumerated fuzzy match", func(t *testing.T) {
		dir := t.TempDir()
		// Sorts before the exact file so the fuzzy hit is seen first.
		fuzzyPath := writeFile(t, dir, "Super Mario Broa.png")
		exact := writeFile(t, dir, "Super Mario Bros.png")

		got := FindBestMatch(dir, "Super Mario Bros", []string{"png"}, DefaultMaxDistance)
		if got != exact {
			t.Errorf("FindBestMatch() = %q, want %q (fuzzy candidate %q)", got, exact, fuzzyPath)
		}
	})

	t.Run("fuzzy match within bound", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFile(t, dir, "Super_Mario_Bross.png")

		got := FindBestMatch(dir, "Super Mario Bros", []string{"png"}, DefaultMaxDistance)
		if got != want {
			t.Errorf("FindBestMatch() = %q, want %q", got, want)
		}
	})

	t.Run("match in nested directory", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "Region - North America")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}
		want := writeFile(t, sub, "Doom.png")

		got := FindBestMatch(dir, "Doom", []string{"png"}, DefaultMaxDistance)
		if got != want {
			t.Errorf("FindBestMatch() = %q, want %q", got, want)
		}
	})

	t.Run("accented title matches unaccented filename", func(t *testing.T) {
		dir := t.TempDir()
		want := writeFile(t, dir, "Pokemon Rouge.png")

		got := FindBestMatch(dir, "Pokémon Rougé", []string{"png"}, DefaultMaxDistance)
		if got != want {
			t.Errorf("FindBestMatch() = %q, want %q", got, want)
		}
	})

	t.Run("beyond bound yields nothing", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Completely Different Name.png")

		if got := FindBestMatch(dir, "Doom", []string{"png"}, DefaultMaxDistance); got != "" {
			t.Errorf("FindBestMatch() = %q, want empty", got)
		}
	})

	t.Run("missing folder yields nothing", func(t *testing.T) {
		if got := FindBestMatch(filepath.Join(t.TempDir(), "absent"), "Doom", []string{"png"}, DefaultMaxDistance); got != "" {
			t.Errorf("FindBestMatch() = %q, want empty", got)
		}
	})

	t.Run("extension filter applies", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Doom.txt")

		if got := FindBestMatch(dir, "Doom", []string{"png"}, DefaultMaxDistance); got != "" {
			t.Errorf("FindBestMatch() = %q, want empty", got)
		}
	})
}
