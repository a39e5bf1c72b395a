package titles

import "strings"

// replacementChars is the punctuation that LaunchBox media filenames may
// carry verbatim, replaced, or dropped.
var replacementChars = []string{":", "!", "?", "*", "\"", "<", ">", "|"}

// replacements are the substitutions tried for each punctuation character.
var replacements = []string{"_", " ", ""}

// apostrophes covers the ASCII apostrophe and the Unicode right single quote.
var apostrophes = []string{"'", "’"}

// Candidates generates plausible filename bases for the provided title,
// ordered most-likely first, de-duplicated, with no empty entries.
func Candidates(title string) []string {
	var candidates []string
	seen := make(map[string]struct{})

	add := func(value string) {
		cleaned := strings.TrimSpace(value)
		if cleaned == "" {
			return
		}
		if _, ok := seen[cleaned]; ok {
			return
		}
		seen[cleaned] = struct{}{}
		candidates = append(candidates, cleaned)
	}

	for _, raw := range rawVariants(title) {
		base := Normalize(raw)
		for _, variant := range baseVariants(base) {
			add(variant)
		}
	}
	return candidates
}

// rawVariants expands the title over the punctuation set to a fixed point:
// each character is substituted in every variant accumulated so far, so
// substitutions for different characters combine.
func rawVariants(title string) []string {
	variants := []string{title}
	seen := map[string]struct{}{title: {}}

	for _, ch := range replacementChars {
		snapshot := variants
		for _, variant := range snapshot {
			if !strings.Contains(variant, ch) {
				continue
			}
			for _, repl := range replacements {
				next := strings.ReplaceAll(variant, ch, repl)
				if _, ok := seen[next]; ok {
					continue
				}
				seen[next] = struct{}{}
				variants = append(variants, next)
			}
		}
	}
	return variants
}

// baseVariants produces apostrophe-substituted and space-collapsed forms
// of an already-normalized base.
func baseVariants(base string) []string {
	if base == "" {
		return nil
	}

	var variants []string
	seen := make(map[string]struct{})
	add := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		variants = append(variants, value)
	}

	add(base)
	for _, repl := range []string{"_", "", " "} {
		variant := base
		for _, mark := range apostrophes {
			variant = strings.ReplaceAll(variant, mark, repl)
		}
		add(variant)
	}
	add(strings.ReplaceAll(base, " ", "_"))
	add(strings.ReplaceAll(base, " ", ""))
	return variants
}
