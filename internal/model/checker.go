package model

// DefaultCheckers seeds the reviewer registry on first start.
var DefaultCheckers = []string{"Nice", "Fah", "Anont", "Air", "Ploy", "Aum", "Film", "Aun", "Ning", "New", "Tong"}

// ToggleChecker adds name to the selection when absent and removes it when
// present. Order is preserved and the input is never modified.
func ToggleChecker(selection []string, name string) []string {
	out := make([]string, 0, len(selection)+1)
	found := false
	for _, s := range selection {
		if s == name {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, name)
	}
	return out
}
