package domain

import "strings"

// Fields is the subset of a page's attributes compared and exchanged during sync.
// It carries every sync-relevant attribute except the locally-edited flag.
type Fields struct {
	Alias               *string
	Title               string
	Description         string
	Keywords            string
	Template            string
	PageProcessor       string
	PageProcessorConfig map[string]any
}

// NormalizeText trims surrounding whitespace and strips carriage returns.
func NormalizeText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\r", "")
}

// NormalizeLine normalizes a single-line value such as a title.
func NormalizeLine(s string) string {
	return strings.ReplaceAll(NormalizeText(s), "\n", "")
}

// NormalizeTemplate normalizes a content body. A non-empty body always ends
// with exactly one newline; an empty body stays empty.
func NormalizeTemplate(s string) string {
	normalized := NormalizeText(s)
	if normalized != "" {
		normalized += "\n"
	}
	return normalized
}

// NormalizeAlias trims the alias and maps the empty alias to nil.
func NormalizeAlias(alias *string) *string {
	if alias == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*alias)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeConfig maps an empty configuration to nil and passes anything else through.
func NormalizeConfig(cfg map[string]any) map[string]any {
	if len(cfg) == 0 {
		return nil
	}
	return cfg
}

// Normalize returns the canonical form of f. Normalize is idempotent.
func (f Fields) Normalize() Fields {
	return Fields{
		Alias:               NormalizeAlias(f.Alias),
		Title:               NormalizeLine(f.Title),
		Description:         NormalizeText(f.Description),
		Keywords:            NormalizeText(f.Keywords),
		Template:            NormalizeTemplate(f.Template),
		PageProcessor:       NormalizeText(f.PageProcessor),
		PageProcessorConfig: NormalizeConfig(f.PageProcessorConfig),
	}
}

// Equal compares the canonical serializations of both normalized field sets,
// so configuration values compare independently of their in-memory representation.
func (f Fields) Equal(other Fields) bool {
	a, errA := MarshalPageFile(f)
	b, errB := MarshalPageFile(other)
	if errA != nil || errB != nil {
		return false
	}
	return a == b
}
