package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TemplateDelimiter separates the metadata block from the template source.
const TemplateDelimiter = "## TEMPLATE SOURCE: ##"

const delimiterLine = "\n" + TemplateDelimiter + "\n"

// FormatError reports a page file that cannot be parsed.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bad page file: %s", e.Reason)
	}
	return fmt.Sprintf("bad page file %s: %s", e.Path, e.Reason)
}

// pageMetadata fields are declared in key order so the encoded object is sorted.
type pageMetadata struct {
	Alias               *string        `json:"alias"`
	Description         string         `json:"description"`
	Keywords            string         `json:"keywords"`
	PageProcessor       string         `json:"page_processor"`
	PageProcessorConfig map[string]any `json:"page_processor_config"`
	Title               string         `json:"title"`
}

// MarshalPageFile renders the normalized field set in the on-disk page format.
func MarshalPageFile(f Fields) (string, error) {
	f = f.Normalize()
	meta := pageMetadata{
		Alias:               f.Alias,
		Description:         f.Description,
		Keywords:            f.Keywords,
		PageProcessor:       f.PageProcessor,
		PageProcessorConfig: f.PageProcessorConfig,
		Title:               f.Title,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("failed to encode page metadata: %w", err)
	}

	metadata := strings.TrimSuffix(buf.String(), "\n")
	return metadata + delimiterLine + f.Template, nil
}

// UnmarshalPageFile parses page file content into a normalized field set.
// The content is split on the first delimiter line; later occurrences belong
// to the template. Unknown metadata keys are ignored.
func UnmarshalPageFile(content string) (Fields, error) {
	content = strings.ReplaceAll(content, "\r", "")

	metadata, template, found := strings.Cut(content, delimiterLine)
	if !found {
		// Editors commonly drop the final newline of a page with an empty template.
		metadata, found = strings.CutSuffix(content, "\n"+TemplateDelimiter)
		if !found {
			return Fields{}, &FormatError{Reason: "template delimiter not found"}
		}
	}

	meta, err := decodeMetadata(metadata)
	if err != nil {
		return Fields{}, err
	}

	return Fields{
		Alias:               meta.Alias,
		Title:               meta.Title,
		Description:         meta.Description,
		Keywords:            meta.Keywords,
		Template:            template,
		PageProcessor:       meta.PageProcessor,
		PageProcessorConfig: meta.PageProcessorConfig,
	}.Normalize(), nil
}

func decodeMetadata(metadata string) (pageMetadata, error) {
	var meta pageMetadata

	trimmed := strings.TrimSpace(metadata)
	if !strings.HasPrefix(trimmed, "{") {
		return meta, &FormatError{Reason: "metadata is not a JSON object"}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&meta); err != nil {
		return meta, &FormatError{Reason: fmt.Sprintf("invalid metadata: %v", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return meta, &FormatError{Reason: "unexpected data after metadata object"}
	}
	return meta, nil
}

// DecodeConfig parses a stored JSON configuration object. Numbers keep their
// literal form so that re-encoding is lossless.
func DecodeConfig(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) == "null" {
		return nil, nil
	}
	var cfg map[string]any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode page processor config: %w", err)
	}
	return NormalizeConfig(cfg), nil
}

// EncodeConfig renders a configuration object as compact JSON, or "" for nil.
func EncodeConfig(cfg map[string]any) (string, error) {
	cfg = NormalizeConfig(cfg)
	if cfg == nil {
		return "", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode page processor config: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
