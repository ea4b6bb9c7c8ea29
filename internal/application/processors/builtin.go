package processors

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"powerpages/internal/domain"
)

const (
	DefaultName  = domain.DefaultPageProcessor
	RedirectName = "powerpages.RedirectProcessor"
	NotFoundName = "powerpages.NotFoundProcessor"
)

// variable is one accepted configuration key and its value check.
type variable struct {
	name  string
	check func(v any) error
}

var defaultVariables = []variable{
	{"base template", isString},
	{"cache", isBoolOrNonNegativeNumber},
	{"cache for user", isBool},
	{"context processors", isList},
	{"tag libraries", isList},
	{"sitemap", isBoolOrMap},
	{"headers", isMap},
}

var redirectVariables = append(append([]variable{}, defaultVariables...),
	variable{"permanent", isBool},
	variable{"to alias", isString},
	variable{"to url", isString},
	variable{"to name", isString},
	variable{"args", isList},
	variable{"kwargs", isMap},
)

// checkConfig rejects unknown keys and values of the wrong type.
func checkConfig(cfg map[string]any, vars []variable) error {
	known := make(map[string]func(any) error, len(vars))
	for _, v := range vars {
		known[v.name] = v.check
	}

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		check, ok := known[k]
		if !ok {
			return fmt.Errorf("unknown config variable %q", k)
		}
		if err := check(cfg[k]); err != nil {
			return fmt.Errorf("config variable %q: %w", k, err)
		}
	}
	return nil
}

// Default renders the page template, optionally extending a base template.
type Default struct{}

func (Default) Name() string { return DefaultName }

func (Default) IsAccessible() bool { return true }

func (Default) Validate(_ context.Context, page *domain.Page, _ PageLookup) error {
	return checkConfig(page.PageProcessorConfig, defaultVariables)
}

func (Default) Render(_ context.Context, page *domain.Page, _ PageLookup) (string, error) {
	return templateSource(page), nil
}

func templateSource(page *domain.Page) string {
	var b strings.Builder
	if base, ok := page.PageProcessorConfig["base template"].(string); ok && base != "" {
		fmt.Fprintf(&b, "{%% extends %q %%}", base)
	}
	if libs, ok := page.PageProcessorConfig["tag libraries"].([]any); ok && len(libs) > 0 {
		names := make([]string, 0, len(libs))
		for _, l := range libs {
			names = append(names, fmt.Sprint(l))
		}
		fmt.Fprintf(&b, "{%% load %s %%}", strings.Join(names, " "))
	}
	b.WriteString(page.Template)
	return b.String()
}

// Redirect sends visitors to another page or URL.
type Redirect struct{}

func (Redirect) Name() string { return RedirectName }

func (Redirect) IsAccessible() bool { return true }

func (r Redirect) Validate(ctx context.Context, page *domain.Page, lookup PageLookup) error {
	if err := checkConfig(page.PageProcessorConfig, redirectVariables); err != nil {
		return err
	}
	_, err := r.Render(ctx, page, lookup)
	return err
}

// Render resolves the redirect target: "to alias", then "to url", then "/".
func (Redirect) Render(ctx context.Context, page *domain.Page, lookup PageLookup) (string, error) {
	cfg := page.PageProcessorConfig
	if alias, _ := cfg["to alias"].(string); alias != "" {
		target, err := lookup.GetByAlias(ctx, alias)
		if err != nil {
			return "", err
		}
		if target == nil {
			return "", fmt.Errorf("redirect target alias %q does not exist", alias)
		}
		return target.URL, nil
	}
	if url, _ := cfg["to url"].(string); url != "" {
		return url, nil
	}
	if name, _ := cfg["to name"].(string); name != "" {
		return "", fmt.Errorf("redirect to named route %q needs a URL resolver; use \"to url\" or \"to alias\"", name)
	}
	return "/", nil
}

// NotFound hides a page without deleting it.
type NotFound struct{}

func (NotFound) Name() string { return NotFoundName }

func (NotFound) IsAccessible() bool { return false }

func (NotFound) Validate(_ context.Context, page *domain.Page, _ PageLookup) error {
	return checkConfig(page.PageProcessorConfig, defaultVariables)
}

func (NotFound) Render(_ context.Context, page *domain.Page, _ PageLookup) (string, error) {
	return "", fmt.Errorf("%s: %w", page.URL, ErrNotAccessible)
}
