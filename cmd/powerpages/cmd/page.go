package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"powerpages/internal/adapters/editor"
	"powerpages/internal/adapters/tui/styles"
	"powerpages/internal/application/commands"
	"powerpages/internal/domain"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Inspect and edit single pages in the database",
	Long: `Inspect and edit pages the way the admin does. Pages changed here are
marked as modified in the admin, so a later load will not overwrite them
without --force.`,
}

var pageListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List pages under a URL prefix",
	Long: `List page URLs under a prefix. Pages modified in the admin are marked with *.

Examples:
  powerpages page list
  powerpages page list /docs/`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		pages, err := commands.NewListPagesCommand(store, prefix).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range pages {
			marker := " "
			if p.LocallyEdited {
				marker = styles.WarningMsg.Render("*")
			}
			fmt.Fprintf(out, "%s %s\t%s\n", marker, p.URL, p.Title)
		}
		return nil
	},
}

var pageShowCmd = &cobra.Command{
	Use:   "show <url>",
	Short: "Print a page in page file format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowPageCommand(store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), result.Content)
		return nil
	},
}

var pageRenderCmd = &cobra.Command{
	Use:   "render <url>",
	Short: "Show what the page's processor produces",
	Long: `Run a page through its page processor and print the template source it
would hand to the template engine, or the redirect target.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenderPageCommand(store, registry, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !result.Accessible {
			fmt.Fprintf(out, "%s is not accessible (%s)\n", result.Page.URL, result.Processor)
			return nil
		}
		fmt.Fprint(out, result.Output)
		if !strings.HasSuffix(result.Output, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	},
}

var setFlags struct {
	title        string
	description  string
	keywords     string
	alias        string
	processor    string
	config       string
	templateFile string
}

var pageSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Create a page or change some of its fields",
	Long: `Create a page or change the given fields of an existing one. Fields
whose flag is not given keep their value. --processor-config takes YAML (or JSON)
and replaces the whole page processor config; pass "" to clear it.

Examples:
  powerpages page set /about/ --title "About us" --template-file about.html
  powerpages page set /old/ --processor powerpages.RedirectProcessor --processor-config '{to alias: home}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var draft commands.PageDraft
		flags := cmd.Flags()

		stringFlag := func(name string, value string, target **string) {
			if flags.Changed(name) {
				v := value
				*target = &v
			}
		}
		stringFlag("title", setFlags.title, &draft.Title)
		stringFlag("description", setFlags.description, &draft.Description)
		stringFlag("keywords", setFlags.keywords, &draft.Keywords)
		stringFlag("alias", setFlags.alias, &draft.Alias)
		stringFlag("processor", setFlags.processor, &draft.PageProcessor)

		if flags.Changed("template-file") {
			data, err := os.ReadFile(setFlags.templateFile)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			template := string(data)
			draft.Template = &template
		}

		if flags.Changed("processor-config") {
			cfgMap, err := parseProcessorConfig(setFlags.config)
			if err != nil {
				return err
			}
			draft.Config = cfgMap
			draft.ConfigSet = true
		}

		result, err := commands.NewEditPageCommand(store, registry, args[0], draft).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(result.Message))
		return nil
	},
}

var pageEditCmd = &cobra.Command{
	Use:   "edit <url>",
	Short: "Edit a page in $EDITOR",
	Long: `Open the page in page file format in $EDITOR and save the result when
the editor exits. A URL without a page starts from an empty page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		url := args[0]

		page, err := store.GetByURL(ctx, url)
		if err != nil {
			return err
		}
		if page == nil {
			page = domain.NewPage(url)
		}
		content, err := domain.MarshalPageFile(page.Fields())
		if err != nil {
			return err
		}

		name := domain.URLToPath(url, false)
		edited, err := editor.NewOpener().Edit(ctx, name, content)
		if err != nil {
			return err
		}
		if edited == content {
			fmt.Fprintln(cmd.OutOrStdout(), styles.MutedText.Render("No changes"))
			return nil
		}

		fields, err := domain.UnmarshalPageFile(edited)
		if err != nil {
			return err
		}
		result, err := commands.NewEditPageCommand(store, registry, url, commands.DraftFromFields(fields)).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(result.Message))
		return nil
	},
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Delete one page record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeletePageCommand(store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// parseProcessorConfig reads a YAML mapping. JSON objects are valid YAML.
func parseProcessorConfig(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var cfgMap map[string]any
	if err := yaml.Unmarshal([]byte(raw), &cfgMap); err != nil {
		return nil, fmt.Errorf("--processor-config must be a YAML or JSON mapping: %w", err)
	}
	return cfgMap, nil
}

func init() {
	f := pageSetCmd.Flags()
	f.StringVar(&setFlags.title, "title", "", "page title")
	f.StringVar(&setFlags.description, "description", "", "meta description")
	f.StringVar(&setFlags.keywords, "keywords", "", "meta keywords")
	f.StringVar(&setFlags.alias, "alias", "", "unique alias; empty clears it")
	f.StringVar(&setFlags.processor, "processor", "", "page processor identifier")
	f.StringVar(&setFlags.config, "processor-config", "", "page processor config as YAML")
	f.StringVar(&setFlags.templateFile, "template-file", "", "read the template from this file")

	pageCmd.AddCommand(pageListCmd, pageShowCmd, pageRenderCmd, pageSetCmd, pageEditCmd, pageDeleteCmd)
	rootCmd.AddCommand(pageCmd)
}
