package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/depdash/internal/dashboard"
	"github.com/KaramelBytes/depdash/internal/utils"
)

var (
	repYears      []string
	repProvisions []string
	repMarkers    []string
	repFormat     string
	repPretty     bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the dashboard for one filter selection",
	Long: `Render the dashboard for one filter selection.

Without --year or --provision every observed year group and every provision
category is selected. Each --marker narrows the selection further; all
markers must hold.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDashboard(cmd)
		if err != nil {
			return err
		}
		state := d.DefaultState()
		if cmd.Flags().Changed("year") {
			state = state.WithYearGroups(repYears)
		}
		if cmd.Flags().Changed("provision") {
			state = state.WithProvisions(repProvisions)
		}
		for _, m := range repMarkers {
			state = state.WithMarker(strings.TrimSpace(m), true)
		}
		v, err := d.Render(state)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch strings.ToLower(repFormat) {
		case "json":
			b, err := utils.PrettyJSON(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(b))
			return err
		case "markdown", "md", "":
			if !repPretty {
				return dashboard.WriteMarkdown(out, v)
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				return fmt.Errorf("terminal renderer: %w", err)
			}
			rendered, err := r.Render(asMarkdownHeadings(v.Markdown()))
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		case "html":
			_, err := out.Write(toHTML(v.Markdown()))
			return err
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json|html)", repFormat)
		}
	},
}

var sectionLine = regexp.MustCompile(`(?m)^\[([A-Z][A-Z0-9 ]*)\]$`)

// asMarkdownHeadings turns "[SECTION]" lines into level-2 headings so the
// terminal renderer styles them.
func asMarkdownHeadings(md string) string {
	return sectionLine.ReplaceAllString(md, "## $1\n")
}

// toHTML renders the report as a standalone HTML fragment.
func toHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(asMarkdownHeadings(md)), p, r)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringArrayVar(&repYears, "year", nil, "year group to include (repeatable)")
	reportCmd.Flags().StringArrayVar(&repProvisions, "provision", nil, "provision category to include (repeatable)")
	reportCmd.Flags().StringArrayVar(&repMarkers, "marker", nil, "disadvantage marker that must hold (repeatable), see 'depdash options'")
	reportCmd.Flags().StringVar(&repFormat, "format", "markdown", "output format: markdown|json|html")
	reportCmd.Flags().BoolVar(&repPretty, "pretty", false, "style Markdown output for the terminal")
}
