package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zjrosen/regexlens/internal/config"
	"github.com/zjrosen/regexlens/internal/ui/styles"
)

var themeSet string

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List theme presets and color tokens",
	Long: `List the built-in theme presets and the color tokens that can be
overridden under theme.colors in the config file.

Use --set to store a preset in the config file.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	themesCmd.Flags().StringVar(&themeSet, "set", "", "save the named preset to the config file")
	rootCmd.AddCommand(themesCmd)
}

// swatchTokens are the colors shown next to each preset name.
var swatchTokens = []styles.ColorToken{
	styles.TokenPatternLiteral,
	styles.TokenPatternClassPerl,
	styles.TokenPatternRepetition,
	styles.TokenPatternGroup,
	styles.TokenPatternAlternation,
	styles.TokenErrorMarker,
}

func runThemes(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	if themeSet != "" {
		if _, ok := styles.Presets[themeSet]; !ok {
			return fmt.Errorf("unknown theme preset %q (available: %s)",
				themeSet, strings.Join(styles.PresetNames(), ", "))
		}
		path := configPath()
		if path == "" {
			return fmt.Errorf("cannot determine config path, pass --config")
		}
		if err := config.SaveThemePreset(path, themeSet); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Theme set to %s in %s\n", themeSet, path)
		return nil
	}

	current := cfg.Theme.Preset
	if current == "" {
		current = "default"
	}

	_, _ = fmt.Fprintln(w, "Presets:")
	for _, name := range styles.PresetNames() {
		p := styles.Presets[name]
		marker := "  "
		if name == current {
			marker = "* "
		}
		_, _ = fmt.Fprintf(w, "%s%-18s %s  %s\n", marker, name, swatches(p), p.Description)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Color tokens:")
	for _, token := range styles.AllTokens() {
		_, _ = fmt.Fprintf(w, "  %s\n", token)
	}
	return nil
}

func swatches(p styles.Preset) string {
	var sb strings.Builder
	for _, token := range swatchTokens {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.Colors[token])).Render("■"))
	}
	return sb.String()
}
