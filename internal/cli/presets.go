package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/okrdash/pkg/report"
)

// presetsCommand creates the presets command. Without flags it lists the
// embedded presets; --pick chooses one interactively and renders it with
// the configured defaults.
func (c *CLI) presetsCommand() *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the embedded report presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := report.ListPresets()
			if err != nil {
				return err
			}
			if len(presets) == 0 {
				printInfo("No presets embedded")
				return nil
			}
			if !pick {
				fmt.Println(presetTable(presets))
				printNextStep("Render one", appName+" render "+presets[0].Name)
				return nil
			}

			p := tea.NewProgram(NewPresetPickerModel(presets), tea.WithContext(cmd.Context()))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}
			fm, ok := finalModel.(PresetPickerModel)
			if !ok || fm.Selected == nil {
				printDetail("No preset selected")
				return nil
			}
			printNewline()
			printInfo("Rendering %s", StyleValue.Render(fm.Selected.Name))

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			rep, err := report.Preset(fm.Selected.Name)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, []*report.Report{rep})
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "choose a preset interactively and render it")
	cmd.Flags().StringP("output", "o", "", "output directory for --pick (default \".\")")
	cmd.Flags().StringSliceP("format", "f", nil, "output format(s) for --pick: html (default), svg, png, pdf, json")
	cmd.Flags().Bool("open", false, "open the rendered document")

	return cmd
}
