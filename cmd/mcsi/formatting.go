package mcsi

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/arthur-debert/mcsi/pkg/types"
	"github.com/arthur-debert/mcsi/pkg/ui/styles"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": formatBoldUpper,
	})
}

// printInstallResult renders the summary shown after a successful install
func printInstallResult(w io.Writer, res *types.InstallResult) {
	fmt.Fprintln(w, styles.Render("Success", fmt.Sprintf(MsgInstalledFormat, res.Release)))

	rows := [][2]string{
		{"Source", res.Source},
		{"Minecraft", res.MinecraftVersion},
		{"Loader", res.Loader},
		{"Target", styles.Render("FilePath", res.TargetDir)},
		{"Files", strconv.Itoa(res.Files)},
	}
	if res.ModsInstalled > 0 {
		rows = append(rows, [2]string{"Mods", strconv.Itoa(res.ModsInstalled)})
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		line := styles.Render("Label", row[0]) + styles.Render("Value", row[1])
		fmt.Fprintln(w, styles.Render("Indent", line))
	}

	switch {
	case res.FirstInstall:
		fmt.Fprintln(w, styles.Render("Muted", MsgFirstInstall))
	case res.BackedUp > 0:
		fmt.Fprintln(w, styles.Render("Muted", fmt.Sprintf(MsgBackedUpFormat, res.BackedUp, res.BackupDir)))
	}
	if res.Missing > 0 {
		fmt.Fprintln(w, styles.Render("Warning", fmt.Sprintf(MsgMissingFormat, res.Missing)))
	}
}
