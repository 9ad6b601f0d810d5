package app

import (
	"fmt"

	"github.com/pterm/pterm"
)

func helpText() string {
	description := fmt.Sprintf(
		"%s\n\t\t{{.Usage}}\n\n",
		pterm.Yellow("DESCRIPTION"),
	)

	usage := fmt.Sprintf(
		"%s\n\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}\n\n",
		pterm.Yellow("USAGE"),
	)

	author := fmt.Sprintf(
		"{{if len .Authors}}%s\n\t\t{{range .Authors}}{{ . }}{{end}}{{end}}\n\n",
		pterm.Yellow("AUTHOR"),
	)

	version := fmt.Sprintf(
		"{{if .Version}}%s\n\t\t{{.Version}}{{end}}\n\n",
		pterm.Yellow("VERSION"),
	)

	commands := fmt.Sprintf(
		"%s\n{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}\n\n",
		pterm.Yellow("COMMANDS"),
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"%s\n{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		pterm.Yellow("OPTIONS"),
		pterm.Green("-{{$element}}"),
		pterm.Green("--{{.Name}} {{.DefaultText}}"),
	)

	input := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("INPUT"),
		inputHelp(),
	)

	env := fmt.Sprintf(
		"%s\n\t\t%s\n\n",
		pterm.Yellow("ENVIRONMENTAL VARIABLES"),
		envHelp(),
	)

	website := fmt.Sprintf(
		"%s\n\t\thttps://github.com/ayoisaiah/eyestrain\n",
		pterm.Yellow("WEBSITE"),
	)

	return description + usage + author + version + commands + options + input + env + website
}

func inputHelp() string {
	return `
csv: one sample per line as "t,ratio" or "ratio". An empty ratio means no face was found.

jsonl: one object per line with "t" and one of "ratio", "left"/"right" (six eye points each), "landmarks" (face mesh) or "face": false.

cbor: a stream of the same objects encoded as CBOR.`
}

func envHelp() string {
	return `
EYESTRAIN_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

EYESTRAIN_ENV: keeps a separate config file, log file and report directory per environment (e.g. "dev").

EYESTRAIN_SUMMARY, EYESTRAIN_BUCKETS: set for --report-cmd to the paths of the report files just written.`
}
