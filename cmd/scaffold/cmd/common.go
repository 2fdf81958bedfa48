package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/veraison/scaffold/pkg/generate"
)

func CheckErr(msg interface{}) {
	if msg != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", Red("ERROR"), msg)
		os.Exit(1)
	}
}

func Red(msg string) string {
	return colorize(msg, color.FgRed)
}

func Amber(msg string) string {
	return colorize(msg, color.FgYellow)
}

func Green(msg string) string {
	return colorize(msg, color.FgGreen)
}

func colorize(msg string, fg color.Attribute) string {
	if cliConfig != nil && cliConfig.NoColor {
		return msg
	}

	return color.New(fg, color.Bold).Sprint(msg)
}

// parseDefines turns KEY=VALUE strings into generator options.
func parseDefines(defines []string) ([]generate.ConfigOption, error) {
	ret := make([]generate.ConfigOption, 0, len(defines))

	for _, define := range defines {
		key, value, ok := strings.Cut(define, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("invalid define %q (expected KEY=VALUE)", define)
		}

		ret = append(ret, generate.OptionDefine(key, value))
	}

	return ret, nil
}
