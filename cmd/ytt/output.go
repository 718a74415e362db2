package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	successColor = color.New(color.FgGreen)
	mutedColor   = color.New(color.FgHiBlack)
	warnColor    = color.New(color.FgYellow)
	titleColor   = color.New(color.Bold)
)

const maxTitleWidth = 60

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// formatDuration renders seconds as m:ss or h:mm:ss.
func formatDuration(seconds int64) string {
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatOffset renders a caption offset in milliseconds as [m:ss].
func formatOffset(ms int64) string {
	return "[" + formatDuration(ms/1000) + "]"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// maskKey keeps only the last four characters of a secret.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

// writeExport writes content to output, to the suggested name when output is empty,
// or to the command's stdout when output is "-".
func writeExport(a *app, content []byte, name, output string) error {
	if output == "-" {
		_, err := a.out.Write(content)
		return err
	}
	if output == "" {
		output = name
	}
	if err := os.WriteFile(output, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	_, _ = successColor.Fprintf(a.out, "Exported to %s\n", output)
	return nil
}
