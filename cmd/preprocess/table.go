package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/neurlang/ttsprep/corpus"
)

func renderSummary(s corpus.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Utterances", humanize.Comma(int64(s.Utterances))},
		{"Frames", humanize.Comma(int64(s.Frames))},
		{"Hours", fmt.Sprintf("%.2f", s.Hours)},
		{"Max input length", humanize.Comma(int64(s.MaxInputLength))},
		{"Max output length", humanize.Comma(int64(s.MaxOutputLength))},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
