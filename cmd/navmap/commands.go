package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"golang.org/x/term"

	"legal_dashboard/internal/content"
	"legal_dashboard/internal/nav"
)

func newRootCmd(reg *nav.Registry) *cobra.Command {
	root := &cobra.Command{
		Use:   "navmap",
		Short: "Inspect the dashboard navigation",
		Long: `Inspect the dashboard's static navigation: the top-level entries, the
report groups and the page header each path resolves to.

Examples:
  navmap list
  navmap resolve /judges
  navmap resolve /reports/caseReports/court-deadlines --json
  navmap export --out nav.xlsx`,
		SilenceUsage: true,
	}

	root.AddCommand(newListCmd(reg), newResolveCmd(), newExportCmd(reg))
	return root
}

func newListCmd(reg *nav.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every navigable path with its header title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTable(cmd.OutOrStdout(), []string{"KIND", "LABEL", "PATH", "HEADER"}, inventory(reg))
		},
	}
}

func newResolveCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print the page header a path resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := nav.Resolve(args[0])
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			_, matched := nav.LookupRoute(args[0])
			fmt.Fprintf(out, "path:        %s\n", args[0])
			fmt.Fprintf(out, "matched:     %t\n", matched)
			fmt.Fprintf(out, "title:       %s\n", info.Title)
			fmt.Fprintf(out, "description: %s\n", info.Description)
			fmt.Fprintf(out, "icon:        %s\n", info.Icon)
			fmt.Fprintf(out, "accent:      %s\n", info.AccentColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the header as JSON")
	return cmd
}

func newExportCmd(reg *nav.Registry) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the navigation inventory to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := exportWorkbook(reg, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "nav.xlsx", "workbook path")
	return cmd
}

// inventory lists entries then report sub-items, in registry order.
func inventory(reg *nav.Registry) [][]string {
	var rows [][]string
	for _, e := range reg.Entries() {
		rows = append(rows, []string{"entry", e.Label, e.Path, nav.Resolve(e.Path).Title})
	}
	for _, g := range reg.Groups() {
		for _, it := range g.Items {
			rows = append(rows, []string{"report", g.Label + " / " + it.Label, it.Path, nav.Resolve(it.Path).Title})
		}
	}
	return rows
}

// writeTable aligns columns for a terminal and writes TSV for pipes and files.
func writeTable(w io.Writer, headers []string, rows [][]string) error {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return nil
	}

	width := 0
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
		width = cols
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if width > 0 && width < 100 {
		fmt.Fprintf(w, "(%d paths; widen the terminal or pipe the output for TSV)\n", len(rows))
	}
	return nil
}

func exportWorkbook(reg *nav.Registry, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	var entries [][]string
	for _, e := range reg.Entries() {
		h := nav.Resolve(e.Path)
		entries = append(entries, []string{e.Label, string(e.Icon), e.Path, h.Title, string(h.AccentColor)})
	}
	if err := content.WriteSheet(f, "Navigation", []string{"Label", "Icon", "Path", "Header", "Accent"}, entries); err != nil {
		return err
	}

	var reports [][]string
	for _, g := range reg.Groups() {
		for _, it := range g.Items {
			reports = append(reports, []string{g.ID, g.Label, it.Label, it.Slug, it.Path})
		}
	}
	if err := content.WriteSheet(f, "Reports", []string{"Group ID", "Group", "Report", "Slug", "Path"}, reports); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
