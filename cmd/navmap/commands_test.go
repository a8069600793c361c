package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"legal_dashboard/internal/nav"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(nav.DefaultRegistry())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListWritesTSVWhenNotATerminal(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "KIND\tLABEL\tPATH\tHEADER", lines[0])

	reg := nav.DefaultRegistry()
	reports := 0
	for _, g := range reg.Groups() {
		reports += len(g.Items)
	}
	assert.Len(t, lines, 1+len(reg.Entries())+reports)

	assert.Contains(t, out, "entry\tJudge's Dashboard\t/judges\tJudge's Dashboard\n")
	assert.Contains(t, out, "report\tCase Reports / Court Deadlines\t/reports/caseReports/court-deadlines\tDashboard\n")
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "/judges")
	require.NoError(t, err)
	assert.Contains(t, out, "matched:     true\n")
	assert.Contains(t, out, "title:       Judge's Dashboard\n")
	assert.Contains(t, out, "accent:      amber\n")

	out, err = run(t, "resolve", "/nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "matched:     false\n")
	assert.Contains(t, out, "title:       Dashboard\n")
}

func TestResolveJSON(t *testing.T) {
	out, err := run(t, "resolve", "/calendar", "--json")
	require.NoError(t, err)

	var info nav.HeaderInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, nav.Resolve("/calendar"), info)
}

func TestResolveRequiresPath(t *testing.T) {
	_, err := run(t, "resolve")
	assert.Error(t, err)
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.xlsx")

	out, err := run(t, "export", "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Navigation", "Reports"}, f.GetSheetList())

	reg := nav.DefaultRegistry()
	rows, err := f.GetRows("Navigation")
	require.NoError(t, err)
	require.Len(t, rows, 1+len(reg.Entries()))
	assert.Equal(t, []string{"Label", "Icon", "Path", "Header", "Accent"}, rows[0])
	assert.Equal(t, []string{"Firm Overview", "layout-dashboard", "/", "Firm Overview", string(nav.Resolve("/").AccentColor)}, rows[1])

	rows, err = f.GetRows("Reports")
	require.NoError(t, err)
	assert.Equal(t, []string{"Group ID", "Group", "Report", "Slug", "Path"}, rows[0])
	assert.Equal(t, nav.GroupAccountingReports, rows[1][0])
}
