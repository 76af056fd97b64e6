// Package report renders reconciliation outcomes for the operator.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"git.home.luguber.info/inful/gitgud/internal/git"
)

// NoData is printed in place of rows for an empty collection.
const NoData = "No data"

const keyPadding = 4

func banner(b *strings.Builder, title string, count int) {
	line := strings.Repeat("-", len(title)+5)
	fmt.Fprintf(b, "%s\n%s: %d\n%s\n", line, title, count, line)
}

// FormatMapping renders data as a two column listing sorted by key.
func FormatMapping(title string, headers [2]string, data map[string]string) string {
	var b strings.Builder
	banner(&b, title, len(data))
	if len(data) == 0 {
		b.WriteString(NoData + "\n")
		return b.String()
	}

	keys := make([]string, 0, len(data))
	width := 0
	for k := range data {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)
	width += keyPadding

	if headers[0] != "" || headers[1] != "" {
		fmt.Fprintf(&b, "%-*s %s\n\n", width, headers[0], headers[1])
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "%-*s %s\n", width, k, data[k])
	}
	return b.String()
}

// FormatList renders a sorted copy of items, one "<label>: <item>" per line.
func FormatList(title, label string, items []string) string {
	var b strings.Builder
	banner(&b, title, len(items))
	if len(items) == 0 {
		b.WriteString(NoData + "\n")
		return b.String()
	}
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	for _, it := range sorted {
		fmt.Fprintf(&b, "%s: %s\n", label, it)
	}
	return b.String()
}

// FormatSyncResults renders one row per repository with the status of each
// git step, followed by the number of repositories that failed.
func FormatSyncResults(results []git.SyncResult) string {
	var b strings.Builder
	banner(&b, "Sync results", len(results))
	if len(results) == 0 {
		b.WriteString(NoData + "\n")
		return b.String()
	}
	if err := writeSyncTable(&b, results); err != nil {
		// Fall back to plain lines; the table only fails on writer errors.
		for _, r := range results {
			fmt.Fprintf(&b, "%s: %s %s %s\n", r.Repo, r.Stage.Status, r.Commit.Status, r.Push.Status)
		}
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	fmt.Fprintf(&b, "Failed: %d\n", failed)
	return b.String()
}

func writeSyncTable(w io.Writer, results []git.SyncResult) error {
	table := tablewriter.NewTable(w)
	table.Header("Repository", "Stage", "Commit", "Push")
	for _, r := range results {
		if err := table.Append(r.Repo, cell(r.Stage), cell(r.Commit), cell(r.Push)); err != nil {
			return err
		}
	}
	return table.Render()
}

func cell(s git.StepResult) string {
	if s.Status == git.StatusFailed && s.ExitCode > 0 {
		return fmt.Sprintf("%s (%d)", s.Status, s.ExitCode)
	}
	return string(s.Status)
}
