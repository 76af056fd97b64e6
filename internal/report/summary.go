package report

import (
	"io"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/reconcile"
)

// Titles used in reconciliation summaries.
const (
	TitleMatched          = "Grading comment pushed to students below"
	TitleUnmatchedStudent = "No repository was found for students below"
	TitleUnmatchedRepo    = "No student was found in the grading file for repositories below"
	TitleNotDirectory     = "Entries that are not directories"
	TitleProcessed        = "Pushed to repositories below"
	TitleSkipped          = "Skipped repositories"
)

// Summary renders every section relevant to rep.
func Summary(rep *reconcile.Report) string {
	var parts []string
	if rep.Mode == reconcile.ModeGradeSheet {
		parts = append(parts,
			FormatMapping(TitleMatched, [2]string{"Student", "Repository"}, rep.Matched),
			FormatList(TitleUnmatchedRepo, "Repository", rep.UnmatchedRepos),
			FormatList(TitleUnmatchedStudent, "Student", rep.UnmatchedStudents),
		)
	} else {
		parts = append(parts,
			FormatList(TitleProcessed, "Repository", rep.Processed),
			FormatList(TitleSkipped, "Repository", rep.Skipped),
		)
	}
	parts = append(parts,
		FormatList(TitleNotDirectory, "Entry", rep.NotDirectories),
		FormatSyncResults(rep.Results),
	)
	return strings.Join(parts, "\n")
}

// WriteSummary writes Summary(rep) to w.
func WriteSummary(w io.Writer, rep *reconcile.Report) error {
	_, err := io.WriteString(w, Summary(rep))
	return err
}
