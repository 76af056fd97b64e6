// Package reconcile pairs repositories in a project directory with grading
// outcomes and pushes the resulting artifacts.
//
// Two modes exist. Interactive mode (PushOutcomes, PushComments) asks a
// DecisionProvider for a verdict or a comment per repository. Grade sheet
// mode (PushGradeSheet) matches repository names against the student names
// of a parsed grading document by suffix. Both return a Report describing
// every classification and sync result; sync failures never abort a batch.
package reconcile
