// Package grading parses the hand-written grading document.
//
// The document is plain text. A line starting with "### " opens the record of
// the student named on that line; every following line up to the next header
// belongs to that record, the header line included:
//
//	### student-github-name
//	- comments
//	- more comments
//
//	### another-student
//
// Nothing else about the markdown is validated.
package grading
