package grading

import (
	"slices"

	"git.home.luguber.info/inful/gitgud/internal/logfields"
)

// Record is one student's block of the grading document.
type Record struct {
	StudentName string
	Content     string
}

// Sheet maps student names to their records. Keys are unique.
type Sheet map[string]Record

// Names returns the student names in ascending order.
func (s Sheet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the record of student or ErrRecordNotFound.
func (s Sheet) Get(student string) (Record, error) {
	rec, ok := s[student]
	if !ok {
		return Record{}, ErrRecordNotFound.WithContext(logfields.KeyStudent, student)
	}
	return rec, nil
}
