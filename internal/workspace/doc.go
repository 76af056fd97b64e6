// Package workspace manages the project directory: the local folder that
// holds one clone per student repository.
//
// The manager lists entries (sorted by name, symlinks followed so a linked
// repository counts as a directory), ensures the directory exists before a
// clone, and writes grading artifacts into repository roots.
package workspace
