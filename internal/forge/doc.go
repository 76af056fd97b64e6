// Package forge talks to the hosted repository API (GitHub REST v3).
//
// It lists the repositories visible to the authenticated user, filters them
// by project and organization, and manages collaborator permissions for the
// set-readonly command.
package forge
