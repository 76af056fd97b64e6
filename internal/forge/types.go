package forge

import "context"

// Repository is a hosted repository visible to the authenticated user.
type Repository struct {
	Name     string
	FullName string
	Owner    string
	CloneURL string
	Private  bool
	Archived bool
}

// Collaborator is a user with access to a repository.
type Collaborator struct {
	Login string
}

// Permission levels accepted by AddCollaborator.
const (
	PermissionPull = "pull"
	PermissionPush = "push"
)

// Client is the subset of the hosted API gitgud uses.
type Client interface {
	ListUserRepositories(ctx context.Context) ([]Repository, error)
	ListCollaborators(ctx context.Context, owner, repo string) ([]Collaborator, error)
	RemoveCollaborator(ctx context.Context, owner, repo, login string) error
	// AddCollaborator invites login with permission; an empty permission uses the API default.
	AddCollaborator(ctx context.Context, owner, repo, login, permission string) error
}
