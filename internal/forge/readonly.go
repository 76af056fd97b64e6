package forge

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/gitgud/internal/logfields"
	"git.home.luguber.info/inful/gitgud/internal/util/sets"
)

// AccessResult classifies what happened to one collaborator.
type AccessResult string

const (
	AccessOwner         AccessResult = "owner"
	AccessReadOnly      AccessResult = "read_only"
	AccessStillWritable AccessResult = "still_writable"
	AccessFailed        AccessResult = "failed"
)

// AccessChange is the outcome of downgrading one collaborator.
type AccessChange struct {
	Repo         string
	Collaborator string
	Result       AccessResult
	Err          error
}

// SetReadOnly downgrades every non-owner collaborator of repo to pull access.
// Collaborators are removed and re-invited with pull permission; when the
// pull invite is rejected (personal repositories only support push) they
// are re-invited with the default permission and reported as still writable.
func SetReadOnly(ctx context.Context, c Client, repo Repository, owners sets.Set[string]) ([]AccessChange, error) {
	collabs, err := c.ListCollaborators(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, err
	}

	changes := make([]AccessChange, 0, len(collabs))
	for _, collab := range collabs {
		change := AccessChange{Repo: repo.Name, Collaborator: collab.Login}
		log := slog.With(logfields.Repository(repo.Name), logfields.Collaborator(collab.Login))

		switch {
		case owners.Has(collab.Login):
			change.Result = AccessOwner
		default:
			change.Result, change.Err = downgrade(ctx, c, repo, collab.Login)
		}
		if change.Err != nil {
			log.Warn("Failed to change permissions", logfields.Error(change.Err))
		} else {
			log.Debug("Collaborator permissions", slog.String("result", string(change.Result)))
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func downgrade(ctx context.Context, c Client, repo Repository, login string) (AccessResult, error) {
	if err := c.RemoveCollaborator(ctx, repo.Owner, repo.Name, login); err != nil {
		return AccessFailed, err
	}
	pullErr := c.AddCollaborator(ctx, repo.Owner, repo.Name, login, PermissionPull)
	if pullErr == nil {
		return AccessReadOnly, nil
	}
	slog.Debug("Pull permission rejected", logfields.Repository(repo.Name), logfields.Collaborator(login), logfields.Error(pullErr))
	if err := c.AddCollaborator(ctx, repo.Owner, repo.Name, login, ""); err != nil {
		return AccessFailed, err
	}
	return AccessStillWritable, nil
}
