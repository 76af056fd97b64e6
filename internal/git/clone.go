package git

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/gitgud/internal/logfields"
)

// Cloner clones repositories into a project directory.
type Cloner struct {
	token      string
	embedToken bool
	logger     *slog.Logger
}

// NewCloner returns a Cloner authenticating with token. An empty token clones anonymously.
func NewCloner(token string) *Cloner {
	return &Cloner{token: token, logger: slog.Default()}
}

// WithEmbeddedToken rewrites origin of each clone to carry the token, so a
// later plain "git push" authenticates without a credential helper.
func (c *Cloner) WithEmbeddedToken(embed bool) *Cloner {
	c.embedToken = embed
	return c
}

// WithLogger sets the logger.
func (c *Cloner) WithLogger(l *slog.Logger) *Cloner {
	if l != nil {
		c.logger = l
	}
	return c
}

// Clone clones cloneURL into dir/name and returns the repository path.
func (c *Cloner) Clone(ctx context.Context, cloneURL, dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	c.logger.Debug("Cloning repository", logfields.URL(cloneURL), logfields.Repository(name), logfields.Path(path))

	opts := &gogit.CloneOptions{URL: cloneURL, Auth: c.auth()}
	repo, err := gogit.PlainCloneContext(ctx, path, false, opts)
	if err != nil {
		return "", classifyCloneError(logfields.RedactURL(cloneURL), path, err)
	}

	if c.embedToken && c.token != "" {
		if err := embedToken(repo, cloneURL, c.token); err != nil {
			return path, err
		}
	}

	if ref, err := repo.Head(); err == nil {
		c.logger.Info("Repository cloned", logfields.Repository(name), logfields.Path(path),
			slog.String("commit", ref.Hash().String()[:8]))
	} else {
		c.logger.Info("Repository cloned", logfields.Repository(name), logfields.Path(path))
	}
	return path, nil
}

func (c *Cloner) auth() transport.AuthMethod {
	if c.token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "token", Password: c.token}
}

func embedToken(repo *gogit.Repository, cloneURL, token string) error {
	withToken, err := CloneURL(cloneURL, token)
	if err != nil {
		return err
	}
	if err := repo.DeleteRemote("origin"); err != nil {
		return fmt.Errorf("replace origin: %w", err)
	}
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{withToken}})
	if err != nil {
		return fmt.Errorf("replace origin: %w", err)
	}
	return nil
}

// CloneURL inserts token as userinfo before the host of an https clone URL,
// e.g. https://<token>@github.com/o/r.git.
func CloneURL(cloneURL, token string) (string, error) {
	u, err := url.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("parse clone url: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("unsupported clone url scheme %q", u.Scheme)
	}
	if token != "" {
		u.User = url.User(token)
	}
	return u.String(), nil
}
