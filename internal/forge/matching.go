package forge

import (
	"sort"

	"git.home.luguber.info/inful/gitgud/internal/matcher"
)

// FilterMatching returns the repositories whose name contains project and,
// when organization is non-empty, whose owner is organization. The result is
// sorted by name.
func FilterMatching(repos []Repository, project, organization string) []Repository {
	var out []Repository
	for _, r := range repos {
		if matcher.IsMatching(r.Name, r.Owner, project, organization) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
