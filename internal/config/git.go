package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultDeploymentBranch is the branch GitHub Pages serves project sites from.
const DefaultDeploymentBranch = "gh-pages"

// Deployment is the GitHub Pages metadata derived from a checkout.
type Deployment struct {
	OrganizationName string
	ProjectName      string
	DeploymentBranch string
	// URL is set for user and organization sites (<org>.github.io repositories).
	URL string
}

// ErrNotGitHub is returned by InferDeployment when origin is not hosted on github.com.
var ErrNotGitHub = errors.New("origin remote is not a GitHub repository")

// InferDeployment opens the git repository containing dir and derives deployment
// metadata from its "origin" remote.
func InferDeployment(dir string) (Deployment, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Deployment{}, fmt.Errorf("open git repository at %s: %w", dir, err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return Deployment{}, fmt.Errorf("read origin remote: %w", err)
	}
	for _, u := range remote.Config().URLs {
		owner, name, ok := parseGitHubRemote(u)
		if !ok {
			continue
		}
		d := Deployment{OrganizationName: owner, ProjectName: name, DeploymentBranch: DefaultDeploymentBranch}
		if strings.EqualFold(name, owner+".github.io") {
			// User sites are served from the default branch root.
			d.URL = "https://" + strings.ToLower(owner) + ".github.io"
			d.DeploymentBranch = ""
			if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
				d.DeploymentBranch = head.Name().Short()
			}
		}
		return d, nil
	}
	return Deployment{}, ErrNotGitHub
}

// parseGitHubRemote extracts owner and repository from the remote URL forms git accepts:
//   - https://github.com/owner/repo.git
//   - ssh://git@github.com/owner/repo
//   - git@github.com:owner/repo.git
func parseGitHubRemote(remote string) (owner, name string, ok bool) {
	remote = strings.TrimSpace(remote)
	var host, path string
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return "", "", false
		}
		host, path = u.Hostname(), u.Path
	} else {
		at := strings.Index(remote, "@")
		hostPart, rest, found := strings.Cut(remote[at+1:], ":")
		if !found {
			return "", "", false
		}
		host, path = hostPart, rest
	}
	if !strings.EqualFold(host, "github.com") {
		return "", "", false
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, name, found := strings.Cut(path, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}

// Apply returns a copy of s carrying the deployment metadata. Empty fields of d
// leave s unchanged.
func (d Deployment) Apply(s *Site) *Site {
	out := s.Clone()
	if d.OrganizationName != "" {
		out.OrganizationName = d.OrganizationName
	}
	if d.ProjectName != "" {
		out.ProjectName = d.ProjectName
	}
	if d.DeploymentBranch != "" {
		out.DeploymentBranch = d.DeploymentBranch
	}
	if d.URL != "" {
		out.URL = d.URL
	}
	return out
}
