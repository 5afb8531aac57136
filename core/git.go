package core

import (
	"context"
	"errors"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	pkgerrors "github.com/pkg/errors"
)

var ErrNotRepository = errors.New("not inside a git repository")

const (
	BackendGoGit = "gogit"
	BackendGit   = "git"
)

// VersionControl is the subset of a version-control client the packager
// depends on.
type VersionControl interface {
	// TopLevel returns the root of the working tree containing dir.
	TopLevel(ctx context.Context, dir string) (string, error)
	// Status returns a porcelain report; an empty report means a clean tree.
	Status(ctx context.Context, root string) (string, error)
	// Describe returns the tag pointing at HEAD, or "" when there is none.
	Describe(ctx context.Context, root string) (string, error)
}

func NewVersionControl(backend string) (VersionControl, error) {
	switch backend {
	case "", BackendGit:
		return GitCommand{Executable: "git"}, nil
	case BackendGoGit:
		return GoGit{}, nil
	}
	return nil, pkgerrors.Errorf("can not recognize vcs backend %q", backend)
}

// GoGit answers repository queries in-process with go-git. Its status does
// not honour every git setting (global excludes, autocrlf), so the git
// client stays the default.
type GoGit struct{}

func (GoGit) open(dir string) (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil, pkgerrors.WithMessage(ErrNotRepository, dir)
		}
		return nil, nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, err
	}
	return repo, wt, nil
}

func (g GoGit) TopLevel(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, wt, err := g.open(dir)
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

func (g GoGit) Status(ctx context.Context, root string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, wt, err := g.open(root)
	if err != nil {
		return "", err
	}
	status, err := wt.Status()
	if err != nil {
		return "", pkgerrors.Wrap(err, "read worktree status")
	}
	if status.IsClean() {
		return "", nil
	}
	return status.String(), nil
}

func (g GoGit) Describe(ctx context.Context, root string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, _, err := g.open(root)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// no commits yet
			return "", nil
		}
		return "", err
	}
	tags, err := repo.Tags()
	if err != nil {
		return "", err
	}
	names := make([]string, 0)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if obj, err := repo.TagObject(target); err == nil {
			commit, err := obj.Commit()
			if err != nil {
				return nil
			}
			target = commit.Hash
		}
		if target == head.Hash() {
			names = append(names, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[len(names)-1], nil
}
