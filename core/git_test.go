package core

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signature() *object.Signature {
	return &object.Signature{
		Name:  "tester",
		Email: "tester@example.com",
		When:  time.Now(),
	}
}

// setupRepo creates a repository with one committed file and returns its
// root.
func setupRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "engine"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "engine", "engine.c"), []byte("int x;\n"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("engine/engine.c")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{Author: signature(), Committer: signature()})
	require.NoError(t, err)
	return root, repo
}

func TestGoGitTopLevel(t *testing.T) {
	root, _ := setupRepo(t)
	ctx := context.Background()

	got, err := GoGit{}.TopLevel(ctx, filepath.Join(root, "engine"))
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = GoGit{}.TopLevel(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestGoGitTopLevelOutsideRepository(t *testing.T) {
	_, err := GoGit{}.TopLevel(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestGoGitStatus(t *testing.T) {
	root, _ := setupRepo(t)
	ctx := context.Background()

	report, err := GoGit{}.Status(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, report)

	// an empty directory is invisible to status
	require.NoError(t, os.Mkdir(filepath.Join(root, "build-package"), 0755))
	report, err = GoGit{}.Status(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, report)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("wip"), 0644))
	report, err = GoGit{}.Status(ctx, root)
	require.NoError(t, err)
	assert.Contains(t, report, "notes.txt")

	require.NoError(t, os.Remove(filepath.Join(root, "notes.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "engine", "engine.c"), []byte("int y;\n"), 0644))
	report, err = GoGit{}.Status(ctx, root)
	require.NoError(t, err)
	assert.Contains(t, report, "engine/engine.c")
}

func TestGoGitDescribe(t *testing.T) {
	root, repo := setupRepo(t)
	ctx := context.Background()

	tag, err := GoGit{}.Describe(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, tag)

	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("v1.4.0", head.Hash(), &git.CreateTagOptions{
		Tagger:  signature(),
		Message: "v1.4.0",
	})
	require.NoError(t, err)

	tag, err = GoGit{}.Describe(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", tag)
}

func TestNewVersionControl(t *testing.T) {
	vcs, err := NewVersionControl("")
	require.NoError(t, err)
	assert.IsType(t, GitCommand{}, vcs)

	vcs, err = NewVersionControl(BackendGit)
	require.NoError(t, err)
	assert.IsType(t, GitCommand{}, vcs)

	vcs, err = NewVersionControl(BackendGoGit)
	require.NoError(t, err)
	assert.IsType(t, GoGit{}, vcs)

	_, err = NewVersionControl("svn")
	require.Error(t, err)
}

func TestGitCommand(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	root, _ := setupRepo(t)
	ctx := context.Background()
	g := GitCommand{}

	got, err := g.TopLevel(ctx, filepath.Join(root, "engine"))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)

	report, err := g.Status(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, report)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("wip"), 0644))
	report, err = g.Status(ctx, root)
	require.NoError(t, err)
	assert.Contains(t, report, "?? notes.txt")

	tag, err := g.Describe(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, tag)

	_, err = g.TopLevel(ctx, t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
}

// isolatedGit points git at a private HOME and returns a helper running git
// in dir.
func isolatedGit(t *testing.T) (home string, run func(dir string, args ...string) string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	run = func(dir string, args ...string) string {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		var stderr strings.Builder
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		require.NoError(t, err, "git %v: %s", args, stderr.String())
		return string(out)
	}
	return home, run
}

func commitFile(t *testing.T, run func(dir string, args ...string) string, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
	run(root, "add", name)
	run(root, "-c", "user.name=tester", "-c", "user.email=tester@example.com", "commit", "-q", "-m", "add "+name)
}

func defaultStatus(t *testing.T, root string) string {
	t.Helper()
	vcs, err := NewVersionControl("")
	require.NoError(t, err)
	report, err := vcs.Status(context.Background(), root)
	require.NoError(t, err)
	return report
}

func TestDefaultStatusHonoursGlobalExcludes(t *testing.T) {
	home, run := isolatedGit(t)
	excludes := filepath.Join(home, "ignore")
	require.NoError(t, os.WriteFile(excludes, []byte("*.swp\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"),
		[]byte("[core]\n\texcludesfile = "+filepath.ToSlash(excludes)+"\n"), 0644))

	root := t.TempDir()
	run(root, "init", "-q")
	commitFile(t, run, root, "a.c", "int a;\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".a.c.swp"), []byte("swap"), 0644))

	want := run(root, "status", "--porcelain")
	assert.Empty(t, want)
	assert.Equal(t, want, defaultStatus(t, root))
}

func TestDefaultStatusHonoursAutocrlf(t *testing.T) {
	_, run := isolatedGit(t)
	root := t.TempDir()
	run(root, "init", "-q")
	run(root, "config", "core.autocrlf", "true")
	commitFile(t, run, root, "a.c", "x\ny\n")

	require.NoError(t, os.Remove(filepath.Join(root, "a.c")))
	run(root, "checkout", "--", "a.c")
	b, err := os.ReadFile(filepath.Join(root, "a.c"))
	require.NoError(t, err)
	require.Equal(t, "x\r\ny\r\n", string(b))

	want := run(root, "status", "--porcelain")
	assert.Empty(t, want)
	assert.Equal(t, want, defaultStatus(t, root))
}
