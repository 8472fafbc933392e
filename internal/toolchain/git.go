package toolchain

import "context"

// DefaultCommitMessage is used for the first commit of a new project.
const DefaultCommitMessage = "Initial commit"

// Git initializes a repository and records the scaffolded files.
type Git struct {
	Runner  Runner
	Bin     string // Defaults to "git".
	Message string // Defaults to DefaultCommitMessage.
}

// Init runs `git init`, `git add .`, and `git commit -m <message>` in dir,
// stopping at the first failure.
func (g *Git) Init(ctx context.Context, dir string) error {
	bin := g.Bin
	if bin == "" {
		bin = "git"
	}
	msg := g.Message
	if msg == "" {
		msg = DefaultCommitMessage
	}

	steps := [][]string{
		{"init", "--quiet"},
		{"add", "."},
		{"commit", "--quiet", "-m", msg},
	}
	for _, args := range steps {
		if err := run(ctx, g.Runner, "git", Command{Name: bin, Args: args, Dir: dir}); err != nil {
			return err
		}
	}
	return nil
}
