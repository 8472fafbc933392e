package toolchain

import "context"

// CMake drives the configure and build steps of a CMake project.
type CMake struct {
	Runner Runner
	Bin    string // Defaults to "cmake".
}

func (c *CMake) bin() string {
	if c.Bin == "" {
		return "cmake"
	}
	return c.Bin
}

// Configure runs `cmake -S <sourceDir> -B <buildDir>`.
func (c *CMake) Configure(ctx context.Context, sourceDir, buildDir string) error {
	return run(ctx, c.Runner, "cmake", Command{
		Name: c.bin(),
		Args: []string{"-S", sourceDir, "-B", buildDir},
	})
}

// Build runs `cmake --build <buildDir>`.
func (c *CMake) Build(ctx context.Context, buildDir string) error {
	return run(ctx, c.Runner, "cmake", Command{
		Name: c.bin(),
		Args: []string{"--build", buildDir},
	})
}
