// Package toolchain wraps the external programs cpp-tools drives: CMake,
// clang-format, git, and the project's own executable. Every wrapper goes
// through the Runner interface so commands can be exercised without the real
// tools installed.
package toolchain
