// Package scaffold generates and writes the files of a new C/C++ project.
//
// Generate is a pure function from a resolved project configuration to file
// contents: main source, .gitignore and CMakeLists.txt, plus an optional
// .clang-format and project manifest. Scaffolder lays those files out on disk, creates the
// source/include/build/exec directories, and optionally initializes version
// control.
package scaffold
