// Package platform isolates the few operating-system differences cpp-tools
// cares about: executable file names and whether a file is runnable. On
// Windows built programs carry an .exe suffix and have no execute bit.
package platform
