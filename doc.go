// Package asppack packages an Asp source tree for the host platform.
//
// A run locates the repository, checks that it looks like an Asp
// checkout, recreates the build directory, records whether the tree is
// clean and then drives CMake/CPack through the platform's fixed
// sequence of steps. Packages built from a dirty tree are flagged and are
// never published.
package asppack
