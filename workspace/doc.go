// Package workspace checks the shape of an Asp checkout and manages its
// ephemeral build directory.
//
// Every operation works on a billy.Filesystem rooted at the repository
// root, so paths are always root-relative and the process working directory
// is never changed. Production code passes osfs.New(root); tests use memfs.
//
// Replacing an existing build directory is destructive and therefore gated
// by a ConfirmFunc. A build directory path that is occupied by anything other
// than a directory is never touched.
package workspace
