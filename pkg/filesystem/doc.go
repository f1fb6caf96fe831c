// Package filesystem holds the tree operations the install pipeline is built
// from: copying a staged tree over a target, listing owned files, moving a
// file aside and locating the real content root of an extracted archive.
//
// All functions take an afero.Fs. Production code passes afero.NewOsFs();
// tests use afero.NewMemMapFs() unless they also need real processes or
// archive extraction.
package filesystem
