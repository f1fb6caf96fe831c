package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mcsi/pkg/errors"
	"github.com/spf13/afero"
)

// CopyTree copies the contents of src into dst, adding new files and
// overwriting existing ones by relative path. Files in dst that have no
// counterpart in src are left alone.
func CopyTree(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "reading source directory %s", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrIO, "source %s is not a directory", src)
	}

	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "walking %s", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "relativizing %s", path)
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := fs.MkdirAll(target, dirMode(info)); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "creating directory %s", target)
			}
			return nil
		}

		return CopyFile(fs, path, target)
	})
}

// CopyFile copies a single file, creating the parent directories of dst
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "opening %s", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "reading %s", src)
	}

	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating directory %s", filepath.Dir(dst))
	}

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrIO, "copying %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "closing %s", dst)
	}

	// OpenFile keeps the mode of a file that already existed
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "setting mode on %s", dst)
	}
	return nil
}

// ListFiles returns every regular file below root as a slash-separated
// path relative to root, in walk order. Directories named skipDir are not
// descended into.
func ListFiles(fs afero.Fs, root, skipDir string) ([]string, error) {
	files := []string{}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "walking %s", path)
		}
		if info.IsDir() {
			if skipDir != "" && path != root && info.Name() == skipDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "relativizing %s", path)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// MoveFile moves src to dst, creating the parents of dst. A failed rename
// (for instance across devices) falls back to copy and remove.
func MoveFile(fs afero.Fs, src, dst string) error {
	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "creating directory %s", filepath.Dir(dst))
	}

	if err := fs.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(fs, src, dst); err != nil {
		return err
	}
	if err := fs.Remove(src); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "removing %s", src)
	}
	return nil
}

// RemoveIfEmpty removes dir when it has no entries and reports whether it
// did. A missing dir, or a path that is not a directory, is left alone.
func RemoveIfEmpty(fs afero.Fs, dir string) (bool, error) {
	isDir, err := afero.DirExists(fs, dir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIO, "checking %s", dir)
	}
	if !isDir {
		return false, nil
	}
	empty, err := afero.IsEmpty(fs, dir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIO, "reading %s", dir)
	}
	if !empty {
		return false, nil
	}
	if err := fs.Remove(dir); err != nil {
		return false, errors.Wrapf(err, errors.ErrIO, "removing %s", dir)
	}
	return true, nil
}

// ContentRoot finds the directory an archive really wraps its content in.
// Directories are bucketed by depth below root (root itself is depth 0)
// across the whole tree; the result is the only member of the deepest
// bucket holding exactly one directory. Server packs are often zipped as
// "Pack-1.2/server/<content>", and this unwraps both levels.
func ContentRoot(fs afero.Fs, root string) (string, error) {
	counts := map[int]int{}
	members := map[int]string{}

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "walking %s", path)
		}
		if !info.IsDir() {
			return nil
		}

		depth := Depth(root, path)
		counts[depth]++
		members[depth] = path
		return nil
	})
	if err != nil {
		return "", err
	}

	best := -1
	for depth, n := range counts {
		if n == 1 && depth > best {
			best = depth
		}
	}
	if best < 0 {
		return "", errors.Newf(errors.ErrIO, "%s is not a directory", root)
	}
	return members[best], nil
}

// Depth returns how many path segments path lies below root
func Depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(filepath.ToSlash(rel), "/"))
}

func dirMode(info os.FileInfo) os.FileMode {
	// Keep the directory traversable for the owner whatever the archive said
	return info.Mode().Perm() | 0700
}
