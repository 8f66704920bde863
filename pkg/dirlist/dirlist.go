// Package dirlist reads the immediate children of a single directory.
package dirlist

import (
	"io/fs"
	"sort"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"

	"github.com/denysvitali/dirscope-runtime/pkg/fserr"
)

// Entry is one immediate child of a listed directory
type Entry struct {
	Name  string `json:"name" yaml:"name"`
	IsDir bool   `json:"is_dir" yaml:"is_dir"`
}

// Listing is a directory's entries ordered by name
type Listing []Entry

// Names returns the entry names in listing order
func (l Listing) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}

// dirEntryReader is implemented by *os.File. It reports entry types from the
// directory itself, without a stat per entry.
type dirEntryReader interface {
	ReadDir(n int) ([]fs.DirEntry, error)
}

// Lister lists directories on a filesystem. It never writes.
type Lister struct {
	fs afero.Fs
}

// New creates a lister over fsys
func New(fsys afero.Fs) *Lister {
	return &Lister{fs: afero.NewReadOnlyFs(fsys)}
}

// NewOSLister creates a lister over the host filesystem
func NewOSLister() *Lister {
	return New(afero.NewOsFs())
}

// List returns the immediate children of path sorted by name. Failing to read
// any single entry fails the whole call.
func (l *Lister) List(path string) (Listing, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fserr.New(fserr.DirectoryOpenFailed, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fserr.New(fserr.DirectoryOpenFailed, path, err)
	}
	if !info.IsDir() {
		return nil, fserr.New(fserr.DirectoryOpenFailed, path,
			&fs.PathError{Op: "open", Path: path, Err: syscall.ENOTDIR})
	}

	var entries Listing
	if dr, ok := f.(dirEntryReader); ok {
		entries, err = readEntries(dr)
	} else {
		entries, err = readInfos(f)
	}
	if err != nil {
		return nil, fserr.New(fserr.EntryReadFailed, path, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func readEntries(dr dirEntryReader) (Listing, error) {
	dirEntries, err := dr.ReadDir(-1)
	if err != nil {
		return nil, err
	}
	entries := make(Listing, 0, len(dirEntries))
	for _, d := range dirEntries {
		entries = append(entries, Entry{
			Name:  decodeName(d.Name()),
			IsDir: d.IsDir(),
		})
	}
	return entries, nil
}

func readInfos(f afero.File) (Listing, error) {
	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}
	entries := make(Listing, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, Entry{
			Name:  decodeName(fi.Name()),
			IsDir: fi.IsDir(),
		})
	}
	return entries, nil
}

// decodeName replaces bytes that are not valid UTF-8 with U+FFFD
func decodeName(name string) string {
	if utf8.ValidString(name) {
		return name
	}
	decoded, err := unicode.UTF8.NewDecoder().String(name)
	if err != nil {
		return string([]rune(name))
	}
	return decoded
}

// List lists path on the host filesystem
func List(path string) (Listing, error) {
	return NewOSLister().List(path)
}
