// Copyright (c) 2024 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package editor

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileWorkspace is a Workspace whose only document is a file named on
// the command line.
type FileWorkspace struct {
	appFs    afero.Fs
	path     string
	contents []byte
}

// NewFileWorkspace returns a workspace focused on path. An empty path
// means no document is focused. When contents is non-nil, saving writes
// it to path; otherwise the file on disk is taken as already saved.
func NewFileWorkspace(
	appFs afero.Fs,
	path string,
	contents []byte,
) *FileWorkspace {
	return &FileWorkspace{
		appFs:    appFs,
		path:     path,
		contents: contents,
	}
}

// ActiveDocument returns the focused file.
func (w *FileWorkspace) ActiveDocument() (Document, bool) {
	if w.path == "" {
		return nil, false
	}

	return &fileDocument{
		appFs:    w.appFs,
		path:     w.path,
		contents: w.contents,
	}, true
}

type fileDocument struct {
	appFs    afero.Fs
	path     string
	contents []byte
}

// Path returns the absolute path when the file exists on disk or
// contents are available to create it.
func (d *fileDocument) Path() (string, bool) {
	abs, err := filepath.Abs(d.path)
	if err != nil {
		return "", false
	}

	if d.contents != nil {
		return abs, true
	}

	if exists, _ := afero.Exists(d.appFs, abs); !exists {
		return "", false
	}

	return abs, true
}

// Save writes pending contents in the background, or confirms the file
// exists when there is nothing to write.
func (d *fileDocument) Save() *Completion {
	abs, ok := d.Path()
	if !ok {
		return Done(fmt.Errorf("%s is not on disk", d.path))
	}

	if d.contents == nil {
		return Done(nil)
	}

	c, resolve := Pending()
	go func() {
		if err := afero.WriteFile(d.appFs, abs, d.contents, 0o644); err != nil {
			resolve(fmt.Errorf("saving %s: %w", abs, err))
			return
		}
		resolve(nil)
	}()

	return c
}
