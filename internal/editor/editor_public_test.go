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

package editor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/termrun/internal/editor"
)

type EditorPublicTestSuite struct {
	suite.Suite

	ctx   context.Context
	appFs afero.Fs
}

func TestEditorPublicTestSuite(t *testing.T) {
	suite.Run(t, new(EditorPublicTestSuite))
}

func (s *EditorPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.appFs = afero.NewMemMapFs()
	_ = afero.WriteFile(s.appFs, "/tmp/hello.py", []byte("print('hi')\n"), 0o644)
}

func (s *EditorPublicTestSuite) TestActiveDocument() {
	tests := []struct {
		name       string
		path       string
		contents   []byte
		wantActive bool
		wantPath   string
		wantSaved  bool
	}{
		{
			name:       "when no path is given",
			wantActive: false,
		},
		{
			name:       "when file exists",
			path:       "/tmp/hello.py",
			wantActive: true,
			wantPath:   "/tmp/hello.py",
			wantSaved:  true,
		},
		{
			name:       "when file is missing",
			path:       "/tmp/missing.py",
			wantActive: true,
			wantSaved:  false,
		},
		{
			name:       "when file is missing but contents are provided",
			path:       "/tmp/new.py",
			contents:   []byte("print(1)\n"),
			wantActive: true,
			wantPath:   "/tmp/new.py",
			wantSaved:  true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ws := editor.NewFileWorkspace(s.appFs, tt.path, tt.contents)

			doc, ok := ws.ActiveDocument()
			s.Equal(tt.wantActive, ok)
			if !ok {
				return
			}

			path, saved := doc.Path()
			s.Equal(tt.wantSaved, saved)
			s.Equal(tt.wantPath, path)
		})
	}
}

func (s *EditorPublicTestSuite) TestSave() {
	tests := []struct {
		name        string
		path        string
		contents    []byte
		expectError bool
		validate    func()
	}{
		{
			name: "when file exists and nothing is pending",
			path: "/tmp/hello.py",
		},
		{
			name:     "when contents are pending they are written",
			path:     "/tmp/new.py",
			contents: []byte("print(1)\n"),
			validate: func() {
				data, err := afero.ReadFile(s.appFs, "/tmp/new.py")
				s.Require().NoError(err)
				s.Equal("print(1)\n", string(data))
			},
		},
		{
			name:        "when file is missing",
			path:        "/tmp/missing.py",
			expectError: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			doc, ok := editor.NewFileWorkspace(s.appFs, tt.path, tt.contents).ActiveDocument()
			s.Require().True(ok)

			err := doc.Save().Await(s.ctx)

			if tt.expectError {
				s.Error(err)
				return
			}

			s.NoError(err)
			if tt.validate != nil {
				tt.validate()
			}
		})
	}
}

func (s *EditorPublicTestSuite) TestSaveOnReadOnlyFs() {
	ro := afero.NewReadOnlyFs(s.appFs)
	doc, _ := editor.NewFileWorkspace(ro, "/tmp/other.py", []byte("x")).ActiveDocument()

	err := doc.Save().Await(s.ctx)

	s.Error(err)
	s.Contains(err.Error(), "saving /tmp/other.py")
}

func (s *EditorPublicTestSuite) TestCompletion() {
	tests := []struct {
		name    string
		setup   func() *editor.Completion
		timeout time.Duration
		wantErr error
	}{
		{
			name:  "when already resolved",
			setup: func() *editor.Completion { return editor.Done(nil) },
		},
		{
			name: "when already resolved with error",
			setup: func() *editor.Completion {
				return editor.Done(errors.New("boom"))
			},
			wantErr: errors.New("boom"),
		},
		{
			name: "when resolved later",
			setup: func() *editor.Completion {
				c, resolve := editor.Pending()
				go func() {
					time.Sleep(5 * time.Millisecond)
					resolve(nil)
					resolve(errors.New("ignored"))
				}()
				return c
			},
		},
		{
			name: "when never resolved the context wins",
			setup: func() *editor.Completion {
				c, _ := editor.Pending()
				return c
			},
			timeout: 10 * time.Millisecond,
			wantErr: context.DeadlineExceeded,
		},
		{
			name:  "when nil",
			setup: func() *editor.Completion { return nil },
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			ctx := s.ctx
			if tt.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.timeout)
				defer cancel()
			}

			err := tt.setup().Await(ctx)

			if tt.wantErr != nil {
				s.EqualError(err, tt.wantErr.Error())
				return
			}
			s.NoError(err)
		})
	}
}
