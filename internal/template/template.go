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

// Package template expands user command templates against the file
// being run.
//
// Templates are split on whitespace with no quoting rules, so a single
// token can never contain a space. Placeholders take the form
// {identifier}; identifiers other than file, dir, name and ext are left
// untouched in the output.
package template

import (
	"path/filepath"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Context holds the values substituted into a template.
type Context struct {
	// File is the absolute path of the file.
	File string
	// Dir is the directory containing File.
	Dir string
	// Name is the base name of File without its extension.
	Name string
	// Ext is the extension of File including the leading dot.
	Ext string
}

// NewContext derives a Context from a file path.
func NewContext(
	path string,
) Context {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	return Context{
		File: path,
		Dir:  filepath.Dir(path),
		Name: strings.TrimSuffix(base, ext),
		Ext:  ext,
	}
}

func (c Context) lookup(
	key string,
) (string, bool) {
	switch key {
	case "file":
		return c.File, true
	case "dir":
		return c.Dir, true
	case "name":
		return c.Name, true
	case "ext":
		return c.Ext, true
	default:
		return "", false
	}
}

// Split breaks a template into whitespace-separated tokens.
func Split(
	tmpl string,
) []string {
	return strings.Fields(tmpl)
}

// Format substitutes placeholders in every token. The input slice is
// not modified.
func Format(
	tokens []string,
	ctx Context,
) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = placeholder.ReplaceAllStringFunc(tok, func(m string) string {
			if v, ok := ctx.lookup(m[1 : len(m)-1]); ok {
				return v
			}
			return m
		})
	}

	return out
}

// Expand splits and formats tmpl in one step.
func Expand(
	tmpl string,
	ctx Context,
) []string {
	return Format(Split(tmpl), ctx)
}
