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

package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// envKeyRe matches portable environment variable names.
var envKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SplitEnvPair splits a "KEY:VALUE" entry at the first colon. The value
// may be empty and may itself contain colons.
func SplitEnvPair(
	pair string,
) (string, string, bool) {
	key, value, ok := strings.Cut(pair, ":")
	if !ok || !envKeyRe.MatchString(key) {
		return "", "", false
	}

	return key, value, true
}

// validEnvPair backs the env_pair tag.
func validEnvPair(
	fl validator.FieldLevel,
) bool {
	_, _, ok := SplitEnvPair(fl.Field().String())

	return ok
}
