// Copyright (c) 2026 John Dewey

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

package helper

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/termrun/internal/exec/mocks"
	"github.com/retr0h/termrun/internal/launch"
)

type SummaryTestSuite struct {
	suite.Suite
}

func TestSummaryTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryTestSuite))
}

func (s *SummaryTestSuite) TestSummaryLine() {
	original := nowFn
	defer func() { nowFn = original }()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	nowFn = func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(1500 * time.Millisecond)
	}

	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	m := mocks.NewMockManager(ctrl)
	m.EXPECT().Run(gomock.Any(), "node", []string{"a.js"}, gomock.Any()).Return(255, nil)

	var stdout bytes.Buffer
	h := New(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		afero.NewMemMapFs(),
		m,
		launch.Windows,
		strings.NewReader(""),
		&stdout,
		io.Discard,
	)

	code, err := h.Run(context.Background(), Options{}, []string{"node", "a.js"})

	s.NoError(err)
	s.Equal(255, code)
	s.Equal("\nProcess returned 255 (0xff)\texecution time : 1.500 s\n", stdout.String())
}
