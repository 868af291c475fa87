// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"io"
)

// Writer returns an io.WriteCloser that emits each written line as a log
// message at severity s. Used to forward subprocess output into the log.
func (l *Logger) Writer(s Severity) io.WriteCloser {
	return &lineWriter{logger: l, severity: s}
}

type lineWriter struct {
	logger   *Logger
	severity Severity
	buf      bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		data := w.buf.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		w.logger.Log(w.severity, string(data[:i]))
		w.buf.Next(i + 1)
	}
	return len(p), nil
}

func (w *lineWriter) Close() error {
	if w.buf.Len() > 0 {
		w.logger.Log(w.severity, w.buf.String())
		w.buf.Reset()
	}
	return nil
}
