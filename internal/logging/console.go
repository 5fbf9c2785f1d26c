package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human-oriented line per record. Component and
// operation attrs are promoted into the prefix:
//
//	2026-10-19T12:00:00Z WARN store [import]: stored catalog unreadable bytes=12
type consoleHandler struct {
	sink      *lockedWriter
	level     slog.Leveler
	addSource bool

	component string
	operation string
	fields    string // rendered " k=v" pairs from WithAttrs
	prefix    string // dotted group path for keys
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return &consoleHandler{sink: &lockedWriter{w: w}, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	component, operation := h.component, h.operation
	var fields strings.Builder
	fields.WriteString(h.fields)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&fields, h.prefix, a, &component, &operation)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var line strings.Builder
	line.WriteString(ts.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	line.WriteString(r.Level.String())
	line.WriteByte(' ')
	switch {
	case component != "" && operation != "":
		fmt.Fprintf(&line, "%s [%s]: ", component, operation)
	case component != "":
		line.WriteString(component + ": ")
	case operation != "":
		line.WriteString("[" + operation + "]: ")
	}
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "(no message)"
	}
	line.WriteString(msg)
	if h.addSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fmt.Fprintf(&line, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	line.WriteString(fields.String())
	line.WriteByte('\n')

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	_, err := io.WriteString(h.sink.w, line.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	var fields strings.Builder
	fields.WriteString(h.fields)
	for _, a := range attrs {
		writeAttr(&fields, h.prefix, a, &next.component, &next.operation)
	}
	next.fields = fields.String()
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// writeAttr appends " key=value" for a, flattening groups into dotted keys.
// Top-level component and operation attrs are captured instead of written;
// the first component wins and the latest operation wins.
func writeAttr(b *strings.Builder, prefix string, a slog.Attr, component, operation *string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, child := range a.Value.Group() {
			writeAttr(b, prefix, child, component, operation)
		}
		return
	}
	if a.Key == "" {
		return
	}
	if prefix == "" {
		switch a.Key {
		case FieldComponent:
			if *component == "" {
				*component = a.Value.String()
			}
			return
		case FieldOperation:
			*operation = a.Value.String()
			return
		}
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
