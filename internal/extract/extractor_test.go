package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubSource struct {
	data  []byte
	err   error
	calls int
}

func (s *stubSource) Open(context.Context, string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func TestExtract_EmptyRef(t *testing.T) {
	src := &stubSource{}
	e := NewExtractor(src, zap.NewNop())
	if got := e.Extract(context.Background(), "  "); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if src.calls != 0 {
		t.Fatalf("expected no read for empty ref")
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	src := &stubSource{data: []byte("hello")}
	e := NewExtractor(src, zap.NewNop())
	for _, ref := range []string{"cv.docx", "cv.txt", "cv"} {
		if got := e.Extract(context.Background(), ref); got != "" {
			t.Fatalf("%s: expected empty text, got %q", ref, got)
		}
	}
	if src.calls != 0 {
		t.Fatalf("expected unsupported refs not to be read")
	}
}

func TestExtract_ReadFailure(t *testing.T) {
	e := NewExtractor(&stubSource{err: errors.New("not found")}, zap.NewNop())
	if got := e.Extract(context.Background(), "resumes/cv.pdf"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtract_MalformedPDF(t *testing.T) {
	e := NewExtractor(&stubSource{data: []byte("definitely not a pdf")}, zap.NewNop())
	if got := e.Extract(context.Background(), "s3://bucket/CV.PDF"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestExtract_NilSource(t *testing.T) {
	e := NewExtractor(nil, nil)
	if got := e.Extract(context.Background(), "cv.pdf"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestIsSupported(t *testing.T) {
	cases := map[string]bool{
		"a.pdf":            true,
		"A.PDF":            true,
		"s3://b/dir/x.pdf": true,
		"a.pdf.txt":        false,
		"":                 false,
	}
	for ref, want := range cases {
		if got := IsSupported(ref); got != want {
			t.Fatalf("IsSupported(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestPDFText_Empty(t *testing.T) {
	if _, err := PDFText(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestExtract_TruncatesLoggedFields(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ref := "resumes/" + strings.Repeat("a", 300) + ".pdf"
	e := NewExtractor(&stubSource{err: errors.New(strings.Repeat("e", 500))}, zap.New(core))

	if got := e.Extract(context.Background(), ref); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if got := fields["ref"].(string); len(got) != maxLoggedRef+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated ref, got %d chars", len(got))
	}
	if got := fields["error"].(string); len(got) != maxLoggedError+3 {
		t.Fatalf("expected truncated error, got %d chars", len(got))
	}
}
