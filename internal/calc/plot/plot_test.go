package plot

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"scartix/internal/calc/scaffold"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestStressStrainPNG(t *testing.T) {
	t.Parallel()

	src, _ := NoiseSource("42")
	var buf bytes.Buffer
	if err := StressStrainPNG(&buf, nil, 60, src); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestFlowRatePNG(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := FlowRatePNG(&buf, nil, 30); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatal("output is not a PNG")
	}
	if err := FlowRatePNG(&buf, nil, 20); !errors.Is(err, scaffold.ErrInvalidPorosity) {
		t.Fatalf("expected ErrInvalidPorosity, got %v", err)
	}
}

func TestNoiseSourceSeeded(t *testing.T) {
	t.Parallel()

	a, _ := NoiseSource("7")
	b, _ := NoiseSource("7")
	for i := 0; i < 10; i++ {
		if a.NormFloat64() != b.NormFloat64() {
			t.Fatal("same seed diverged")
		}
	}
	if _, err := NoiseSource("abc"); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	h := &Handler{}
	cases := []struct {
		fn   http.HandlerFunc
		url  string
		want int
	}{
		{h.StressStrain, "/x?porosity=50&seed=1", http.StatusOK},
		{h.StressStrain, "/x?porosity=50&seed=x", http.StatusBadRequest},
		{h.StressStrain, "/x?porosity=abc", http.StatusBadRequest},
		{h.FlowRate, "/x?porosity=70", http.StatusOK},
		{h.FlowRate, "/x?porosity=100", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.fn(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.url, rec.Code, tc.want)
		}
		if tc.want == http.StatusOK && rec.Header().Get("Content-Type") != "image/png" {
			t.Fatalf("%s: content type %q", tc.url, rec.Header().Get("Content-Type"))
		}
	}
}
