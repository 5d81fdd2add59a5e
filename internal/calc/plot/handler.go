package plot

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"scartix/internal/calc/scaffold"
)

type Handler struct{}

func porosityParam(r *http.Request) (int, error) {
	p, err := strconv.Atoi(r.URL.Query().Get("porosity"))
	if err != nil {
		return 0, scaffold.ErrInvalidPorosity
	}
	return p, nil
}

// NoiseSource returns a seeded generator when seed is non-empty, otherwise a random one.
func NoiseSource(seed string) (*rand.Rand, error) {
	if seed == "" {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil
	}
	s, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewPCG(s, s)), nil
}

func (h *Handler) StressStrain(w http.ResponseWriter, r *http.Request) {
	porosity, err := porosityParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	src, err := NoiseSource(r.URL.Query().Get("seed"))
	if err != nil {
		http.Error(w, "Invalid seed", http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := StressStrainPNG(&buf, nil, porosity, src); err != nil {
		writeError(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func (h *Handler) FlowRate(w http.ResponseWriter, r *http.Request) {
	porosity, err := porosityParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := FlowRatePNG(&buf, nil, porosity); err != nil {
		writeError(w, err)
		return
	}
	writePNG(w, buf.Bytes())
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, scaffold.ErrInvalidPorosity) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error().Err(err).Msg("chart rendering failed")
	http.Error(w, "Chart rendering error", http.StatusInternalServerError)
}

func writePNG(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(b)
}
