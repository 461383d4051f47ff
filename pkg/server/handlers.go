package server

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/bleed/pkg/buildinfo"
	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/painting"
	"github.com/matzehuels/bleed/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	seed, err := strconv.ParseUint(chi.URLParam(r, "seed"), 10, 64)
	if err != nil || seed == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "seed must be a positive integer, got %q", chi.URLParam(r, "seed")))
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{Config: s.base, Seed: seed, Formats: []string{format}}
	if err := applyQuery(&opts, q); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Painting-Seed", strconv.FormatUint(seed, 10))
	w.Header().Set("X-Cache", cacheStatus(res))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.Header().Set("ETag", fmt.Sprintf("%q", etag(opts, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// createRequest carries the same overrides GET takes as query parameters,
// so the returned links reproduce the painting exactly.
type createRequest struct {
	Shapes int     `json:"shapes,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Layers int     `json:"layers,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func (c createRequest) query() url.Values {
	q := url.Values{}
	if c.Shapes != 0 {
		q.Set("shapes", strconv.Itoa(c.Shapes))
	}
	if c.Layers != 0 {
		q.Set("layers", strconv.Itoa(c.Layers))
	}
	for name, v := range map[string]float64{"scale": c.Scale, "width": c.Width, "height": c.Height} {
		if v != 0 {
			q.Set(name, strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return q
}

type createResponse struct {
	ID     uuid.UUID                `json:"id"`
	Seed   uint64                   `json:"seed"`
	Links  map[string]string        `json:"links"`
	Shapes []painting.ShapeInstance `json:"shapes"`
	Stats  pipeline.Stats           `json:"stats"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
	}

	id := uuid.New()
	seed := binary.BigEndian.Uint64(id[:8]) | 1
	q := req.query()

	opts := pipeline.Options{Config: s.base, Seed: seed, Formats: []string{pipeline.FormatJSON}}
	if err := applyQuery(&opts, q); err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	links := make(map[string]string, len(contentTypes))
	for format := range contentTypes {
		links[format] = paintingURL(seed, format, q)
	}
	s.logger.Debug("Created painting", "id", id, "seed", seed, "request_id", middleware.GetReqID(r.Context()))

	w.Header().Set("Location", links[pipeline.FormatSVG])
	writeJSON(w, http.StatusCreated, createResponse{
		ID:     id,
		Seed:   seed,
		Links:  links,
		Shapes: res.Shapes,
		Stats:  res.Stats,
	})
}

// applyQuery overlays request parameters on opts.
func applyQuery(opts *pipeline.Options, q url.Values) error {
	ints := map[string]*int{
		"shapes": &opts.Shapes,
		"layers": &opts.Config.Layers,
	}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
			}
			*dst = n
		}
	}
	floats := map[string]*float64{
		"scale":  &opts.Scale,
		"width":  &opts.Config.Width,
		"height": &opts.Config.Height,
	}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
			}
			*dst = f
		}
	}
	if opts.Config.Width > 4096 || opts.Config.Height > 4096 {
		return errors.New(errors.ErrCodeLimitExceeded, "canvas is limited to 4096x4096")
	}
	if opts.Config.Layers > 1000 {
		return errors.New(errors.ErrCodeLimitExceeded, "layers is limited to 1000")
	}
	return nil
}

func paintingURL(seed uint64, format string, overrides url.Values) string {
	q := url.Values{"format": {format}}
	for k, v := range overrides {
		if k == "scale" && format != pipeline.FormatPNG {
			continue
		}
		q[k] = v
	}
	return fmt.Sprintf("/paintings/%d?%s", seed, q.Encode())
}

func cacheStatus(res *pipeline.Result) string {
	if res.CacheInfo.Hit {
		return "HIT"
	}
	return "MISS"
}

func etag(opts pipeline.Options, format string) string {
	data, _ := json.Marshal(opts.ArtifactKeyOpts(format))
	sum := uuid.NewSHA1(uuid.NameSpaceURL, data)
	return sum.String()
}

type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, errors.HTTPStatus(err), errorBody{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
