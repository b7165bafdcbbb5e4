package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/chordviz/pkg/buildinfo"
	"github.com/matzehuels/chordviz/pkg/errors"
	"github.com/matzehuels/chordviz/pkg/matrix"
	"github.com/matzehuels/chordviz/pkg/pipeline"
)

// contentTypes maps output formats to their media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// WarningHeader carries pipeline warnings on artifact responses.
const WarningHeader = "X-Chordviz-Warning"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: info.Version,
		Commit:  info.Commit,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	m, opts, err := s.decode(w, r)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	result, resolved, err := s.runner.Layout(r.Context(), m, opts)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	resp := LayoutResponse{
		MatrixHash: result.MatrixHash,
		Layout:     result.Layout,
		Warnings:   result.Warnings,
		Stats:      statsResponse(result.Stats),
		Cached:     result.CacheInfo.LayoutHit,
	}
	if len(resolved.Colors) > 0 {
		resp.Options = &ResolvedColors{Colors: resolved.Colors}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.respondErr(w, err)
		return
	}

	m, opts, err := s.decode(w, r)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), m, opts)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Chordviz-Matrix-Hash", result.MatrixHash)
	w.Header().Set("X-Chordviz-Cache", cacheStatus(result.CacheInfo.RenderHit))
	for _, msg := range result.Warnings {
		w.Header().Add(WarningHeader, msg)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

// decode reads the request body into a matrix and options. Options in the
// body override the defaults.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*matrix.Matrix, pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}

	if len(req.Options) > 0 {
		od := json.NewDecoder(bytes.NewReader(req.Options))
		od.DisallowUnknownFields()
		if err := od.Decode(&opts); err != nil {
			return nil, opts, errors.Wrap(errors.ErrCodeInvalidOption, err, "decode options")
		}
	}
	opts.Logger = s.logger

	var m *matrix.Matrix
	var err error
	switch {
	case req.Matrix != nil && req.Observations != nil:
		return nil, opts, errors.New(errors.ErrCodeInvalidInput, "send either matrix or observations, not both")
	case req.Observations != nil:
		m, err = matrix.FromObservations(req.Names, req.Observations)
	case req.Matrix != nil:
		m, err = matrix.New(req.Names, req.Matrix)
	default:
		return nil, opts, errors.New(errors.ErrCodeEmptyMatrix, "request has no matrix")
	}
	if err != nil {
		return nil, opts, err
	}
	return m, opts, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: code, Message: message, Code: status})
}

// respondErr maps a pipeline error onto a status and error code.
func (s *Server) respondErr(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.respondError(w, status, code, message(err))
}

// message is the user message of err plus its cause, if any.
func message(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return errors.UserMessage(err)
}
