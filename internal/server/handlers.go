package server

import (
	"net/http"
	"time"

	"github.com/matzehuels/flowlayout/pkg/boxes"
	"github.com/matzehuels/flowlayout/pkg/buildinfo"
	"github.com/matzehuels/flowlayout/pkg/engine"
	"github.com/matzehuels/flowlayout/pkg/flow"
	"github.com/matzehuels/flowlayout/pkg/observability"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Document boxes.Document   `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// LayoutResponse is returned by POST /v1/layout. Artifacts other than JSON
// are base64 encoded by encoding/json.
type LayoutResponse struct {
	DocumentHash string            `json:"document_hash"`
	Boxes        []flow.Box        `json:"boxes"`
	Layout       engine.Result     `json:"layout"`
	Artifacts    map[string][]byte `json:"artifacts,omitempty"`
	Cache        struct {
		Reflow bool `json:"reflow"`
		Layout bool `json:"layout"`
	} `json:"cache"`
}

// ReflowRequest is the body of the compress and align endpoints.
type ReflowRequest struct {
	Boxes  []flow.Box `json:"boxes"`
	Budget int        `json:"budget"`
}

// TruncateRequest is the body of POST /v1/truncate.
type TruncateRequest struct {
	Boxes      []flow.Box `json:"boxes"`
	Lines      int        `json:"lines"`
	LineCounts []int      `json:"line_counts"`
}

// BoxesResponse is returned by the reflow and truncate endpoints.
type BoxesResponse struct {
	Boxes []flow.Box `json:"boxes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.counters.Snapshot())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.Options.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), req.Document, req.Options)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var out LayoutResponse
	out.DocumentHash = res.DocumentHash
	out.Boxes = res.Boxes
	out.Layout = res.Layout
	out.Artifacts = res.Artifacts
	out.Cache.Reflow = res.CacheInfo.ReflowHit
	out.Cache.Layout = res.CacheInfo.LayoutHit
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReflow(mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReflowRequest
		if err := decode(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		hooks := observability.Engine()
		hooks.OnReflowStart(r.Context(), mode, len(req.Boxes))
		start := time.Now()
		out, err := engine.New(flow.Config{}).Reflow(mode, req.Boxes, req.Budget)
		hooks.OnReflowComplete(r.Context(), mode, time.Since(start), err)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, BoxesResponse{Boxes: out})
	}
}

func (s *Server) handleTruncate(w http.ResponseWriter, r *http.Request) {
	var req TruncateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := engine.New(flow.Config{}).TruncateToLines(req.Boxes, req.Lines, req.LineCounts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, BoxesResponse{Boxes: out})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.writeError(w, r, err)
}
