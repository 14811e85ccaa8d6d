package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/export"
	"github.com/apresai/adgenius/internal/generation"
	"github.com/apresai/adgenius/internal/insight"
)

// maxBodyBytes leaves room for an inline base64 product image in enhanced_data.
const maxBodyBytes = 10 << 20

var errBodyTooLarge = fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)

type generateRequest struct {
	Answers answers.Record `json:"answers"`
}

// handleGenerate always answers 200; a bad body is treated as an empty record
// and produces a fallback response.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	var resp *generation.Response
	if err := decodeBody(w, r, &req); err != nil {
		s.log.WarnContext(ctx, "Invalid generate request body, using empty answers", "error", err)
		resp = s.gen.FallbackFor(ctx, answers.Record{}, err)
	} else {
		resp = s.gen.Generate(ctx, req.Answers)
	}

	writeJSON(w, http.StatusOK, resp)
	if err := resp.MarkRendered(); err != nil {
		s.log.WarnContext(ctx, "Attempt state", "error", err)
	}
}

type exportRequest struct {
	Answers answers.Record   `json:"answers"`
	Data    *creative.Result `json:"data"`
	Source  string           `json:"source"`
	Publish bool             `json:"publish"`
}

type exportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := export.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req exportRequest
	if err := decodeBody(w, r, &req); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		writeError(w, code, err.Error())
		return
	}

	signals := insight.Extract(req.Answers)
	if req.Data == nil {
		req.Data = creative.Fallback(signals, insight.SelectStrategy(signals))
		req.Source = "fallback"
	}
	text := export.Render(kind, export.Brief{
		Signals:   signals,
		Result:    req.Data,
		Source:    req.Source,
		Generated: time.Now(),
	})

	if req.Publish {
		if s.storage == nil {
			writeError(w, http.StatusServiceUnavailable, "export publishing is not configured")
			return
		}
		key, url, err := s.storage.Upload(ctx, kind, text)
		if err != nil {
			s.log.ErrorContext(ctx, "Export upload failed", "kind", kind, "error", err)
			writeError(w, http.StatusBadGateway, "export upload failed")
			return
		}
		s.log.InfoContext(ctx, "Export published", "kind", kind, "key", key)
		writeJSON(w, http.StatusOK, exportResponse{Key: key, URL: url})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", kind.Filename()))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.cfg.Version})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
