package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/generation"
)

// HandleLambda serves the generate endpoint behind a Lambda Function URL.
// Function URLs have no router, so any POST path is treated as a generate call.
func (s *Server) HandleLambda(ctx context.Context, req events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	headers := s.lambdaCORSHeaders(getHeader(req.Headers, "origin"))

	switch req.RequestContext.HTTP.Method {
	case http.MethodOptions:
		return events.LambdaFunctionURLResponse{StatusCode: http.StatusNoContent, Headers: headers}, nil
	case http.MethodGet:
		if req.RawPath == "/healthz" {
			return lambdaJSON(http.StatusOK, headers, map[string]string{"status": "ok", "version": s.cfg.Version}), nil
		}
		return lambdaJSON(http.StatusMethodNotAllowed, headers, map[string]string{"error": "method not allowed"}), nil
	case http.MethodPost:
	default:
		return lambdaJSON(http.StatusMethodNotAllowed, headers, map[string]string{"error": "method not allowed"}), nil
	}

	var resp *generation.Response
	body, err := lambdaBody(req)
	if err == nil {
		var gr generateRequest
		if err = json.Unmarshal(body, &gr); err == nil {
			resp = s.gen.Generate(ctx, gr.Answers)
		}
	}
	if resp == nil {
		s.log.WarnContext(ctx, "Invalid generate request body, using empty answers", "error", err)
		resp = s.gen.FallbackFor(ctx, answers.Record{}, err)
	}

	out := lambdaJSON(http.StatusOK, headers, resp)
	if err := resp.MarkRendered(); err != nil {
		s.log.WarnContext(ctx, "Attempt state", "error", err)
	}
	return out, nil
}

func lambdaBody(req events.LambdaFunctionURLRequest) ([]byte, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, fmt.Errorf("empty request body")
	}
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("decode base64 body: %w", err)
	}
	return body, nil
}

func (s *Server) lambdaCORSHeaders(origin string) map[string]string {
	h := map[string]string{
		"Access-Control-Allow-Methods": allowedMethods,
		"Access-Control-Allow-Headers": allowedHeaders,
	}
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" {
			h["Access-Control-Allow-Origin"] = "*"
			return h
		}
		if origin != "" && o == origin {
			h["Access-Control-Allow-Origin"] = origin
			h["Vary"] = "Origin"
		}
	}
	return h
}

func lambdaJSON(status int, headers map[string]string, v any) events.LambdaFunctionURLResponse {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"marshal response"}`)
	}
	out := make(map[string]string, len(headers)+1)
	for k, val := range headers {
		out[k] = val
	}
	out["Content-Type"] = "application/json"
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    out,
		Body:       string(body),
	}
}

// getHeader does a case-insensitive header lookup.
// Lambda Function URL headers are already lowercased, but we handle both cases.
func getHeader(headers map[string]string, key string) string {
	key = strings.ToLower(key)
	for k, v := range headers {
		if strings.ToLower(k) == key {
			return v
		}
	}
	return ""
}
