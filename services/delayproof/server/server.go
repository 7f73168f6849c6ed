// Package server exposes the delayproof service over HTTP. The legacy
// contract always answers 200, outcomes travel as codes inside the
// envelope.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hofftmuz/subway-delay-certificate/services/delayproof"
)

type Processor interface {
	ProcessRequest(ctx context.Context, input delayproof.Input) delayproof.Output
}

func New(processor Processor) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/delayproof", handler{processor: processor})
	return mux
}

type handler struct {
	processor Processor
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input delayproof.Input
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		slog.WarnContext(ctx, "undecodable request body", "err", err)
		writeOutput(ctx, w, delayproof.ErrorOutput(delayproof.StatusInvalidInput))
		return
	}

	writeOutput(ctx, w, h.processor.ProcessRequest(ctx, input))
}

func writeOutput(ctx context.Context, w http.ResponseWriter, out delayproof.Output) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(out)
	if err != nil {
		slog.ErrorContext(ctx, "failed to write response", "err", err)
	}
}
