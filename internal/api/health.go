// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/respond"
)

// HealthDependencies lists the probes the health endpoint runs.
type HealthDependencies struct {
	// CheckDatabase returns nil when PostgreSQL answers a round trip.
	CheckDatabase func() error
}

// NewHealthHandler builds the /test handler: a database connectivity probe
// answering in the standard envelope.
func NewHealthHandler(deps HealthDependencies, log *slog.Logger) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if err := deps.CheckDatabase(); err != nil {
			log.Error("database probe failed", slog.Any("error", err))
			respond.Error(writer, request, apperr.Internal(err))
			return
		}

		respond.Message(writer, "Database connection successful")
	}
}
