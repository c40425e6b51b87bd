// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (success or error) across the entire application follows
// the same JSON envelope: {"result": "ok"|"error", ...}. This consistency is
// crucial for mobile apps and frontend SPAs to parse data robustly.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lehoangduc/mangamirror/internal/platform/apperr"
	"github.com/lehoangduc/mangamirror/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful single-payload responses.
type SuccessEnvelope struct {
	Result string      `json:"result"`
	Data   interface{} `json:"data"`
}

// MessageEnvelope is the JSON envelope for successful data-less responses.
type MessageEnvelope struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// ListEnvelope is the JSON envelope for paginated list responses.
type ListEnvelope struct {
	Result string      `json:"result"`
	Data   interface{} `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Total  int         `json:"total"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Result  string              `json:"result"`
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Result: "ok", Data: data})
}

// Message writes a 200 OK response carrying only a human-readable message.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, MessageEnvelope{Result: "ok", Message: message})
}

// Created writes a 201 Created response carrying only a human-readable message.
func Created(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusCreated, MessageEnvelope{Result: "ok", Message: message})
}

// Listed writes a 200 OK response with list data plus pagination fields.
func Listed(writer http.ResponseWriter, data interface{}, limit, offset, total int) {
	JSON(writer, http.StatusOK, ListEnvelope{
		Result: "ok",
		Data:   data,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Result:  "error",
		Message: appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
