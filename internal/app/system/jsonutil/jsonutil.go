// Package jsonutil provides helper functions for JSON API responses.
//
// The admin front end expects three envelope shapes:
//
//	{"success": true, "data": ...}        - reads and catalog mutations
//	{"error": "..."}                      - all failures
//	{"message": "...", "<entity>": doc}   - page merges and auth flows
//
// Use these helpers in API handlers so every response carries the right
// Content-Type and envelope.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes {"success": true, "data": data} with 200 OK.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

// Created writes {"success": true, "data": data} with 201 Created.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, map[string]any{"success": true, "data": data})
}

// List writes {"success": true, "count": n, "data": items} with 200 OK.
func List(w http.ResponseWriter, count int, items any) {
	JSON(w, http.StatusOK, map[string]any{"success": true, "count": count, "data": items})
}

// Message writes {"message": msg, <entity>: doc} with 200 OK. Warnings, when
// present, are appended as a "warnings" array so partial failures (e.g. an
// upload that could not be stored) are visible to the caller.
func Message(w http.ResponseWriter, msg, entity string, doc any, warnings []string) {
	body := map[string]any{"message": msg, entity: doc}
	if len(warnings) > 0 {
		body["warnings"] = warnings
	}
	JSON(w, http.StatusOK, body)
}

// Error writes {"error": message} with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 Forbidden error response.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError writes a 500 Internal Server Error response.
// Do not expose internal details to clients - log the actual error separately.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// Decode reads and decodes JSON from the request body into v.
// Returns an error that can be passed to BadRequest if decoding fails.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
