package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses
type JSONError struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []shared.FieldError `json:"errors,omitempty"`
}

// WriteJSON is a helper to write JSON responses
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var response interface{}

	// If payload is already a map with a "success" key, use it directly (custom format)
	if responseMap, ok := payload.(map[string]interface{}); ok && responseMap["success"] != nil {
		response = payload
	} else if status >= 200 && status < 300 {
		response = JSONResponse{Success: true, Data: payload}
	} else {
		// Fallback for errors if WriteJSONError wasn't used
		response = JSONError{Success: false, Message: "Unknown error"}
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("writing JSON response", "error", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	writeError(w, status, JSONError{Success: false, Message: message})
}

func writeError(w http.ResponseWriter, status int, body JSONError) {
	if status >= http.StatusInternalServerError {
		slog.Error("http error", "status", status, "message", body.Message)
	} else {
		slog.Debug("http error", "status", status, "message", body.Message)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("writing JSON error response", "error", err)
	}
}

// HandleError maps service and store errors onto HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var ve *shared.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, JSONError{Success: false, Message: "Validation failed", Errors: ve.Fields})
	case errors.Is(err, store.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, context.DeadlineExceeded):
		WriteJSONError(w, http.StatusGatewayTimeout, "Request timed out")
	case errors.Is(err, context.Canceled):
		WriteJSONError(w, http.StatusServiceUnavailable, "Request canceled")
	default:
		if _, ok := status.FromError(err); ok {
			HandleGRPCError(w, err)
			return
		}
		slog.Error("unhandled error", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleGRPCError translates gRPC status errors to appropriate HTTP responses.
func HandleGRPCError(w http.ResponseWriter, err error) {
	st, ok := status.FromError(err)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error: Non-gRPC error occurred")
		return
	}

	switch st.Code() {
	case codes.InvalidArgument:
		WriteJSONError(w, http.StatusBadRequest, st.Message())
	case codes.Unauthenticated:
		WriteJSONError(w, http.StatusUnauthorized, st.Message())
	case codes.PermissionDenied:
		WriteJSONError(w, http.StatusForbidden, st.Message())
	case codes.NotFound:
		WriteJSONError(w, http.StatusNotFound, st.Message())
	case codes.AlreadyExists:
		WriteJSONError(w, http.StatusConflict, st.Message())
	case codes.Unavailable:
		WriteJSONError(w, http.StatusServiceUnavailable, "Service Unavailable: The backend service is unreachable.")
	case codes.DeadlineExceeded:
		WriteJSONError(w, http.StatusGatewayTimeout, "Service Timeout: The backend service took too long to respond.")
	default:
		WriteJSONError(w, http.StatusInternalServerError, st.Message())
	}
}

// ExtractToken extracts the token from the Authorization header (Bearer <token>)
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	// Expect header: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// DecodeJSON decodes the request body into v. Decoding onto a populated value
// only overwrites the fields present in the body.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// DecodeMergeJSON decodes the body onto an existing record held in v (a
// pointer to struct). Fields absent from the body keep their values; slice
// fields present in the body are replaced wholesale rather than decoded over
// the old elements.
func DecodeMergeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	resetSliceFields(reflect.ValueOf(v), keys)
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// resetSliceFields nils every slice field of the struct behind v whose JSON
// name appears in keys. Key matching is case-insensitive like encoding/json.
func resetSliceFields(v reflect.Value, keys map[string]json.RawMessage) {
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	sv := v.Elem()
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			resetSliceFields(sv.Field(i).Addr(), keys)
			continue
		}
		if field.Type.Kind() != reflect.Slice {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			if tagName, _, _ := strings.Cut(tag, ","); tagName == "-" {
				continue
			} else if tagName != "" {
				name = tagName
			}
		}
		for k := range keys {
			if strings.EqualFold(k, name) {
				sv.Field(i).Set(reflect.Zero(field.Type))
				break
			}
		}
	}
}

// URLParamID parses a positive numeric route parameter
func URLParamID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryInt reads an integer query parameter, returning def when absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
