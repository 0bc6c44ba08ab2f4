package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"studysync/backend/internal/gateway/util"
)

// requestTimeout bounds every service call made on behalf of a request
const requestTimeout = 5 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// pathID reads the {id} route parameter, writing a 400 when it is malformed
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := util.URLParamID(r, "id")
	if err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// queryInt64 reads an optional numeric query parameter; absent means 0
func queryInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" || raw == "all" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// decodeBody decodes the JSON body into v, writing a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := util.DecodeJSON(w, r, v); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// mergeBody decodes the JSON body over an existing record, writing a 400 on failure
func mergeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := util.DecodeMergeJSON(w, r, v); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
