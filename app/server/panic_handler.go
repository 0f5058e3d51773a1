package server

import (
	"net/http"

	"github.com/tkc17/iw-parser/util"
)

// PanicHandler recovers a panic in the downstream handler and responds
// with an internal error.
func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				util.FileLogger().Errorf(r.Context(), "Panic occurred: %v", e)
				writeError(r.Context(), w, http.StatusInternalServerError, "Internal error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
