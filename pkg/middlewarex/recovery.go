package middlewarex

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"money_saver/pkg/errcodes"
	"money_saver/pkg/httpx/reply"
	"money_saver/pkg/logx"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler { //nolint:errorlint,goerr113
					panic(rec)
				}

				logger(ctx).Error(
					"panic in handler",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)

				reply.CodedError(ctx, w, http.StatusInternalServerError, errcodes.InternalServerError, "internal server error", nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
