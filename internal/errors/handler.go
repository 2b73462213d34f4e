package errors

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// ErrorHandler converts application errors to RFC 7807 responses and
// logs them with the request trace id.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates an error handler. A nil logger falls back to
// slog.Default. includeStack controls whether panic responses carry a
// stack trace extension and should be off in production.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger, includeStack: includeStack}
}

// HandleError writes err as an RFC 7807 problem response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())
	problem := h.ErrorToProblem(r, err)

	attrs := []any{
		slog.String("trace_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", problem.Status),
		slog.String("error", err.Error()),
	}
	if appErr, ok := AsAppError(err); ok {
		attrs = append(attrs, slog.String("error_type", string(appErr.Type)))
		for k, v := range appErr.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	if problem.Status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		h.logger.WarnContext(r.Context(), "request rejected", attrs...)
	}

	render.Render(w, r, problem)
}

// ErrorToProblem maps an error to RFC 7807 problem details.
func (h *ErrorHandler) ErrorToProblem(r *http.Request, err error) *ProblemDetails {
	reqID := middleware.GetReqID(r.Context())

	if appErr, ok := AsAppError(err); ok {
		status := appErr.HTTPStatus()
		return NewProblemDetails(
			status,
			"/errors/"+string(appErr.Type),
			http.StatusText(status),
			appErr.Message,
			r.URL.Path,
		).WithExtension("trace_id", reqID)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		"/errors/internal",
		"Internal Server Error",
		"an unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)
}

// HandlePanic recovers a panic value into a 500 problem response.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, rv any) {
	reqID := middleware.GetReqID(r.Context())
	stack := stackTrace()

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.String("trace_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("panic", rv),
		slog.String("stack", stack),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		"/errors/panic",
		"Internal Server Error",
		"an unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("stack", stack)
	}
	render.Render(w, r, problem)
}

// NotFound is a chi NotFound handler producing a problem response.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewProblemDetails(
		http.StatusNotFound,
		"/errors/not-found",
		"Not Found",
		"the requested resource does not exist",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context())))
}

// MethodNotAllowed is a chi MethodNotAllowed handler.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, NewProblemDetails(
		http.StatusMethodNotAllowed,
		"/errors/method-not-allowed",
		"Method Not Allowed",
		"the method is not allowed for this resource",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context())))
}

func stackTrace() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
