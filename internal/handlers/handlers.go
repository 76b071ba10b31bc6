package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-server/internal/config"
	"github.com/vancomm/minesweeper-server/internal/middleware"
	"github.com/vancomm/minesweeper-server/internal/mines"
	"github.com/vancomm/minesweeper-server/internal/service"
)

var ErrUnauthorized = errors.New("missing or invalid bearer token")

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func SendJSONOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	status int,
	v any,
) {
	_, err := SendJSON(w, status, v)
	if err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidDimension),
		errors.Is(err, mines.ErrInvalidMineCount),
		errors.Is(err, mines.ErrUnknownLevel),
		errors.Is(err, service.ErrBadCredentials),
		errors.Is(err, service.ErrPasswordTooLong):
		return http.StatusBadRequest
	}
	var multi schema.MultiError
	if errors.As(err, &multi) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// SendErrorOrLog answers with the status err maps to. Unexpected errors are
// logged and hidden from the client.
func SendErrorOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	e error,
) {
	status := errorStatus(e)
	if status == http.StatusInternalServerError {
		logger.Error("unable to handle request", slog.Any("error", e))
		e = errors.New(http.StatusText(status))
	}
	SendJSONOrLog(w, logger, status, wrapError(e))
}

func accountEmail(r *http.Request) (string, error) {
	claims, ok := r.Context().Value(middleware.CtxAccountClaims).(*config.AccountClaims)
	if !ok || claims.Email == "" {
		return "", ErrUnauthorized
	}
	return claims.Email, nil
}
