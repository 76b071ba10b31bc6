package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vancomm/minesweeper-server/internal/config"
	"github.com/vancomm/minesweeper-server/internal/service"
)

type Auth struct {
	logger   *slog.Logger
	accounts *service.Accounts
	jwt      *config.JWT
	now      func() time.Time
}

func NewAuth(
	logger *slog.Logger,
	accounts *service.Accounts,
	jwt *config.JWT,
) *Auth {
	return &Auth{
		logger:   logger,
		accounts: accounts,
		jwt:      jwt,
		now:      time.Now,
	}
}

type AccountDTO struct {
	Email string `json:"email"`
}

type TokenDTO struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		SendJSONOrLog(w, a.logger, http.StatusBadRequest, wrapError(err))
		return
	}

	account, err := a.accounts.Register(
		r.Context(), r.FormValue("email"), r.FormValue("password"),
	)
	if err != nil {
		SendErrorOrLog(w, a.logger, err)
		return
	}

	SendJSONOrLog(w, a.logger, http.StatusCreated, AccountDTO{account.Email})
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		SendJSONOrLog(w, a.logger, http.StatusBadRequest, wrapError(err))
		return
	}

	account, err := a.accounts.Authenticate(
		r.Context(), r.FormValue("email"), r.FormValue("password"),
	)
	if err != nil {
		SendErrorOrLog(w, a.logger, err)
		return
	}

	now := a.now()
	token, err := a.jwt.Issue(account.Email, now)
	if err != nil {
		SendErrorOrLog(w, a.logger, err)
		return
	}

	SendJSONOrLog(w, a.logger, http.StatusOK, TokenDTO{
		Token:     token,
		ExpiresAt: now.Add(a.jwt.TokenLifetime).UnixMilli(),
	})
}
