package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-server/internal/repository"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordLength = 72

type Accounts struct {
	logger *slog.Logger
	store  AccountStore
	cost   int
}

func NewAccounts(logger *slog.Logger, store AccountStore, cost int) *Accounts {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Accounts{logger: logger, store: store, cost: cost}
}

func checkCredentials(email, password string) error {
	if email == "" || password == "" {
		return ErrBadCredentials
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func (s *Accounts) Register(ctx context.Context, email, password string) (*repository.Account, error) {
	if err := checkCredentials(email, password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	account, err := s.store.CreateAccount(ctx, email, hash)
	if err != nil {
		return nil, err
	}
	s.logger.Info("registered account", slog.String("email", email))
	return account, nil
}

func (s *Accounts) Authenticate(ctx context.Context, email, password string) (*repository.Account, error) {
	if err := checkCredentials(email, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	account, err := s.store.FetchAccount(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	err = bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}
