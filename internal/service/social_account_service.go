package service

import (
	"Postwise/internal/model"
	"Postwise/internal/repository"
	"context"
	log "log/slog"
)

type SocialAccountService interface {
	GetOwnedAccount(ctx context.Context, accountID, userID uint64) (*model.SocialAccount, error)
}

type SocialAccountServiceImpl struct {
	accountRepo repository.SocialAccountRepo
}

func NewSocialAccountService(accountRepo repository.SocialAccountRepo) SocialAccountService {
	return &SocialAccountServiceImpl{accountRepo: accountRepo}
}

// GetOwnedAccount 校验账号归属当前用户
func (s *SocialAccountServiceImpl) GetOwnedAccount(ctx context.Context, accountID, userID uint64) (*model.SocialAccount, error) {
	if accountID == 0 {
		return nil, ErrParamInvalid
	}
	account, err := s.accountRepo.GetAccount(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "failed to get social account", "accountId", accountID, "err", err)
		return nil, UnExpectedError
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.UserID != userID {
		return nil, ErrAccountForbidden
	}
	return account, nil
}
