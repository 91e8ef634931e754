// Package pixkey manages the registry of withdrawal destination keys.
// A key must be format-valid for its type at creation time and active
// (not soft-deleted) to be usable as a withdrawal target.
package pixkey

import (
	"context"
	"errors"
	"fmt"

	"pixvault/internal/models"
	"pixvault/internal/repositories"
)

// Service is the pix key registry.
type Service interface {
	Register(ctx context.Context, accountID, keyType, keyValue string) (*models.PixKey, error)
	List(ctx context.Context, accountID string) ([]models.PixKey, error)
	Delete(ctx context.Context, accountID, keyID string) error
	FindActiveKey(ctx context.Context, accountID, keyValue string) (*models.PixKey, error)
}

type service struct {
	repo repositories.PixKeyRepository
}

func NewService(repo repositories.PixKeyRepository) Service {
	if repo == nil {
		panic("pix key repository is required")
	}
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, accountID, keyType, keyValue string) (*models.PixKey, error) {
	if keyType == "" || keyValue == "" {
		return nil, ErrInvalidKey
	}
	if !ValidateKeyValue(keyType, keyValue) {
		return nil, fmt.Errorf("%w %q", ErrInvalidKey, keyType)
	}

	key := &models.PixKey{
		AccountID: accountID,
		KeyType:   keyType,
		KeyValue:  keyValue,
		Status:    models.PixKeyStatusActive,
	}
	if err := s.repo.Create(ctx, key); err != nil {
		if errors.Is(err, repositories.ErrDuplicatePixKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return key, nil
}

func (s *service) List(ctx context.Context, accountID string) ([]models.PixKey, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *service) Delete(ctx context.Context, accountID, keyID string) error {
	if err := s.repo.Delete(ctx, accountID, keyID); err != nil {
		if errors.Is(err, repositories.ErrPixKeyNotFound) {
			return ErrKeyNotFound
		}
		return err
	}
	return nil
}

func (s *service) FindActiveKey(ctx context.Context, accountID, keyValue string) (*models.PixKey, error) {
	key, err := s.repo.FindActiveKey(ctx, accountID, keyValue)
	if err != nil {
		if errors.Is(err, repositories.ErrPixKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return key, nil
}
