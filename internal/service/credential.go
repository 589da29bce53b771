package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// ErrBadSealKey reports a missing or malformed secretbox key.
var ErrBadSealKey = errors.New("credentials key must be 32 bytes, base64-encoded")

// CredentialInput is a customer's Gmail/iTax secrets as submitted.
type CredentialInput struct {
	FirstName     string
	Email         string
	EmailPassword string
	ItaxPIN       string
	ItaxPassword  string
}

// CredentialListResult is the service-level DTO for paginated credentials.
type CredentialListResult struct {
	Items []model.Credential `json:"data"`
	Total int                `json:"total"`
}

// CredentialService seals customer secrets before persistence. Sealed
// values are nonce-prefixed secretbox ciphertexts, base64-encoded.
type CredentialService interface {
	Save(ctx context.Context, p model.Principal, in CredentialInput) (*model.Credential, error)
	List(ctx context.Context, limit, offset int) (*CredentialListResult, error)
}

type credentialService struct {
	repo repository.CredentialRepository
	key  [32]byte
}

// NewCredentialService constructs a CredentialService from a
// base64-encoded 32-byte key.
func NewCredentialService(repo repository.CredentialRepository, encodedKey string) (CredentialService, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil || len(raw) != 32 {
		return nil, ErrBadSealKey
	}
	s := &credentialService{repo: repo}
	copy(s.key[:], raw)
	return s, nil
}

func (s *credentialService) Save(ctx context.Context, p model.Principal, in CredentialInput) (*model.Credential, error) {
	sealedEmail, err := s.seal(in.EmailPassword)
	if err != nil {
		return nil, err
	}
	sealedPIN, err := s.seal(in.ItaxPIN)
	if err != nil {
		return nil, err
	}
	sealedItax, err := s.seal(in.ItaxPassword)
	if err != nil {
		return nil, err
	}

	c := &model.Credential{
		ID:                  uuid.New().String(),
		FirstName:           in.FirstName,
		Email:               in.Email,
		SealedEmailPassword: sealedEmail,
		SealedItaxPIN:       sealedPIN,
		SealedItaxPassword:  sealedItax,
		CreatedBy:           p.ID,
		CreatedAt:           time.Now().UTC(),
	}
	return s.repo.Create(ctx, c)
}

func (s *credentialService) List(ctx context.Context, limit, offset int) (*CredentialListResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CredentialListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *credentialService) seal(plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// open reverses seal.
func (s *credentialService) open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < 24 {
		return "", errors.New("malformed sealed value")
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", errors.New("seal verification failed")
	}
	return string(plain), nil
}
