package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyager/internal/models/db_models"
	"voyager/internal/models/request_models"
	"voyager/internal/models/response_models"
	"voyager/internal/repositories"
	"voyager/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (*response_models.AccountLoginResponse, error)
	CreateAccount(request request_models.SignUpRequest, ctx context.Context) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	jwt         *utils.JWTManager
	log         *zap.Logger
}

func NewAccountService(accountRepo repositories.AccountRepository, jwt *utils.JWTManager, log *zap.Logger) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		jwt:         jwt,
		log:         log,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (*response_models.AccountLoginResponse, error) {

	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	err = utils.ComparePasswords(account.PasswordHash, request.Password)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	a.log.Debug("login", zap.String("user_id", account.ID.String()), zap.Duration("took", time.Since(startTime)))

	return &response_models.AccountLoginResponse{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}

func (a *AccountService) CreateAccount(request request_models.SignUpRequest, ctx context.Context) error {

	email := normalizeEmail(request.Email)
	existingAccount, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	newAccount := &db_models.Account{
		FirstName:    strings.TrimSpace(request.FirstName),
		LastName:     strings.TrimSpace(request.LastName),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         "user", // default role
	}

	if err := a.accountRepo.InsertTx(newAccount, ctx); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return toAccountResponse(account), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, request request_models.UpdateProfileRequest) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	account.FirstName = strings.TrimSpace(request.FirstName)
	account.LastName = strings.TrimSpace(request.LastName)
	account.AvatarURL = request.AvatarURL
	account.Preferences = request.Preferences

	if err := a.accountRepo.UpdateProfile(ctx, account); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toAccountResponse(account), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAccountResponse(a *db_models.Account) *response_models.AccountResponse {
	prefs := []string(a.Preferences)
	if prefs == nil {
		prefs = []string{}
	}
	return &response_models.AccountResponse{
		ID:          a.ID.String(),
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		FullName:    a.FullName(),
		AvatarURL:   a.AvatarURL,
		Preferences: prefs,
		Role:        a.Role,
	}
}
