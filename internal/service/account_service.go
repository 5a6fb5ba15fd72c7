// Package service implements the application's business logic over the repositories.
package service

import (
	"context"
	"crypto/rand"
	"math/big"

	"microblog/internal/mailer"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const (
	activationTokenLength   = 10
	activationTokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// generateActivationToken produces an unpredictable fixed-length opaque token.
func generateActivationToken() (string, error) {
	max := big.NewInt(int64(len(activationTokenAlphabet)))
	buf := make([]byte, activationTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = activationTokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// AdminChecker reports whether the given user holds the admin role.
type AdminChecker func(ctx context.Context, userID uint) (bool, error)

// AccountService owns the account lifecycle: pending, activated, deleted.
type AccountService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	isAdmin  AdminChecker
}

// NewAccountService returns a new AccountService.
func NewAccountService(userRepo repository.UserRepository, mail mailer.Mailer, isAdmin AdminChecker) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		mail:     mail,
		isAdmin:  isAdmin,
	}
}

// RegisterInput lists exactly the fields Register accepts.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register stores a new pending account with a fresh activation token and
// dispatches the confirmation mail. Mail delivery is best-effort: the account
// exists whether or not the message arrives.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	token, err := generateActivationToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:            in.Name,
		Email:           in.Email,
		Password:        string(hashed),
		Activated:       false,
		ActivationToken: &token,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	mailer.Dispatch(s.mail, user, token)

	return user, nil
}

// ConfirmEmail consumes an activation token: exactly one account can hold it,
// and activating clears it, so a second call with the same token is NotFound.
func (s *AccountService) ConfirmEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := s.userRepo.GetByActivationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user.Activated = true
	user.ActivationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfileInput lists exactly the fields UpdateProfile accepts.
// An empty Password leaves the stored credential untouched.
type UpdateProfileInput struct {
	ActorID  uint
	UserID   uint
	Name     string
	Password string
}

// UpdateProfile changes the display name and optionally re-hashes a new password.
// Only the account owner may update the profile.
func (s *AccountService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.ActorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own profile")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		if err := validation.ValidateName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = in.Name
	}
	if in.Password != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, models.NewInternalError(hashErr)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete hard-deletes an account. The repository removes every follow edge and
// status referencing it in the same transaction. Owners may delete themselves;
// admins may delete anyone.
func (s *AccountService) Delete(ctx context.Context, actorID, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if actorID != userID {
		admin, err := s.isAdmin(ctx, actorID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own account")
		}
	}

	return s.userRepo.Delete(ctx, userID)
}
