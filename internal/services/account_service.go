package services

import (
	"context"
	"log"

	"PairTalk/client/internal/api"
	"PairTalk/client/internal/auth"
	"PairTalk/client/internal/models"
	"PairTalk/client/internal/utils"
)

// AccountAPI is the slice of the REST client the account service consumes.
type AccountAPI interface {
	SignIn(ctx context.Context, email, password string) (*api.SessionResponse, error)
	SignUp(ctx context.Context, name, email, password string) (*api.SessionResponse, error)
	UpdateUser(ctx context.Context, form api.ProfileForm) (*models.User, error)
}

// AccountService owns sign-in, sign-up and profile updates. It feeds the
// identity context and holds no state of its own.
type AccountService struct {
	api      AccountAPI
	identity *auth.Identity
}

func NewAccountService(accountAPI AccountAPI, identity *auth.Identity) *AccountService {
	return &AccountService{
		api:      accountAPI,
		identity: identity,
	}
}

func (s *AccountService) SignIn(ctx context.Context, email, password string) error {
	if !utils.ValidEmail(email) {
		return models.ErrInvalidEmail
	}
	if !utils.ValidPassword(password) {
		return models.ErrShortPassword
	}

	resp, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		log.Printf("Sign in failed for %s: %v", email, err)
		return err
	}

	s.identity.SetSession(resp.User, resp.AccessToken)
	log.Printf("Signed in as user %d (%s)", resp.User.ID, resp.User.Name)
	return nil
}

func (s *AccountService) SignUp(ctx context.Context, name, email, password string) error {
	if !utils.ValidName(name) {
		return models.ErrInvalidName
	}
	if !utils.ValidEmail(email) {
		return models.ErrInvalidEmail
	}
	if !utils.ValidPassword(password) {
		return models.ErrShortPassword
	}

	resp, err := s.api.SignUp(ctx, name, email, password)
	if err != nil {
		log.Printf("Sign up failed for %s: %v", email, err)
		return err
	}

	s.identity.SetSession(resp.User, resp.AccessToken)
	log.Printf("Signed up as user %d (%s)", resp.User.ID, resp.User.Name)
	return nil
}

// UpdateProfile applies a profile change and refreshes the identity with the
// user the server returns.
func (s *AccountService) UpdateProfile(ctx context.Context, form api.ProfileForm) error {
	if form.Name != "" && !utils.ValidName(form.Name) {
		return models.ErrInvalidName
	}
	if form.Email != "" && !utils.ValidEmail(form.Email) {
		return models.ErrInvalidEmail
	}
	if form.Password != "" && !utils.ValidPassword(form.Password) {
		return models.ErrShortPassword
	}

	user, err := s.api.UpdateUser(ctx, form)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return err
	}

	s.identity.SetUser(*user)
	return nil
}
