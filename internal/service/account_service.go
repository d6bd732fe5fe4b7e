package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elysian-softech/account-service/internal/events"
	"github.com/elysian-softech/account-service/internal/greeter"
	"github.com/elysian-softech/account-service/internal/model"
	"github.com/elysian-softech/account-service/internal/password"
	"github.com/elysian-softech/account-service/internal/repository"
)

var (
	// ErrInvalidCredentials covers both an unknown account and a wrong
	// password so the two cases stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

const defaultName = "User"

// Greeting carries the outcome of a successful register or login.
type Greeting struct {
	Name           string
	Email          string
	WelcomeMessage string
}

type AccountService interface {
	Register(ctx context.Context, email, plaintext, name string) (*Greeting, error)
	Login(ctx context.Context, email, plaintext string) (*Greeting, error)
	ChangePassword(ctx context.Context, email, current, updated string) error
	FindOrCreate(ctx context.Context, email, name string, source model.Source) (user *model.User, existed bool, err error)
}

type accountService struct {
	userRepo  repository.UserRepository
	greeter   greeter.Greeter
	publisher events.EventPublisher
}

func NewAccountService(userRepo repository.UserRepository, g greeter.Greeter, publisher events.EventPublisher) AccountService {
	return &accountService{
		userRepo:  userRepo,
		greeter:   g,
		publisher: publisher,
	}
}

// Register creates a native (source App) account. The unique (email, source)
// index resolves concurrent duplicate registrations: whoever inserts second
// gets ErrEmailTaken, no pre-read needed.
func (s *accountService) Register(ctx context.Context, email, plaintext, name string) (*Greeting, error) {
	if err := password.CheckPolicy(plaintext); err != nil {
		return nil, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = defaultName
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		Source:       model.SourceApp,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.publishRegistered(user)

	message := s.greeter.Generate(ctx, fmt.Sprintf("Welcome %s to Elysian Softech!", user.Name))

	return &Greeting{Name: user.Name, Email: user.Email, WelcomeMessage: message}, nil
}

func (s *accountService) Login(ctx context.Context, email, plaintext string) (*Greeting, error) {
	user, err := s.userRepo.Find(ctx, email, model.SourceApp)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	message := s.greeter.Generate(ctx, fmt.Sprintf("Welcome back, %s! Here's a random programming fact.", user.Name))

	return &Greeting{Name: user.Name, Email: user.Email, WelcomeMessage: message}, nil
}

// ChangePassword only reaches source App records; OAuth-sourced records carry
// no hash and cannot have one set this way.
func (s *accountService) ChangePassword(ctx context.Context, email, current, updated string) error {
	user, err := s.userRepo.Find(ctx, email, model.SourceApp)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !password.Verify(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if err := password.CheckPolicy(updated); err != nil {
		return err
	}

	hash, err := password.Hash(updated)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, email, model.SourceApp, hash)
}

// FindOrCreate is the OAuth reconciliation path: insert first, and treat the
// duplicate-key outcome as "already existed". Created records never carry a
// password hash.
func (s *accountService) FindOrCreate(ctx context.Context, email, name string, source model.Source) (*model.User, bool, error) {
	if name == "" {
		name = defaultName
	}

	user := &model.User{
		Email:  email,
		Name:   name,
		Source: source,
	}

	err := s.userRepo.Create(ctx, user)
	if err == nil {
		s.publishRegistered(user)
		return user, false, nil
	}
	if !errors.Is(err, repository.ErrDuplicateUser) {
		return nil, false, err
	}

	existing, err := s.userRepo.Find(ctx, email, source)
	if err != nil {
		return nil, false, err
	}

	return existing, true, nil
}

func (s *accountService) publishRegistered(user *model.User) {
	if err := s.publisher.PublishUserRegistered(user); err != nil {
		slog.Warn("Failed to publish user.registered event", "error", err, "source", user.Source)
	}
}
