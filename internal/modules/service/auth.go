package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/modules/model"
	"github.com/marconi-lab/annotator/internal/modules/repo"
	"github.com/marconi-lab/annotator/internal/pkg/utils/tokens"
)

// MailSender is the outbound email surface the auth flow needs; satisfied
// by mailer.Mailer.
type MailSender interface {
	SendVerification(ctx context.Context, email, link string)
	SendSignupNotice(ctx context.Context, newUserEmail string)
	SendPasswordReset(ctx context.Context, email, link string)
}

// VerifyOutcome tells the handler where to redirect after a confirmation
// link click.
type VerifyOutcome int

const (
	VerifyRedirectLogin VerifyOutcome = iota
	VerifyRedirectSignup
)

type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	IsAdmin     bool
	FirstName   string
	LastName    string
	Age         int
	Gender      string
	Country     string
	City        string
	Street      string
	Description string
	Experience  string
	Site        string
}

type LoginOutput struct {
	AccessToken string
	User        *model.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) (VerifyOutcome, error)
	Login(ctx context.Context, email, password string) (*LoginOutput, error)
	Logout(ctx context.Context, rawToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	SetNewPassword(ctx context.Context, token, password string) error
}

type authService struct {
	users     repo.UserRepo
	blacklist repo.BlacklistRepo
	mail      MailSender
	cfg       *config.Config
}

func NewAuthService(users repo.UserRepo, blacklist repo.BlacklistRepo, mail MailSender, cfg *config.Config) AuthService {
	return &authService{users: users, blacklist: blacklist, mail: mail, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" || in.Username == "" {
		return nil, fmt.Errorf("%w: email, password and username", ErrNameRequired)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Username:     in.Username,
		IsAdmin:      in.IsAdmin,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          in.Age,
		Gender:       in.Gender,
		Country:      in.Country,
		City:         in.City,
		Street:       in.Street,
		Description:  in.Description,
		Experience:   in.Experience,
		Site:         in.Site,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Fire-and-forget: a lost verification email does not roll back the
	// registration; the user can request a fresh link by re-registering
	// after the admin removes the stale account.
	token, err := tokens.NewEmailToken(s.cfg.Auth.Secret, email, tokens.PurposeVerifyEmail, s.cfg.Auth.VerifyTokenTTL)
	if err == nil {
		link := fmt.Sprintf("%s/confirm/%s", strings.TrimSuffix(s.cfg.App.PublicURL, "/"), token)
		s.mail.SendVerification(ctx, email, link)
	}

	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (VerifyOutcome, error) {
	email, err := tokens.ParseEmailToken(s.cfg.Auth.Secret, token, tokens.PurposeVerifyEmail)
	if err != nil {
		return 0, ErrTokenInvalid
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return VerifyRedirectSignup, nil
	}
	if err != nil {
		return 0, err
	}

	// Repeated clicks on the same link are harmless.
	if user.IsVerified {
		return VerifyRedirectLogin, nil
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return 0, err
	}
	s.mail.SendSignupNotice(ctx, email)
	return VerifyRedirectLogin, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Indistinguishable from a bad password, so the endpoint cannot be
		// used to enumerate accounts.
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.NewAccessToken(s.cfg.Auth.Secret, user.ID, user.IsAdmin, s.cfg.Auth.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{AccessToken: token, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, rawToken string) error {
	claims, err := tokens.ParseAccessToken(s.cfg.Auth.Secret, rawToken)
	if err != nil {
		return ErrTokenInvalid
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	return s.blacklist.Add(ctx, rawToken, remaining)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	token, err := tokens.NewEmailToken(s.cfg.Auth.Secret, email, tokens.PurposeResetPassword, s.cfg.Auth.VerifyTokenTTL)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/new-password/%s", strings.TrimSuffix(s.cfg.App.PublicURL, "/"), token)
	s.mail.SendPasswordReset(ctx, email, link)
	return nil
}

func (s *authService) SetNewPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password", ErrNameRequired)
	}
	email, err := tokens.ParseEmailToken(s.cfg.Auth.Secret, token, tokens.PurposeResetPassword)
	if err != nil {
		return ErrTokenInvalid
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}
