package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const DefaultSignInLinkTTL = 15 * time.Minute

var (
	ErrSignInLinkInvalid = errors.New("sign-in link invalid")
	ErrSignInLinkExpired = errors.New("sign-in link expired")
	ErrSignInLinkIssue   = errors.New("sign-in link issue failed")
)

type AuthUserRepository interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	Create(user *models.User) error
	TouchLastSignIn(userID uint, at time.Time) error
}

type SignInLinkRepository interface {
	Create(link *models.SignInLink) error
	FindByID(linkID string) (models.SignInLink, error)
	MarkUsed(linkID string, at time.Time) (bool, error)
	DeleteExpired(before time.Time) (int64, error)
}

type SignInLinkSender interface {
	SendSignInLink(ctx context.Context, email string, link string, expiresIn time.Duration) error
}

type AuthService struct {
	users   AuthUserRepository
	links   SignInLinkRepository
	sender  SignInLinkSender
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewAuthService(users AuthUserRepository, links SignInLinkRepository, sender SignInLinkSender, baseURL string) *AuthService {
	return &AuthService{
		users:   users,
		links:   links,
		sender:  sender,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		ttl:     DefaultSignInLinkTTL,
		now:     time.Now,
	}
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) FindByNormalizedEmail(email string) (models.User, error) {
	return service.users.FindByNormalizedEmail(email)
}

// RequestSignInLink stores a new one-time link for email and sends it. The
// caller answers the same way whether or not an account exists.
func (service *AuthService) RequestSignInLink(ctx context.Context, rawEmail string) error {
	email, err := NormalizeSignInEmailInput(rawEmail)
	if err != nil {
		return err
	}

	secret, err := security.NewSignInSecret()
	if err != nil {
		return errors.Join(ErrSignInLinkIssue, err)
	}
	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return errors.Join(ErrSignInLinkIssue, err)
	}

	now := service.now().UTC()
	link := models.SignInLink{
		ID:         uuid.NewString(),
		Email:      email,
		SecretHash: string(secretHash),
		ExpiresAt:  now.Add(service.ttl),
		CreatedAt:  now,
	}
	if err := service.links.Create(&link); err != nil {
		return errors.Join(ErrSignInLinkIssue, err)
	}

	verifyURL := service.VerifyURL(security.FormatSignInToken(link.ID, secret))
	if err := service.sender.SendSignInLink(ctx, email, verifyURL, service.ttl); err != nil {
		return fmt.Errorf("send sign-in link: %w", err)
	}
	return nil
}

func (service *AuthService) VerifyURL(token string) string {
	return service.baseURL + "/auth/verify?token=" + url.QueryEscape(token)
}

// VerifySignInLink consumes the link behind token and returns the signed-in
// user, creating the account on first sign in.
func (service *AuthService) VerifySignInLink(token string) (models.User, error) {
	linkID, secret, err := security.ParseSignInToken(token)
	if err != nil {
		return models.User{}, ErrSignInLinkInvalid
	}

	link, err := service.links.FindByID(linkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrSignInLinkInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load sign-in link: %w", err)
	}

	now := service.now().UTC()
	if link.UsedAt != nil {
		return models.User{}, ErrSignInLinkInvalid
	}
	if !link.Usable(now) {
		return models.User{}, ErrSignInLinkExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(link.SecretHash), []byte(secret)) != nil {
		return models.User{}, ErrSignInLinkInvalid
	}

	consumed, err := service.links.MarkUsed(link.ID, now)
	if err != nil {
		return models.User{}, fmt.Errorf("consume sign-in link: %w", err)
	}
	if !consumed {
		return models.User{}, ErrSignInLinkInvalid
	}

	user, err := service.findOrCreateUser(link.Email, now)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.TouchLastSignIn(user.ID, now); err != nil {
		return models.User{}, fmt.Errorf("touch last sign in: %w", err)
	}
	user.LastSignInAt = &now
	return user, nil
}

func (service *AuthService) PruneExpiredLinks() (int64, error) {
	return service.links.DeleteExpired(service.now().UTC())
}

func (service *AuthService) findOrCreateUser(email string, now time.Time) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	user = models.User{Email: email, CreatedAt: now}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
