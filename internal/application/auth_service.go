package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	repo "github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
	"github.com/oksasatya/campus-doctor-directory/internal/metrics"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
	"github.com/oksasatya/campus-doctor-directory/pkg/mailer"
	mailtpl "github.com/oksasatya/campus-doctor-directory/pkg/mailer/templates"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// AuthService drives an account from registration through verification and
// authenticates verified accounts. It holds no session state.
type AuthService struct {
	Repo           repo.UserRepository
	Mailer         mailer.Sender
	Logger         *logrus.Logger
	AppName        string
	AllowedDomains []string

	// GenCode and HashPassword are swappable for tests.
	GenCode      func() (string, error)
	HashPassword func(string) (string, error)
}

func NewAuthService(repo repo.UserRepository, sender mailer.Sender, logger *logrus.Logger, appName string, allowedDomains []string) *AuthService {
	return &AuthService{
		Repo:           repo,
		Mailer:         sender,
		Logger:         logger,
		AppName:        appName,
		AllowedDomains: allowedDomains,
		GenCode:        helpers.GenVerificationCode,
		HashPassword:   helpers.HashPassword,
	}
}

// Identity is what a successful verify or login hands back to the client.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAllowedEmail reports whether email ends with "@" plus an allow-listed domain.
func (s *AuthService) IsAllowedEmail(email string) bool {
	email = NormalizeEmail(email)
	for _, d := range s.AllowedDomains {
		if d != "" && strings.HasSuffix(email, "@"+d) && len(email) > len(d)+1 {
			return true
		}
	}
	return false
}

func (s *AuthService) domainMessage() string {
	if len(s.AllowedDomains) == 0 {
		return "Registration is closed: no email domains are allowed."
	}
	parts := make([]string, len(s.AllowedDomains))
	for i, d := range s.AllowedDomains {
		parts[i] = "@" + d
	}
	return "Email must end with " + strings.Join(parts, " or ") + "."
}

// Register creates an unverified account and sends its verification code.
// A delivery failure keeps the stored account and is reported as KindDelivery.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	u, err := s.register(ctx, name, email, password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(AsError(err).Kind.String()).Inc()
		return u, err
	}
	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return u, nil
}

func (s *AuthService) register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, newError(KindValidation, MsgNameRequired, nil)
	}
	if !s.IsAllowedEmail(email) {
		return nil, newError(KindValidation, s.domainMessage(), nil)
	}
	if len(password) < MinPasswordLength {
		return nil, newError(KindValidation, MsgShortPassword, nil)
	}

	code, err := s.GenCode()
	if err != nil {
		return nil, newError(KindStore, MsgRegistrationFailed, err)
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, newError(KindStore, MsgRegistrationFailed, err)
	}

	u := &entity.User{
		Name:             name,
		Email:            email,
		Password:         hash,
		VerificationCode: code,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, newError(KindConflict, MsgEmailTaken, err)
		}
		return nil, newError(KindStore, MsgRegistrationFailed, err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}

	if err := s.sendVerification(ctx, u); err != nil {
		return u, newError(KindDelivery, MsgDeliveryFailed, err)
	}
	return u, nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *entity.User) error {
	if s.Mailer == nil {
		return errors.New("no mail sender configured")
	}
	data := mailtpl.NewVerifyCodeData(s.AppName, u.Name, u.Email, u.VerificationCode)
	subject, text, html, err := mailtpl.Render(mailtpl.VerifyCode, data)
	if err != nil {
		return err
	}
	return s.Mailer.Send(ctx, mailer.Message{
		To:       u.Email,
		Subject:  subject,
		Text:     text,
		HTML:     html,
		Template: mailtpl.VerifyCode,
		Data:     mailtpl.ToMap(data),
	})
}

// Verify marks the account verified when email and code match a stored
// account. A wrong email and a wrong code are reported identically.
func (s *AuthService) Verify(ctx context.Context, email, code string) (*Identity, error) {
	id, err := s.verify(ctx, email, code)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues(AsError(err).Kind.String()).Inc()
		return nil, err
	}
	metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return id, nil
}

func (s *AuthService) verify(ctx context.Context, email, code string) (*Identity, error) {
	email = NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || !helpers.IsVerificationCode(code) {
		return nil, newError(KindInvalidCode, MsgInvalidCode, nil)
	}

	u, err := s.Repo.MarkVerified(ctx, email, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(KindInvalidCode, MsgInvalidCode, err)
		}
		return nil, newError(KindStore, MsgVerificationFailed, err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user verified")
	}
	return &Identity{Name: u.Name, Email: u.Email}, nil
}

// Login re-authenticates raw credentials. Unverified accounts are refused
// before the password is checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Identity, error) {
	id, err := s.login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(AsError(err).Kind.String()).Inc()
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return id, nil
}

func (s *AuthService) login(ctx context.Context, email, password string) (*Identity, error) {
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, newError(KindAuth, MsgInvalidCredentials, err)
		}
		return nil, newError(KindStore, MsgLoginFailed, err)
	}
	if !u.IsVerified {
		return nil, newError(KindUnverified, MsgNotVerified, nil)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, newError(KindAuth, MsgInvalidCredentials, nil)
	}
	return &Identity{Name: u.Name, Email: u.Email}, nil
}
