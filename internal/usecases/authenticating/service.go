// Package authenticating cuida de login, tokens JWT e da gestão de usuários
package authenticating

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/internal/usecases/access"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"github.com/vfg2006/recovery-crm-api/pkg/log"
	"github.com/vfg2006/recovery-crm-api/pkg/metrics"
	"github.com/vfg2006/recovery-crm-api/pkg/utils"
	"github.com/vfg2006/recovery-crm-api/pkg/validation"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength         = 8
	temporaryPasswordLength   = 10
	temporaryPasswordSymbols  = "!@#$%&*"
	temporaryPasswordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	defaultTokenTTL           = 24 * time.Hour
)

type Authenticator interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserProfile(ctx context.Context, actor *domain.Actor) (*domain.User, error)
	ChangePassword(ctx context.Context, actor *domain.Actor, userID string, req domain.ChangePasswordRequest) error
	ValidatePasswordStrength(password string) error

	CreateUser(ctx context.Context, actor *domain.Actor, req domain.CreateUserRequest) (*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.Actor, id string, req domain.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.Actor, id string) error
	ListUsers(ctx context.Context, actor *domain.Actor) ([]*domain.User, error)
	GetUser(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error)
	ResetPassword(ctx context.Context, actor *domain.Actor, id string) (*domain.ResetPasswordResponse, error)
}

type Service struct {
	userRepo repository.UserRepository
	leadRepo repository.LeadRepository
	cfg      config.Auth
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, leadRepo repository.LeadRepository, cfg config.Auth) Authenticator {
	return &Service{
		userRepo: userRepo,
		leadRepo: leadRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Login valida as credenciais e emite o token; usuário inexistente e senha errada têm a mesma resposta
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Email = handleEmail(req.Email)
	if messages := validation.Struct(req); len(messages) > 0 {
		return nil, domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, strings.Join(messages, "; "))
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao consultar usuário no banco de dados")
	}

	if user == nil {
		metrics.RecordLoginAttempt("unknown_user")
		log.ForContext(ctx).WithField("email", req.Email).Warn("Tentativa de login com email desconhecido")
		return nil, credentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.RecordLoginAttempt("invalid_password")
		log.ForContext(ctx).WithField("user_id", user.ID).Warn("Tentativa de login com senha incorreta")
		return nil, credentialsError()
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, NewAuthError(domain.ErrInternal, err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	metrics.RecordLoginAttempt("success")
	log.ForContext(ctx).WithField("user_id", user.ID).Info("Login realizado")

	user.PasswordHash = ""
	return &domain.LoginResponse{Token: token, User: user}, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	ttl := s.cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := s.now()
	claims := domain.Claims{
		UserID:             user.ID,
		UserName:           user.Name,
		UserEmail:          user.Email,
		UserRole:           user.Role,
		MustChangePassword: user.MustChangePassword,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(domain.ErrUnauthenticated, ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(domain.ErrUnauthenticated, ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, NewAuthError(domain.ErrUnauthenticated, ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

func (s *Service) GetUserProfile(ctx context.Context, actor *domain.Actor) (*domain.User, error) {
	if err := access.RequireActor(actor); err != nil {
		return nil, err
	}

	return s.findUser(ctx, actor.ID)
}

// ValidatePasswordStrength exige pelo menos 8 caracteres com maiúscula, minúscula e número
func (s *Service) ValidatePasswordStrength(password string) error {
	return validatePasswordStrength(password)
}

func validatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return weakPasswordError(fmt.Sprintf("A senha deve conter pelo menos %d caracteres", MinPasswordLength))
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return weakPasswordError("A senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return weakPasswordError("A senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return weakPasswordError("A senha deve conter pelo menos um número")
	}

	return nil
}

// ChangePassword permite que um usuário altere a própria senha, inclusive a temporária
func (s *Service) ChangePassword(ctx context.Context, actor *domain.Actor, userID string, req domain.ChangePasswordRequest) error {
	if err := access.RequireActor(actor); err != nil {
		return err
	}

	if actor.ID != userID {
		return domain.NewForbiddenError("Você só pode alterar a sua própria senha")
	}

	if messages := validation.Struct(req); len(messages) > 0 {
		return domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, strings.Join(messages, "; "))
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return NewAuthError(domain.ErrInvalidInput, ErrPasswordMismatch, apiErrors.ErrInvalidRequest, "Senha atual incorreta")
	}

	if req.CurrentPassword == req.NewPassword {
		return NewAuthError(domain.ErrInvalidInput, ErrSamePassword, apiErrors.ErrWeakPassword, "A nova senha deve ser diferente da atual")
	}

	if err := validatePasswordStrength(req.NewPassword); err != nil {
		return err
	}

	now := s.now()
	if err := s.setPassword(user, req.NewPassword, false, now); err != nil {
		return err
	}

	activity := newActivity(actor, domain.ActivityPasswordChanged,
		fmt.Sprintf("Usuário %s alterou a senha", user.Name), user.ID, now)

	if err := s.userRepo.Update(ctx, user, activity); err != nil {
		return domain.NewInternalError(err, "Erro ao atualizar senha")
	}

	log.ForContext(ctx).WithField("user_id", user.ID).Info("Senha alterada")
	return nil
}

func (s *Service) CreateUser(ctx context.Context, actor *domain.Actor, req domain.CreateUserRequest) (*domain.User, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = handleEmail(req.Email)
	if messages := validation.Struct(req); len(messages) > 0 {
		return nil, domain.NewInvalidInputError(apiErrors.ErrMissingRequiredData, strings.Join(messages, "; "))
	}

	if err := s.checkEmailDomain(req.Email); err != nil {
		return nil, err
	}

	if err := validatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	if err := s.ensureEmailAvailable(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		ID:        utils.NewID(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.setPassword(user, req.Password, false, now); err != nil {
		return nil, err
	}

	activity := newActivity(actor, domain.ActivityUserCreated,
		fmt.Sprintf("Usuário %s foi criado", user.Name), user.ID, now)

	if err := s.userRepo.Create(ctx, user, activity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTakenError()
		}
		return nil, domain.NewInternalError(err, "Erro ao criar usuário")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":  user.ID,
		"role":     user.Role,
		"actor_id": actor.ID,
	}).Info("Usuário criado")

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, actor *domain.Actor, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	if messages := validation.Struct(req); len(messages) > 0 {
		return nil, domain.NewInvalidInputError(apiErrors.ErrInvalidFormat, strings.Join(messages, "; "))
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		email := handleEmail(*req.Email)
		if email != user.Email {
			if err := s.checkEmailDomain(email); err != nil {
				return nil, err
			}
			if err := s.ensureEmailAvailable(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}

	if req.Role != nil && *req.Role != user.Role {
		if user.Role == domain.RoleVendedor {
			count, err := s.leadRepo.CountByOwner(ctx, user.ID)
			if err != nil {
				return nil, domain.NewInternalError(err, "Erro ao contar leads do usuário")
			}
			if count > 0 {
				return nil, domain.NewInvalidInputError(apiErrors.ErrUserHasLeads,
					fmt.Sprintf("Não é possível alterar o papel de usuário com %d leads atribuídos", count))
			}
		}
		user.Role = *req.Role
	}

	if req.Password != nil {
		if err := validatePasswordStrength(*req.Password); err != nil {
			return nil, err
		}
		if err := s.setPassword(user, *req.Password, false, now); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = now

	activity := newActivity(actor, domain.ActivityUserUpdated,
		fmt.Sprintf("Usuário %s foi atualizado", user.Name), user.ID, now)

	if err := s.userRepo.Update(ctx, user, activity); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, emailTakenError()
		}
		return nil, domain.NewInternalError(err, "Erro ao atualizar usuário")
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser recusa a própria conta e usuários que ainda são responsáveis por leads
func (s *Service) DeleteUser(ctx context.Context, actor *domain.Actor, id string) error {
	if err := access.RequireDiretoria(actor); err != nil {
		return err
	}

	if id == actor.ID {
		return domain.NewInvalidInputError(apiErrors.ErrSelfDelete, "Você não pode excluir o seu próprio usuário")
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.leadRepo.CountByOwner(ctx, id)
	if err != nil {
		return domain.NewInternalError(err, "Erro ao contar leads do usuário")
	}

	if count > 0 {
		return userHasLeadsError(count)
	}

	activity := newActivity(actor, domain.ActivityUserDeleted,
		fmt.Sprintf("Usuário %s foi excluído", user.Name), user.ID, s.now())

	if err := s.userRepo.Delete(ctx, id, activity); err != nil {
		// lead atribuído entre a contagem e a exclusão
		if errors.Is(err, repository.ErrReferenced) {
			return domain.NewInvalidInputError(apiErrors.ErrUserHasLeads, "Não é possível excluir usuário com leads atribuídos")
		}
		return domain.NewInternalError(err, "Erro ao excluir usuário")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":  id,
		"actor_id": actor.ID,
	}).Info("Usuário excluído")

	return nil
}

func (s *Service) ListUsers(ctx context.Context, actor *domain.Actor) ([]*domain.User, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao listar usuários")
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	return users, nil
}

func (s *Service) GetUser(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ResetPassword gera uma senha temporária que deve ser trocada no próximo login
func (s *Service) ResetPassword(ctx context.Context, actor *domain.Actor, id string) (*domain.ResetPasswordResponse, error) {
	if err := access.RequireDiretoria(actor); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	password, err := GenerateTemporaryPassword()
	if err != nil {
		return nil, NewAuthError(domain.ErrInternal, err, apiErrors.ErrInternalServer, "Erro ao gerar senha temporária")
	}

	now := s.now()
	if err := s.setPassword(user, password, true, now); err != nil {
		return nil, err
	}

	activity := newActivity(actor, domain.ActivityPasswordReset,
		fmt.Sprintf("Senha do usuário %s foi redefinida", user.Name), user.ID, now)

	if err := s.userRepo.Update(ctx, user, activity); err != nil {
		return nil, domain.NewInternalError(err, "Erro ao redefinir senha")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":  user.ID,
		"actor_id": actor.ID,
	}).Info("Senha temporária gerada")

	return &domain.ResetPasswordResponse{TemporaryPassword: password}, nil
}

// GenerateTemporaryPassword gera 10 caracteres com ao menos uma maiúscula, uma minúscula, um número e um símbolo
func GenerateTemporaryPassword() (string, error) {
	body, err := gonanoid.Generate(temporaryPasswordAlphabet, temporaryPasswordLength-4)
	if err != nil {
		return "", err
	}

	password := []byte(body)
	for _, charset := range []string{
		"ABCDEFGHJKLMNPQRSTUVWXYZ",
		"abcdefghijkmnopqrstuvwxyz",
		"23456789",
		temporaryPasswordSymbols,
	} {
		char, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	// Embaralhar a senha para que os caracteres obrigatórios não fiquem no final
	for i := len(password) - 1; i > 0; i-- {
		j, err := randomInt(int64(i + 1))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

// getRandomChar retorna um caractere aleatório do conjunto fornecido
func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

func (s *Service) setPassword(user *domain.User, password string, temporary bool, now time.Time) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return NewAuthError(domain.ErrInternal, err, apiErrors.ErrInternalServer, "Erro ao processar senha")
	}

	user.PasswordHash = string(hashedPassword)
	user.IsTemporaryPassword = temporary
	user.MustChangePassword = temporary
	user.LastPasswordChange = &now
	user.UpdatedAt = now
	return nil
}

func (s *Service) findUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError(err, "Erro ao buscar usuário")
	}

	if user == nil {
		return nil, domain.NewNotFoundError(apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	return user, nil
}

func (s *Service) ensureEmailAvailable(ctx context.Context, email, ownerID string) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.NewInternalError(err, "Erro ao consultar usuário no banco de dados")
	}

	if existing != nil && existing.ID != ownerID {
		return emailTakenError()
	}

	return nil
}

// checkEmailDomain aplica o domínio permitido quando configurado
func (s *Service) checkEmailDomain(email string) error {
	allowed := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s.cfg.AllowedEmailDomain), "@"))
	if allowed == "" {
		return nil
	}

	if !strings.HasSuffix(email, "@"+allowed) {
		return NewAuthError(domain.ErrInvalidInput, ErrEmailDomainNotAllowed, apiErrors.ErrEmailDomainNotAllowed,
			fmt.Sprintf("Apenas emails do domínio %s são permitidos", allowed))
	}

	return nil
}

func emailTakenError() *domain.Error {
	return domain.NewConflictError(apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
}

func userHasLeadsError(count int) *domain.Error {
	return domain.NewInvalidInputError(apiErrors.ErrUserHasLeads,
		fmt.Sprintf("Não é possível excluir usuário com %d leads atribuídos", count))
}

func newActivity(actor *domain.Actor, tipo domain.ActivityType, descricao string, targetUserID string, now time.Time) *domain.Activity {
	return &domain.Activity{
		ID:        utils.NewID(),
		UserID:    actor.ID,
		Tipo:      tipo,
		Descricao: descricao,
		Metadata:  domain.ActivityMetadata{TargetUserID: &targetUserID},
		CreatedAt: now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
