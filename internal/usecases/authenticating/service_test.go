package authenticating

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/recovery-crm-api/infrastructure/repository"
	"github.com/vfg2006/recovery-crm-api/infrastructure/repository/mocks"
	"github.com/vfg2006/recovery-crm-api/internal/config"
	"github.com/vfg2006/recovery-crm-api/internal/domain"
	"github.com/vfg2006/recovery-crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var (
	diretoria = &domain.Actor{ID: "dir-1", Name: "Diretora", Role: domain.RoleDiretoria}
	vendedor  = &domain.Actor{ID: "vend-1", Name: "Ana", Role: domain.RoleVendedor}
)

func stringPtr(s string) *string {
	return &s
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestService(t *testing.T, now time.Time, cfg config.Auth) (*Service, *mocks.MockUserRepository, *mocks.MockLeadRepository) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	leads := mocks.NewMockLeadRepository(ctrl)

	if cfg.Secret == "" {
		cfg.Secret = "segredo-de-teste"
	}

	return &Service{
		userRepo: users,
		leadRepo: leads,
		cfg:      cfg,
		now:      func() time.Time { return now },
	}, users, leads
}

func codeOf(t *testing.T, err error) string {
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	stored := &domain.User{
		ID:           "vend-1",
		Name:         "Ana",
		Email:        "ana@empresa.com.br",
		PasswordHash: hashPassword(t, "Senha123"),
		Role:         domain.RoleVendedor,
	}

	t.Run("credenciais válidas emitem token", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{TokenTTL: time.Hour})
		user := *stored
		users.EXPECT().GetByEmail(ctx, "ana@empresa.com.br").Return(&user, nil)

		resp, err := service.Login(ctx, domain.LoginRequest{Email: "  Ana@Empresa.com.br ", Password: "Senha123"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Empty(t, resp.User.PasswordHash)

		claims, err := service.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "vend-1", claims.UserID)
		assert.Equal(t, domain.RoleVendedor, claims.UserRole)
		assert.Equal(t, &domain.Actor{ID: "vend-1", Name: "Ana", Role: domain.RoleVendedor}, claims.Actor())
	})

	t.Run("senha incorreta", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		user := *stored
		users.EXPECT().GetByEmail(ctx, "ana@empresa.com.br").Return(&user, nil)

		_, err := service.Login(ctx, domain.LoginRequest{Email: "ana@empresa.com.br", Password: "errada"})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.True(t, IsCredentialsError(err))
		assert.Equal(t, apiErrors.ErrInvalidCredentials, codeOf(t, err))
	})

	t.Run("email desconhecido tem a mesma resposta", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByEmail(ctx, "ninguem@empresa.com.br").Return(nil, nil)

		_, err := service.Login(ctx, domain.LoginRequest{Email: "ninguem@empresa.com.br", Password: "Senha123"})

		assert.True(t, IsCredentialsError(err))
		assert.Equal(t, apiErrors.ErrInvalidCredentials, codeOf(t, err))
	})

	t.Run("dados ausentes", func(t *testing.T) {
		service, _, _ := newTestService(t, now, config.Auth{})

		_, err := service.Login(ctx, domain.LoginRequest{Email: "", Password: ""})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestValidateToken(t *testing.T) {
	issuedAt := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	user := &domain.User{ID: "dir-1", Name: "Diretora", Email: "dir@empresa.com.br", Role: domain.RoleDiretoria}

	issuer, _, _ := newTestService(t, issuedAt, config.Auth{TokenTTL: time.Hour})
	token, err := issuer.generateJWT(user)
	require.NoError(t, err)

	t.Run("token expirado", func(t *testing.T) {
		later, _, _ := newTestService(t, issuedAt.Add(2*time.Hour), config.Auth{TokenTTL: time.Hour})

		_, err := later.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.True(t, IsTokenError(err))
	})

	t.Run("assinatura com outro segredo", func(t *testing.T) {
		other, _, _ := newTestService(t, issuedAt, config.Auth{Secret: "outro-segredo"})

		_, err := other.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token malformado", func(t *testing.T) {
		_, err := issuer.ValidateToken("abc.def")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "senha válida", password: "Recupera1", valid: true},
		{name: "curta", password: "Ab1", valid: false},
		{name: "sem maiúscula", password: "recupera1", valid: false},
		{name: "sem minúscula", password: "RECUPERA1", valid: false},
		{name: "sem número", password: "Recuperar", valid: false},
	}

	service, _, _ := newTestService(t, time.Now(), config.Auth{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
			assert.Equal(t, apiErrors.ErrWeakPassword, codeOf(t, err))
		})
	}
}

func TestGenerateTemporaryPassword(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		password, err := GenerateTemporaryPassword()
		require.NoError(t, err)

		assert.Len(t, password, 10)
		assert.True(t, strings.ContainsAny(password, "ABCDEFGHJKLMNPQRSTUVWXYZ"), password)
		assert.True(t, strings.ContainsAny(password, "abcdefghijkmnopqrstuvwxyz"), password)
		assert.True(t, strings.ContainsAny(password, "0123456789"), password)
		assert.True(t, strings.ContainsAny(password, "!@#$%&*"), password)
		assert.NoError(t, validatePasswordStrength(password))

		seen[password] = true
	}

	assert.Greater(t, len(seen), 45)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("gera senha temporária e exige troca", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		target := &domain.User{ID: "vend-1", Name: "Ana", PasswordHash: hashPassword(t, "Antiga123")}

		users.EXPECT().GetByID(ctx, "vend-1").Return(target, nil)

		var saved *domain.User
		users.EXPECT().
			Update(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User, activity *domain.Activity) error {
				saved = user
				assert.Equal(t, domain.ActivityPasswordReset, activity.Tipo)
				assert.Equal(t, "dir-1", activity.UserID)
				require.NotNil(t, activity.Metadata.TargetUserID)
				assert.Equal(t, "vend-1", *activity.Metadata.TargetUserID)
				return nil
			})

		resp, err := service.ResetPassword(ctx, diretoria, "vend-1")

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.True(t, saved.IsTemporaryPassword)
		assert.True(t, saved.MustChangePassword)
		require.NotNil(t, saved.LastPasswordChange)
		assert.True(t, saved.LastPasswordChange.Equal(now))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(resp.TemporaryPassword)))
	})

	t.Run("vendedor não redefine senhas", func(t *testing.T) {
		service, _, _ := newTestService(t, now, config.Auth{})

		_, err := service.ResetPassword(ctx, vendedor, "vend-2")

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByID(ctx, "vend-9").Return(nil, nil)

		_, err := service.ResetPassword(ctx, diretoria, "vend-9")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("troca a senha temporária", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		user := &domain.User{
			ID:                  "vend-1",
			Name:                "Ana",
			PasswordHash:        hashPassword(t, "Tmp#a8K2pq"),
			IsTemporaryPassword: true,
			MustChangePassword:  true,
		}

		users.EXPECT().GetByID(ctx, "vend-1").Return(user, nil)
		users.EXPECT().
			Update(ctx, user, gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User, activity *domain.Activity) error {
				assert.Equal(t, domain.ActivityPasswordChanged, activity.Tipo)
				return nil
			})

		err := service.ChangePassword(ctx, vendedor, "vend-1", domain.ChangePasswordRequest{
			CurrentPassword: "Tmp#a8K2pq",
			NewPassword:     "NovaSenha2026",
		})

		require.NoError(t, err)
		assert.False(t, user.IsTemporaryPassword)
		assert.False(t, user.MustChangePassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NovaSenha2026")))
	})

	t.Run("somente a própria senha", func(t *testing.T) {
		service, _, _ := newTestService(t, now, config.Auth{})

		err := service.ChangePassword(ctx, diretoria, "vend-1", domain.ChangePasswordRequest{
			CurrentPassword: "Qualquer1",
			NewPassword:     "NovaSenha2026",
		})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("senha atual incorreta", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByID(ctx, "vend-1").Return(&domain.User{ID: "vend-1", PasswordHash: hashPassword(t, "Atual1234")}, nil)

		err := service.ChangePassword(ctx, vendedor, "vend-1", domain.ChangePasswordRequest{
			CurrentPassword: "Errada123",
			NewPassword:     "NovaSenha2026",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("nova senha fraca", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByID(ctx, "vend-1").Return(&domain.User{ID: "vend-1", PasswordHash: hashPassword(t, "Atual1234")}, nil)

		err := service.ChangePassword(ctx, vendedor, "vend-1", domain.ChangePasswordRequest{
			CurrentPassword: "Atual1234",
			NewPassword:     "fraca",
		})

		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	req := domain.CreateUserRequest{
		Name:     " Bruno ",
		Email:    "Bruno@Empresa.com.br",
		Password: "Vendas2026",
		Role:     domain.RoleVendedor,
	}

	t.Run("cria vendedor", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{AllowedEmailDomain: "empresa.com.br"})

		users.EXPECT().GetByEmail(ctx, "bruno@empresa.com.br").Return(nil, nil)
		users.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User, activity *domain.Activity) error {
				assert.NotEmpty(t, user.PasswordHash)
				assert.Equal(t, domain.ActivityUserCreated, activity.Tipo)
				assert.Equal(t, "Usuário Bruno foi criado", activity.Descricao)
				return nil
			})

		user, err := service.CreateUser(ctx, diretoria, req)

		require.NoError(t, err)
		assert.Equal(t, "Bruno", user.Name)
		assert.Equal(t, "bruno@empresa.com.br", user.Email)
		assert.Empty(t, user.PasswordHash)
		assert.False(t, user.MustChangePassword)
	})

	t.Run("email já cadastrado", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByEmail(ctx, "bruno@empresa.com.br").Return(&domain.User{ID: "vend-2"}, nil)

		_, err := service.CreateUser(ctx, diretoria, req)

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, apiErrors.ErrUserAlreadyExists, codeOf(t, err))
	})

	t.Run("email duplicado detectado pelo banco", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByEmail(ctx, "bruno@empresa.com.br").Return(nil, nil)
		users.EXPECT().Create(ctx, gomock.Any(), gomock.Any()).Return(repository.ErrDuplicate)

		_, err := service.CreateUser(ctx, diretoria, req)

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("domínio não permitido", func(t *testing.T) {
		service, _, _ := newTestService(t, now, config.Auth{AllowedEmailDomain: "@outra.com"})

		_, err := service.CreateUser(ctx, diretoria, req)

		assert.ErrorIs(t, err, ErrEmailDomainNotAllowed)
		assert.Equal(t, apiErrors.ErrEmailDomainNotAllowed, codeOf(t, err))
	})

	t.Run("papel inválido", func(t *testing.T) {
		service, _, _ := newTestService(t, now, config.Auth{})
		invalid := req
		invalid.Role = "GERENTE"

		_, err := service.CreateUser(ctx, diretoria, invalid)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("altera nome e papel", func(t *testing.T) {
		service, users, leads := newTestService(t, now, config.Auth{})
		role := domain.RoleDiretoria
		stored := &domain.User{ID: "vend-1", Name: "Ana", Email: "ana@empresa.com.br", Role: domain.RoleVendedor}

		users.EXPECT().GetByID(ctx, "vend-1").Return(stored, nil)
		leads.EXPECT().CountByOwner(ctx, "vend-1").Return(0, nil)
		users.EXPECT().Update(ctx, stored, gomock.Any()).Return(nil)

		user, err := service.UpdateUser(ctx, diretoria, "vend-1", domain.UpdateUserRequest{Name: stringPtr("Ana Paula"), Role: &role})

		require.NoError(t, err)
		assert.Equal(t, "Ana Paula", user.Name)
		assert.Equal(t, domain.RoleDiretoria, user.Role)
		assert.True(t, user.UpdatedAt.Equal(now))
	})

	t.Run("vendedor com leads não muda de papel", func(t *testing.T) {
		service, users, leads := newTestService(t, now, config.Auth{})
		role := domain.RoleDiretoria
		stored := &domain.User{ID: "vend-1", Name: "Ana", Email: "ana@empresa.com.br", Role: domain.RoleVendedor}

		users.EXPECT().GetByID(ctx, "vend-1").Return(stored, nil)
		leads.EXPECT().CountByOwner(ctx, "vend-1").Return(2, nil)

		_, err := service.UpdateUser(ctx, diretoria, "vend-1", domain.UpdateUserRequest{Role: &role})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, apiErrors.ErrUserHasLeads, codeOf(t, err))
	})

	t.Run("mesmo papel não consulta leads", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		role := domain.RoleVendedor
		stored := &domain.User{ID: "vend-1", Name: "Ana", Email: "ana@empresa.com.br", Role: domain.RoleVendedor}

		users.EXPECT().GetByID(ctx, "vend-1").Return(stored, nil)
		users.EXPECT().Update(ctx, stored, gomock.Any()).Return(nil)

		user, err := service.UpdateUser(ctx, diretoria, "vend-1", domain.UpdateUserRequest{Role: &role})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleVendedor, user.Role)
	})

	t.Run("email de outro usuário", func(t *testing.T) {
		service, users, _ := newTestService(t, now, config.Auth{})
		stored := &domain.User{ID: "vend-1", Email: "ana@empresa.com.br"}

		users.EXPECT().GetByID(ctx, "vend-1").Return(stored, nil)
		users.EXPECT().GetByEmail(ctx, "bruno@empresa.com.br").Return(&domain.User{ID: "vend-2"}, nil)

		_, err := service.UpdateUser(ctx, diretoria, "vend-1", domain.UpdateUserRequest{Email: stringPtr("bruno@empresa.com.br")})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("não exclui a si mesmo", func(t *testing.T) {
		service, _, _ := newTestService(t, now, config.Auth{})

		err := service.DeleteUser(ctx, diretoria, "dir-1")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, apiErrors.ErrSelfDelete, codeOf(t, err))
	})

	t.Run("usuário com leads atribuídos", func(t *testing.T) {
		service, users, leads := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByID(ctx, "vend-1").Return(&domain.User{ID: "vend-1", Name: "Ana"}, nil)
		leads.EXPECT().CountByOwner(ctx, "vend-1").Return(3, nil)

		err := service.DeleteUser(ctx, diretoria, "vend-1")

		var domainErr *domain.Error
		require.ErrorAs(t, err, &domainErr)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, apiErrors.ErrUserHasLeads, domainErr.Code)
		assert.Equal(t, "Não é possível excluir usuário com 3 leads atribuídos", domainErr.Message())
	})

	t.Run("exclui usuário sem leads", func(t *testing.T) {
		service, users, leads := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByID(ctx, "vend-1").Return(&domain.User{ID: "vend-1", Name: "Ana"}, nil)
		leads.EXPECT().CountByOwner(ctx, "vend-1").Return(0, nil)
		users.EXPECT().
			Delete(ctx, "vend-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, activity *domain.Activity) error {
				assert.Equal(t, domain.ActivityUserDeleted, activity.Tipo)
				assert.Nil(t, activity.LeadID)
				return nil
			})

		assert.NoError(t, service.DeleteUser(ctx, diretoria, "vend-1"))
	})

	t.Run("lead atribuído durante a exclusão", func(t *testing.T) {
		service, users, leads := newTestService(t, now, config.Auth{})
		users.EXPECT().GetByID(ctx, "vend-1").Return(&domain.User{ID: "vend-1"}, nil)
		leads.EXPECT().CountByOwner(ctx, "vend-1").Return(0, nil)
		users.EXPECT().Delete(ctx, "vend-1", gomock.Any()).Return(repository.ErrReferenced)

		err := service.DeleteUser(ctx, diretoria, "vend-1")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestListUsersHidesPasswordHash(t *testing.T) {
	ctx := context.Background()
	service, users, _ := newTestService(t, time.Now(), config.Auth{})

	users.EXPECT().List(ctx).Return([]*domain.User{
		{ID: "vend-1", PasswordHash: "hash", LeadCount: 4},
	}, nil)

	result, err := service.ListUsers(ctx, diretoria)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Empty(t, result[0].PasswordHash)
	assert.Equal(t, 4, result[0].LeadCount)
}
