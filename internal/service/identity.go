package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/alexivanou/geotrip-api/internal/apperr"
	"github.com/alexivanou/geotrip-api/internal/auth"
	"github.com/alexivanou/geotrip-api/internal/model"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const invalidCredentials = "invalid credentials"

// Register creates a regular account.
func (s *Service) Register(ctx context.Context, in model.RegisterInput) (model.User, error) {
	users, err := s.CreateUsers(ctx, []model.UserInput{{RegisterInput: in, Role: model.RoleUser}})
	if err != nil {
		return model.User{}, err
	}
	return users[0], nil
}

// CreateUsers inserts one or more accounts. Roles default to user.
func (s *Service) CreateUsers(ctx context.Context, in []model.UserInput) ([]model.User, error) {
	if len(in) == 0 {
		return nil, apperr.BadRequestf("at least one user is required")
	}
	batch := len(in) > 1

	rows := make([]model.User, 0, len(in))
	for i, item := range in {
		user, err := s.newUser(item)
		if err != nil {
			return nil, itemErr(batch, i, err)
		}
		rows = append(rows, user)
	}

	err := s.inTx(ctx, "create_users", func(ctx context.Context, tx *sqlx.Tx) error {
		userNames := map[string]bool{}
		emails := map[string]bool{}
		for i, user := range rows {
			if userNames[user.UserName] {
				return itemErr(batch, i, apperr.Conflictf("user_name %q is repeated", user.UserName))
			}
			if emails[user.Email] {
				return itemErr(batch, i, apperr.Conflictf("email %q is repeated", user.Email))
			}
			userNames[user.UserName] = true
			emails[user.Email] = true

			if err := s.checkUserUnique(ctx, tx, user); err != nil {
				return itemErr(batch, i, err)
			}
		}
		return s.repos.User.Insert(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	s.logger.Info("Users created", zap.Int("count", len(rows)))
	return rows, nil
}

func (s *Service) newUser(in model.UserInput) (model.User, error) {
	user := model.User{
		ID:       newID(),
		Name:     strings.TrimSpace(in.Name),
		UserName: strings.TrimSpace(in.UserName),
		Email:    strings.TrimSpace(in.Email),
		Role:     strings.TrimSpace(in.Role),
	}
	birth := strings.TrimSpace(in.BirthDate)
	if err := required(
		field{"name", user.Name},
		field{"user_name", user.UserName},
		field{"email", user.Email},
		field{"password", in.Password},
		field{"birth_date", birth},
	); err != nil {
		return model.User{}, err
	}
	if err := checkEmail(user.Email); err != nil {
		return model.User{}, err
	}
	if err := checkPassword(in.Password); err != nil {
		return model.User{}, err
	}

	date, err := model.ParseDate(birth)
	if err != nil {
		return model.User{}, apperr.BadRequestf("%s", err.Error())
	}
	user.BirthDate = date

	switch user.Role {
	case "":
		user.Role = model.RoleUser
	case model.RoleUser, model.RoleAdmin:
	default:
		return model.User{}, apperr.BadRequestf("role must be %q or %q", model.RoleUser, model.RoleAdmin)
	}

	if in.Location != nil {
		if loc := strings.TrimSpace(*in.Location); loc != "" {
			user.Location = &loc
		}
	}
	if err := userLimits(user); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}
	user.PasswordHash = hash
	return user, nil
}

func checkEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.BadRequestf("invalid email %q", email)
	}
	return nil
}

// checkUserUnique rejects a user_name or email held by another account.
func (s *Service) checkUserUnique(ctx context.Context, tx *sqlx.Tx, user model.User) error {
	other, found, err := s.repos.User.FindByUserName(ctx, tx, user.UserName)
	if err != nil {
		return err
	}
	if found && other.ID != user.ID {
		return apperr.Conflictf("user_name %q is already taken", user.UserName)
	}
	other, found, err = s.repos.User.FindByEmail(ctx, tx, user.Email)
	if err != nil {
		return err
	}
	if found && other.ID != user.ID {
		return apperr.Conflictf("email %q is already registered", user.Email)
	}
	return nil
}

// Login checks the credentials and issues an access token. Unknown accounts
// and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, in model.LoginInput) (model.AuthResponse, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		identifier = strings.TrimSpace(in.Email)
	}
	if err := required(field{"identifier", identifier}, field{"password", in.Password}); err != nil {
		return model.AuthResponse{}, err
	}

	ctx, cancel := s.read(ctx)
	defer cancel()

	user, found, err := s.repos.User.FindByIdentifier(ctx, s.db(), identifier)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("failed to find user: %w", err)
	}

	var ok bool
	if found {
		ok = s.hasher.Verify(user.PasswordHash, in.Password)
	} else {
		ok = s.hasher.VerifyMissing(in.Password)
	}
	if !ok {
		return model.AuthResponse{}, apperr.New(apperr.Unauthorized, invalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{
		AccessToken: token.Raw,
		ExpiresAt:   token.ExpiresAt.Unix(),
		User:        user,
	}, nil
}

// Principal is the caller identified by an access token.
type Principal struct {
	UserID string
	Role   string
}

// Authenticate verifies a bearer token.
func (s *Service) Authenticate(raw string) (Principal, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return Principal{}, apperr.Wrap(apperr.Unauthorized, err, "invalid or expired token")
		}
		return Principal{}, err
	}
	return Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (model.User, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	user, found, err := s.repos.User.Get(ctx, s.db(), userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return model.User{}, apperr.NotFoundf("user %s not found", userID)
	}
	return user, nil
}

// UpdateProfile applies the present fields of patch to the caller's account.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch model.ProfilePatch) (model.User, error) {
	var birth *model.Date
	if patch.BirthDate != nil && strings.TrimSpace(*patch.BirthDate) != "" {
		d, err := model.ParseDate(strings.TrimSpace(*patch.BirthDate))
		if err != nil {
			return model.User{}, apperr.BadRequestf("%s", err.Error())
		}
		birth = &d
	}
	var hash string
	if patch.Password != nil && *patch.Password != "" {
		if err := checkPassword(*patch.Password); err != nil {
			return model.User{}, err
		}
		h, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return model.User{}, err
		}
		hash = h
	}

	var user model.User
	err := s.inTx(ctx, "update_profile", func(ctx context.Context, tx *sqlx.Tx) error {
		current, found, err := s.repos.User.Get(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFoundf("user %s not found", userID)
		}

		patchString(&current.Name, patch.Name)
		renamed := patchString(&current.UserName, patch.UserName)
		reemailed := patchString(&current.Email, patch.Email)
		if patch.Location != nil {
			if loc := strings.TrimSpace(*patch.Location); loc != "" {
				current.Location = &loc
			}
		}
		if birth != nil {
			current.BirthDate = *birth
		}
		if hash != "" {
			current.PasswordHash = hash
		}

		if reemailed {
			if err := checkEmail(current.Email); err != nil {
				return err
			}
		}
		if err := userLimits(current); err != nil {
			return err
		}
		if renamed || reemailed {
			if err := s.checkUserUnique(ctx, tx, current); err != nil {
				return err
			}
		}
		user = current
		return s.repos.User.Update(ctx, tx, current)
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	ctx, cancel := s.read(ctx)
	defer cancel()

	users, err := s.repos.User.List(ctx, s.db())
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the account with its favorites and visited rows.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	err := s.inTx(ctx, "delete_user", func(ctx context.Context, tx *sqlx.Tx) error {
		if _, found, err := s.repos.User.Get(ctx, tx, id); err != nil {
			return err
		} else if !found {
			return apperr.NotFoundf("user %s not found", id)
		}
		return s.repos.User.Delete(ctx, tx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("User deleted", zap.String("id", id))
	return nil
}
