package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"

	"ratehubBack/internal/models"
	"ratehubBack/utils"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UserExists(ctx context.Context, id int) (bool, error)
	UpdatePassword(ctx context.Context, userID int, hash string) error
	CreateSession(ctx context.Context, session models.Session) error
}

type TemplateLister interface {
	GetPublishedTemplates(ctx context.Context) ([]models.TemplateOption, error)
}

type ItemGetter interface {
	GetItemByID(ctx context.Context, id int) (models.Item, error)
}

type UserService struct {
	UserRepo        UserRepo
	RatingRepo      RatingRepo
	Templates       TemplateLister
	Items           ItemGetter
	Tokens          *utils.Manager
	Cache           *redis.Client
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

const resetCodeTTL = time.Hour

func resetCodeKey(email string) string {
	return "reset_code:" + email
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return models.User{}, models.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return s.UserRepo.CreateUser(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	})
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.User, models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.User{}, models.Tokens{}, models.ErrInvalidCredentials
	}

	access, err := s.Tokens.NewJWT(user.ID, s.AccessTokenTTL)
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}
	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.RefreshTokenTTL),
	})
	if err != nil {
		return models.User{}, models.Tokens{}, err
	}

	user.Password = ""
	return user, models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

// RequestPasswordReset stores a short-lived verification code for the
// account. Delivering it to the user's mailbox is the email collaborator's
// job; the code is returned so the caller can hand it over.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if _, err := s.UserRepo.GetUserByEmail(ctx, email); err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := s.Cache.Set(ctx, resetCodeKey(email), code, resetCodeTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *UserService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	stored, err := s.Cache.Get(ctx, resetCodeKey(req.Email)).Result()
	if err != nil || stored != req.Code {
		return models.ErrInvalidResetCode
	}
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	s.Cache.Del(ctx, resetCodeKey(req.Email))
	return nil
}

// GetUserRatings groups the user's rating history by template, pulling the
// year and poster out of each rated item's field values.
func (s *UserService) GetUserRatings(ctx context.Context, userID int) ([]models.UserRatingsGroup, error) {
	exists, err := s.UserRepo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrUserNotFound
	}

	templates, err := s.Templates.GetPublishedTemplates(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.RatingRepo.ListRatingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byTemplate := map[int][]models.RatedItem{}
	for _, rating := range ratings {
		item, err := s.Items.GetItemByID(ctx, rating.ItemID)
		if err != nil {
			continue
		}
		entry := models.RatedItem{
			ID:      item.ID,
			Title:   item.Title,
			Slug:    item.Slug,
			Rating:  rating.Rating,
			Comment: rating.ReviewText,
		}
		for _, fv := range item.FieldValues {
			if fv.Field == nil {
				continue
			}
			switch strings.ToLower(fv.Field.Name) {
			case "year", "release_year":
				if fv.Value.Kind == models.KindNumber {
					entry.Year = int(math.Floor(fv.Value.Number))
				}
			case "poster", "image":
				if fv.Value.Kind == models.KindText {
					entry.Poster = fv.Value.Text
				}
			}
		}
		byTemplate[item.TemplateID] = append(byTemplate[item.TemplateID], entry)
	}

	groups := make([]models.UserRatingsGroup, 0, len(templates))
	for _, t := range templates {
		groups = append(groups, models.UserRatingsGroup{
			TemplateID:          t.ID,
			TemplateName:        t.Name,
			TemplateDisplayName: t.DisplayName,
			Ratings:             byTemplate[t.ID],
		})
	}
	return groups, nil
}
