package identity

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LocalDelegate is a self-hosted identity provider: bcrypt password accounts
// in a SQL database with HS256 session tokens. It implements Delegate.
type LocalDelegate struct {
	db        *gorm.DB
	jwtSecret string

	mu       sync.Mutex
	handlers []SessionHandler
}

var _ Delegate = (*LocalDelegate)(nil)

// NewLocalDelegate creates a delegate backed by db, signing tokens with
// jwtSecret.
func NewLocalDelegate(db *gorm.DB, jwtSecret string) *LocalDelegate {
	return &LocalDelegate{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

func (d *LocalDelegate) Subscribe(h SessionHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

func (d *LocalDelegate) emit(p *Principal) {
	d.mu.Lock()
	handlers := make([]SessionHandler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.Unlock()

	for _, h := range handlers {
		h(p)
	}
}

func (d *LocalDelegate) SignUp(ctx context.Context, name, email, password string) (*Principal, error) {
	var existing Account
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, NewAuthError("auth/email-already-in-use", "an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Provider:     "password",
	}
	if err := d.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}

	p := account.principal()
	d.emit(p)
	return p, nil
}

func (d *LocalDelegate) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	var account Account
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, NewAuthError("auth/invalid-credential", "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, NewAuthError("auth/invalid-credential", "invalid email or password")
	}

	p := account.principal()
	d.emit(p)
	return p, nil
}

func (d *LocalDelegate) SignInWithProvider(ctx context.Context, providerID string, claim ProviderClaim) (*Principal, error) {
	if claim.Email == "" {
		return nil, NewAuthError("auth/missing-email", "the federated provider did not supply an email")
	}

	var account Account
	err := d.db.WithContext(ctx).Where("email = ?", claim.Email).First(&account).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = Account{
			ID:        uuid.New(),
			Name:      claim.Name,
			Email:     claim.Email,
			AvatarURL: claim.Avatar,
			Provider:  providerID,
		}
		if account.Name == "" {
			account.Name = "New User"
		}
		if err := d.db.WithContext(ctx).Create(&account).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		// Refresh the avatar the provider hands us on every login.
		if claim.Avatar != "" && account.AvatarURL != claim.Avatar {
			account.AvatarURL = claim.Avatar
			if err := d.db.WithContext(ctx).Save(&account).Error; err != nil {
				log.Printf("[Identity] failed to refresh avatar for %s: %v", account.Email, err)
			}
		}
	}

	p := account.principal()
	d.emit(p)
	return p, nil
}

func (d *LocalDelegate) SignOut(ctx context.Context) error {
	d.emit(nil)
	return nil
}

func (d *LocalDelegate) UpdateDisplay(ctx context.Context, subject, name, avatar string) error {
	id, err := uuid.Parse(subject)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"name": name}
	if avatar != "" {
		updates["avatar_url"] = avatar
	}
	return d.db.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Updates(updates).Error
}

// IssueToken mints a session token for the principal, valid for 24 hours.
func (d *LocalDelegate) IssueToken(p *Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":    p.Subject,
		"email":  p.Email,
		"name":   p.Name,
		"avatar": p.Avatar,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(d.jwtSecret))
}

// ValidateToken parses a session token back into its principal.
func (d *LocalDelegate) ValidateToken(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(d.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if _, err := uuid.Parse(sub); err != nil {
		return nil, err
	}

	p := &Principal{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		p.Name = name
	}
	if avatar, ok := claims["avatar"].(string); ok {
		p.Avatar = avatar
	}
	return p, nil
}
