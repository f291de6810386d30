package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"studentfees/cmd/security/password"
	"studentfees/cmd/student"
)

// Service implements the high-level session operations: registration, login,
// logout, the per-request authentication gate, and the ownership-gated record
// mutations.
//
// Every failure carries a student error kind so the API boundary can map it to
// an HTTP status without inspecting internals.
type Service struct {
	cfg    Config
	store  student.Store
	tokens *TokenManager
	hasher *password.Hasher
}

// Issued is the result of a successful login: the sanitized identity plus both
// freshly minted tokens.
type Issued struct {
	Student      student.View
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

// NewService constructs a Service with the provided store, token manager and
// password hasher.
func NewService(cfg Config, store student.Store, tokens *TokenManager, hasher *password.Hasher) *Service {
	return &Service{cfg: cfg, store: store, tokens: tokens, hasher: hasher}
}

// Register creates a new student record with fees unpaid.
//
// Inputs are validated non-empty after trimming; further shape validation is
// the frontend's concern. A duplicate email is a conflict.
func (s *Service) Register(ctx context.Context, fullname, email, pw string) (student.View, error) {
	const op = "session.Register"

	fullname = strings.TrimSpace(fullname)
	email = strings.TrimSpace(email)
	if fullname == "" || email == "" || strings.TrimSpace(pw) == "" {
		return student.View{}, student.OpError{Op: op, Kind: student.ErrInvalidInput, Msg: "all fields are required"}
	}

	hash, err := s.hasher.Hash(ctx, pw)
	if err != nil {
		if errors.Is(err, password.ErrPasswordEmpty) || errors.Is(err, password.ErrPasswordTooLong) {
			return student.View{}, student.OpError{Op: op, Kind: student.ErrInvalidInput, Msg: err.Error()}
		}
		return student.View{}, err
	}

	rec, err := s.store.Create(ctx, student.CreateInput{
		FullName:     fullname,
		Email:        email,
		PasswordHash: hash,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return student.View{}, err
	}
	return rec.View(), nil
}

// Login verifies credentials, mints both tokens, and persists the refresh
// token onto the record.
//
// Persisting overwrites any prior slot value: a second login silently
// supersedes the previous session. The superseded session's access token, if
// unexpired, remains valid until natural expiry because access tokens are
// never checked against the stored refresh token.
func (s *Service) Login(ctx context.Context, email, pw string) (Issued, error) {
	const op = "session.Login"

	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(pw) == "" {
		return Issued{}, student.OpError{Op: op, Kind: student.ErrInvalidInput, Msg: "email and password are required"}
	}

	rec, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return Issued{}, err
	}

	ok, err := s.hasher.Verify(ctx, pw, rec.PasswordHash)
	if err != nil || !ok {
		return Issued{}, student.OpError{Op: op, Kind: student.ErrUnauthorized, Msg: "invalid credentials"}
	}

	now := time.Now().UTC()
	view := rec.View()

	accessToken, accessExp, err := s.tokens.IssueAccess(view, now)
	if err != nil {
		return Issued{}, student.OpError{Op: op, Kind: err, Msg: "issue access token"}
	}
	refreshToken, refreshExp, err := s.tokens.IssueRefresh(view.ID, now)
	if err != nil {
		return Issued{}, student.OpError{Op: op, Kind: err, Msg: "issue refresh token"}
	}

	if err := s.store.SetRefreshToken(ctx, view.ID, refreshToken, now); err != nil {
		return Issued{}, err
	}

	return Issued{
		Student:      view,
		AccessToken:  accessToken,
		AccessExp:    accessExp,
		RefreshToken: refreshToken,
		RefreshExp:   refreshExp,
	}, nil
}

// Logout clears the session slot by overwriting it with the sentinel.
//
// This cannot invalidate an already-issued, unexpired access token; the
// security boundary is that access tokens self-expire quickly. Logout only
// prevents refresh-based renewal.
func (s *Service) Logout(ctx context.Context, id string) error {
	return s.store.SetRefreshToken(ctx, id, student.SessionCleared, time.Now().UTC())
}

// Authenticate is the per-request gate: it verifies the access token and
// resolves the embedded id back to a live record.
//
// Every decode or lookup failure collapses into the same unauthorized kind so
// protected operations share one uniform failure contract.
func (s *Service) Authenticate(ctx context.Context, token string, now time.Time) (student.View, error) {
	const op = "session.Authenticate"

	claims, err := s.tokens.VerifyAccess(token, now)
	if err != nil {
		return student.View{}, student.OpError{Op: op, Kind: student.ErrUnauthorized, Msg: "invalid access token"}
	}

	rec, err := s.store.GetByID(ctx, claims.Subject)
	if err != nil {
		return student.View{}, student.OpError{Op: op, Kind: student.ErrUnauthorized, Msg: "identity not resolvable"}
	}
	return rec.View(), nil
}

// UpdateProfile mutates the caller's own profile fields. The id comes from the
// verified token, never from client-supplied input.
func (s *Service) UpdateProfile(ctx context.Context, id, fullname, email string) (student.View, error) {
	const op = "session.UpdateProfile"

	if !student.ValidID(id) {
		return student.View{}, student.OpError{Op: op, Kind: student.ErrInvalidInput, Msg: "malformed id"}
	}
	fullname = strings.TrimSpace(fullname)
	email = strings.TrimSpace(email)
	if fullname == "" || email == "" {
		return student.View{}, student.OpError{Op: op, Kind: student.ErrInvalidInput, Msg: "fullname and email are required"}
	}

	rec, err := s.store.UpdateProfile(ctx, student.UpdateProfileInput{
		ID:       id,
		FullName: fullname,
		Email:    email,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		return student.View{}, err
	}
	return rec.View(), nil
}

// SetFeesPaid marks the caller's fees as paid. One-way and idempotent: there
// is no refund/reset path.
func (s *Service) SetFeesPaid(ctx context.Context, id string) (student.View, error) {
	const op = "session.SetFeesPaid"

	if !student.ValidID(id) {
		return student.View{}, student.OpError{Op: op, Kind: student.ErrInvalidInput, Msg: "malformed id"}
	}

	rec, err := s.store.SetFeesPaid(ctx, id, time.Now().UTC())
	if err != nil {
		return student.View{}, err
	}
	return rec.View(), nil
}

// List returns the sanitized views of every registered student.
func (s *Service) List(ctx context.Context) ([]student.View, error) {
	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]student.View, 0, len(recs))
	for _, rec := range recs {
		views = append(views, rec.View())
	}
	return views, nil
}
