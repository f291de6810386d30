package student

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a dev-only fallback when no database is configured.
// It mirrors MongoStore semantics closely enough to back handler and service
// tests: unique emails, last-write-wins session slot, one-way fee flag.
type MemoryStore struct {
	mu       sync.Mutex
	byID     map[string]Student
	emailIdx map[string]string // email -> id
}

// NewMemoryStore constructs an empty in-memory Store implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[string]Student),
		emailIdx: make(map[string]string),
	}
}

func (s *MemoryStore) Create(ctx context.Context, in CreateInput) (Student, error) {
	const op = "student.Create"

	if err := ctx.Err(); err != nil {
		return Student{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIdx[in.Email]; exists {
		return Student{}, ConflictError{Op: op, Field: "email"}
	}

	rec := Student{
		ID:           primitive.NewObjectID(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		FeesPaid:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byID[rec.ID.Hex()] = rec
	s.emailIdx[rec.Email] = rec.ID.Hex()
	return rec, nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (Student, error) {
	const op = "student.GetByEmail"

	if err := ctx.Err(); err != nil {
		return Student{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emailIdx[email]
	if !ok {
		return Student{}, NotFoundError{Op: op, Resource: "student"}
	}
	return s.byID[id], nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (Student, error) {
	const op = "student.GetByID"

	if err := ctx.Err(); err != nil {
		return Student{}, err
	}
	if !ValidID(id) {
		return Student{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return Student{}, NotFoundError{Op: op, Resource: "student"}
	}
	return rec, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]Student, 0, len(s.byID))
	for _, rec := range s.byID {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	return recs, nil
}

func (s *MemoryStore) SetRefreshToken(ctx context.Context, id, token string, now time.Time) error {
	const op = "student.SetRefreshToken"

	if err := ctx.Err(); err != nil {
		return err
	}
	if !ValidID(id) {
		return OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return NotFoundError{Op: op, Resource: "student"}
	}
	rec.RefreshToken = token
	rec.UpdatedAt = now
	s.byID[id] = rec
	return nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, in UpdateProfileInput) (Student, error) {
	const op = "student.UpdateProfile"

	if err := ctx.Err(); err != nil {
		return Student{}, err
	}
	if !ValidID(in.ID) {
		return Student{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[in.ID]
	if !ok {
		return Student{}, NotFoundError{Op: op, Resource: "student"}
	}
	if other, exists := s.emailIdx[in.Email]; exists && other != in.ID {
		return Student{}, ConflictError{Op: op, Field: "email"}
	}

	delete(s.emailIdx, rec.Email)
	rec.FullName = in.FullName
	rec.Email = in.Email
	rec.UpdatedAt = now
	s.byID[in.ID] = rec
	s.emailIdx[rec.Email] = in.ID
	return rec, nil
}

func (s *MemoryStore) SetFeesPaid(ctx context.Context, id string, now time.Time) (Student, error) {
	const op = "student.SetFeesPaid"

	if err := ctx.Err(); err != nil {
		return Student{}, err
	}
	if !ValidID(id) {
		return Student{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "malformed id"}
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return Student{}, NotFoundError{Op: op, Resource: "student"}
	}
	rec.FeesPaid = true
	rec.UpdatedAt = now
	s.byID[id] = rec
	return rec, nil
}
