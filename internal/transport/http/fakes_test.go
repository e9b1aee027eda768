package http

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type stubIdentities map[string]*domain.Identity

func (s stubIdentities) GetUser(ctx context.Context, token string) (*domain.Identity, error) {
	if identity, ok := s[token]; ok {
		return identity, nil
	}
	return nil, errors.New("invalid JWT")
}

type stubTransactions struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]domain.Transaction
	clock   time.Time
	listErr error
}

func newStubTransactions() *stubTransactions {
	return &stubTransactions{rows: map[uuid.UUID]domain.Transaction{}, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *stubTransactions) put(tx domain.Transaction) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.RefundStatus == "" {
		tx.RefundStatus = domain.RefundStatusNone
	}
	s.clock = s.clock.Add(time.Second)
	tx.CreatedAt = s.clock
	s.rows[tx.ID] = tx
	return tx
}

func (s *stubTransactions) get(id uuid.UUID) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id]
}

func (s *stubTransactions) WithTx(ctx context.Context, fn func(ctx context.Context, repo ports.TransactionRepository) error) error {
	return fn(ctx, s)
}

func (s *stubTransactions) Create(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	tx.ID = uuid.Nil
	created := s.put(tx)
	return &created, nil
}

func (s *stubTransactions) LockByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &tx, nil
}

func (s *stubTransactions) list(keep func(domain.Transaction) bool) ([]domain.Transaction, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Transaction{}
	for _, tx := range s.rows {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubTransactions) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return s.list(func(domain.Transaction) bool { return true })
}

func (s *stubTransactions) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	return s.list(func(tx domain.Transaction) bool { return tx.UserID != nil && *tx.UserID == userID })
}

func (s *stubTransactions) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Transaction, error) {
	return s.list(func(tx domain.Transaction) bool { return tx.BookingID != nil && *tx.BookingID == bookingID })
}

func (s *stubTransactions) update(id uuid.UUID, fn func(*domain.Transaction)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&tx)
	s.rows[id] = tx
	return nil
}

func (s *stubTransactions) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransactionStatus) error {
	return s.update(id, func(tx *domain.Transaction) { tx.Status = status })
}

func (s *stubTransactions) UpdateRefundStatus(ctx context.Context, id uuid.UUID, status domain.RefundStatus) error {
	return s.update(id, func(tx *domain.Transaction) { tx.RefundStatus = status })
}

func (s *stubTransactions) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	return s.update(id, func(tx *domain.Transaction) {
		tx.Status = domain.TransactionStatusRefunded
		tx.RefundStatus = domain.RefundStatusProcessed
	})
}

type stubBookings struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]domain.Booking
	transactions *stubTransactions
}

func (s *stubBookings) WithTx(ctx context.Context, fn func(ctx context.Context, bookings ports.BookingRepository, transactions ports.TransactionRepository) error) error {
	return fn(ctx, s, s.transactions)
}

func (s *stubBookings) get(id uuid.UUID) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id]
}

func (s *stubBookings) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (s *stubBookings) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Booking{}
	for _, id := range ids {
		if b, ok := s.rows[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBookings) set(id uuid.UUID, fn func(*domain.Booking)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&b)
	s.rows[id] = b
	return nil
}

func (s *stubBookings) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if b, err := s.FindByID(ctx, id); err != nil || b.Status != domain.BookingStatusUpcoming {
		return nil, sql.ErrNoRows
	}
	if err := s.set(id, func(b *domain.Booking) { b.Status = domain.BookingStatusCancelled }); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *stubBookings) MarkRefundRequested(ctx context.Context, id uuid.UUID) error {
	return s.set(id, func(b *domain.Booking) { b.RefundRequested = true })
}

func (s *stubBookings) MarkRefundProcessed(ctx context.Context, id uuid.UUID) error {
	return s.set(id, func(b *domain.Booking) { b.RefundProcessed = true })
}

type stubProfiles struct {
	rows    map[uuid.UUID]domain.Profile
	findErr error
}

func (s *stubProfiles) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (s *stubProfiles) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	out := []domain.Profile{}
	for _, id := range ids {
		if p, ok := s.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProfiles) List(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	out := []domain.Profile{}
	for _, p := range s.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *stubProfiles) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	p.Role = role
	s.rows[id] = p
	return &p, nil
}

type stubDestinations struct {
	rows map[uuid.UUID]domain.Destination
}

func (s *stubDestinations) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	d := domain.Destination{ID: uuid.New()}
	if fields.Name != nil {
		d.Name = *fields.Name
	}
	if fields.Country != nil {
		d.Country = *fields.Country
	}
	if fields.PricePerPerson != nil {
		d.PricePerPerson = *fields.PricePerPerson
	}
	d.Description = fields.Description
	d.ImageURL = fields.ImageURL
	s.rows[d.ID] = d
	return &d, nil
}

func (s *stubDestinations) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	d, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if fields.Name != nil {
		d.Name = *fields.Name
	}
	if fields.PricePerPerson != nil {
		d.PricePerPerson = *fields.PricePerPerson
	}
	if fields.ImageURL != nil {
		d.ImageURL = fields.ImageURL
	}
	s.rows[id] = d
	return &d, nil
}

func (s *stubDestinations) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.rows, id)
	return nil
}

func (s *stubDestinations) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	d, ok := s.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (s *stubDestinations) FindByName(ctx context.Context, name string) (*domain.Destination, error) {
	for _, d := range s.rows {
		if d.Name == name {
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubDestinations) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	out := []domain.Destination{}
	for _, id := range ids {
		if d, ok := s.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDestinations) List(ctx context.Context, limit, offset int) ([]domain.Destination, error) {
	out := []domain.Destination{}
	for _, d := range s.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type stubReviews struct {
	mu   sync.Mutex
	rows []domain.Review
}

func (s *stubReviews) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubReviews) ListByDestination(ctx context.Context, destinationID uuid.UUID, filter domain.ReviewListFilter) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Review{}
	for _, r := range s.rows {
		if r.DestinationID != destinationID {
			continue
		}
		if filter.MinRating != nil && r.Rating < *filter.MinRating {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *stubReviews) AggregateByDestination(ctx context.Context, destinationID uuid.UUID) (*domain.ReviewAggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := &domain.ReviewAggregate{DestinationID: destinationID, RatingCounts: map[int]int{}}
	sum := 0
	for _, r := range s.rows {
		if r.DestinationID == destinationID {
			agg.RatingCounts[r.Rating]++
			agg.TotalReviews++
			sum += r.Rating
		}
	}
	if agg.TotalReviews > 0 {
		agg.AverageRating = float64(sum) / float64(agg.TotalReviews)
	}
	return agg, nil
}

func (s *stubReviews) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}
