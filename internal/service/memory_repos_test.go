package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yash-2200030856/Sanchari-escapes/internal/domain"
	"github.com/yash-2200030856/Sanchari-escapes/internal/repository/ports"
)

type memTransactions struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]domain.Transaction
	clock time.Time

	createErr error
	listErr   error
	commits   int
	rollbacks int
}

func newMemTransactions(now time.Time) *memTransactions {
	return &memTransactions{rows: map[uuid.UUID]domain.Transaction{}, clock: now}
}

func (m *memTransactions) add(tx domain.Transaction) domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.RefundStatus == "" {
		tx.RefundStatus = domain.RefundStatusNone
	}
	m.clock = m.clock.Add(time.Minute)
	tx.CreatedAt = m.clock
	tx.UpdatedAt = m.clock
	m.rows[tx.ID] = tx
	return tx
}

func (m *memTransactions) get(id uuid.UUID) domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memTransactions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memTransactions) snapshot() map[uuid.UUID]domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]domain.Transaction, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out
}

func (m *memTransactions) finish(snapshot map[uuid.UUID]domain.Transaction, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.rows = snapshot
		m.rollbacks++
		return
	}
	m.commits++
}

// WithTx snapshots the rows and restores them when fn fails.
func (m *memTransactions) WithTx(ctx context.Context, fn func(ctx context.Context, repo ports.TransactionRepository) error) error {
	snapshot := m.snapshot()
	err := fn(ctx, m)
	m.finish(snapshot, err)
	return err
}

func (m *memTransactions) Create(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	tx.ID = uuid.Nil
	created := m.add(tx)
	return &created, nil
}

func (m *memTransactions) LockByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &tx, nil
}

func (m *memTransactions) filter(keep func(domain.Transaction) bool) ([]domain.Transaction, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Transaction, 0, len(m.rows))
	for _, tx := range m.rows {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTransactions) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return m.filter(func(domain.Transaction) bool { return true })
}

func (m *memTransactions) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	return m.filter(func(tx domain.Transaction) bool { return tx.UserID != nil && *tx.UserID == userID })
}

func (m *memTransactions) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Transaction, error) {
	return m.filter(func(tx domain.Transaction) bool { return tx.BookingID != nil && *tx.BookingID == bookingID })
}

func (m *memTransactions) mutate(id uuid.UUID, fn func(*domain.Transaction)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&tx)
	tx.UpdatedAt = m.clock
	m.rows[id] = tx
	return nil
}

func (m *memTransactions) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransactionStatus) error {
	return m.mutate(id, func(tx *domain.Transaction) { tx.Status = status })
}

func (m *memTransactions) UpdateRefundStatus(ctx context.Context, id uuid.UUID, status domain.RefundStatus) error {
	return m.mutate(id, func(tx *domain.Transaction) { tx.RefundStatus = status })
}

func (m *memTransactions) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	return m.mutate(id, func(tx *domain.Transaction) {
		tx.Status = domain.TransactionStatusRefunded
		tx.RefundStatus = domain.RefundStatusProcessed
	})
}

// memBookings shares a unit of work with transactions. WithTx needs it set.
type memBookings struct {
	mu           sync.Mutex
	rows         map[uuid.UUID]domain.Booking
	transactions *memTransactions

	markRequestedErr error
	markProcessedErr error
	processed        []uuid.UUID
}

func newMemBookings(items ...domain.Booking) *memBookings {
	m := &memBookings{rows: map[uuid.UUID]domain.Booking{}}
	for _, b := range items {
		m.rows[b.ID] = b
	}
	return m
}

// WithTx snapshots bookings and transactions and restores both when fn fails.
func (m *memBookings) WithTx(ctx context.Context, fn func(ctx context.Context, bookings ports.BookingRepository, transactions ports.TransactionRepository) error) error {
	m.mu.Lock()
	snapshot := make(map[uuid.UUID]domain.Booking, len(m.rows))
	for k, v := range m.rows {
		snapshot[k] = v
	}
	m.mu.Unlock()
	txSnapshot := m.transactions.snapshot()

	err := fn(ctx, m, m.transactions)
	if err != nil {
		m.mu.Lock()
		m.rows = snapshot
		m.mu.Unlock()
	}
	m.transactions.finish(txSnapshot, err)
	return err
}

func (m *memBookings) get(id uuid.UUID) domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memBookings) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (m *memBookings) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := m.rows[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || b.Status != domain.BookingStatusUpcoming {
		return nil, sql.ErrNoRows
	}
	b.Status = domain.BookingStatusCancelled
	m.rows[id] = b
	return &b, nil
}

func (m *memBookings) MarkRefundRequested(ctx context.Context, id uuid.UUID) error {
	if m.markRequestedErr != nil {
		return m.markRequestedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.RefundRequested = true
	m.rows[id] = b
	return nil
}

func (m *memBookings) MarkRefundProcessed(ctx context.Context, id uuid.UUID) error {
	if m.markProcessedErr != nil {
		return m.markProcessedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed = append(m.processed, id)
	b, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.RefundProcessed = true
	m.rows[id] = b
	return nil
}

type memProfiles struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]domain.Profile
	findErr error
}

func newMemProfiles(items ...domain.Profile) *memProfiles {
	m := &memProfiles{rows: map[uuid.UUID]domain.Profile{}}
	for _, p := range items {
		m.rows[p.ID] = p
	}
	return m
}

func (m *memProfiles) FindByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (m *memProfiles) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProfiles) List(ctx context.Context, limit, offset int) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Profile, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if offset >= len(out) {
		return []domain.Profile{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memProfiles) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	p.Role = role
	m.rows[id] = p
	return &p, nil
}

type memDestinations struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]domain.Destination
	createErr error
}

func newMemDestinations(items ...domain.Destination) *memDestinations {
	m := &memDestinations{rows: map[uuid.UUID]domain.Destination{}}
	for _, d := range items {
		m.rows[d.ID] = d
	}
	return m
}

func applyDestinationFields(d *domain.Destination, fields domain.DestinationFields) {
	if fields.Name != nil {
		d.Name = *fields.Name
	}
	if fields.Country != nil {
		d.Country = *fields.Country
	}
	if fields.Description != nil {
		d.Description = fields.Description
	}
	if fields.ImageURL != nil {
		d.ImageURL = fields.ImageURL
	}
	if fields.PricePerPerson != nil {
		d.PricePerPerson = *fields.PricePerPerson
	}
}

func (m *memDestinations) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d := domain.Destination{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	applyDestinationFields(&d, fields)
	m.rows[d.ID] = d
	return &d, nil
}

func (m *memDestinations) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	applyDestinationFields(&d, fields)
	m.rows[id] = d
	return &d, nil
}

func (m *memDestinations) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func (m *memDestinations) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (m *memDestinations) FindByName(ctx context.Context, name string) (*domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if d.Name == name {
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memDestinations) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Destination, 0, len(ids))
	for _, id := range ids {
		if d, ok := m.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDestinations) List(ctx context.Context, limit, offset int) ([]domain.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Destination, 0, len(m.rows))
	for _, d := range m.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memReviews struct {
	mu   sync.Mutex
	rows []domain.Review
}

func (m *memReviews) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memReviews) ListByDestination(ctx context.Context, destinationID uuid.UUID, filter domain.ReviewListFilter) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Review{}
	for _, r := range m.rows {
		if r.DestinationID == destinationID && (filter.MinRating == nil || r.Rating >= *filter.MinRating) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviews) AggregateByDestination(ctx context.Context, destinationID uuid.UUID) (*domain.ReviewAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg := &domain.ReviewAggregate{DestinationID: destinationID, RatingCounts: map[int]int{}}
	sum := 0
	for _, r := range m.rows {
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

func (m *memReviews) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeIdentityProvider struct {
	identities map[string]*domain.Identity
	err        error
	calls      int
}

func (f *fakeIdentityProvider) GetUser(ctx context.Context, token string) (*domain.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	identity, ok := f.identities[token]
	if !ok {
		return nil, errors.New("invalid JWT")
	}
	return identity, nil
}

type sentRefund struct {
	email  string
	refund domain.Transaction
}

type fakeRefundNotifier struct {
	sent []sentRefund
	err  error
}

func (f *fakeRefundNotifier) SendRefundProcessed(ctx context.Context, email string, refund domain.Transaction) error {
	f.sent = append(f.sent, sentRefund{email: email, refund: refund})
	return f.err
}

type uploadedObject struct {
	bucket      string
	objectName  string
	contentType string
	size        int64
	data        []byte
}

type fakeObjectStorage struct {
	uploads []uploadedObject
	err     error
}

func (f *fakeObjectStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, uploadedObject{bucket: bucket, objectName: objectName, contentType: contentType, size: size, data: data})
	return "http://minio.local/" + bucket + "/" + objectName, nil
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func floatPtr(v float64) *float64 {
	return &v
}

func stringPtr(v string) *string {
	return &v
}
