// Package memstore is an in-memory shared.UnitOfWork for usecase tests.
// Transactions run one at a time under a mutex against a cloned snapshot that
// replaces the committed state only when fn succeeds.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomledger/internal/domain/booking"
	"roomledger/internal/domain/guest"
	"roomledger/internal/domain/room"
	"roomledger/internal/infra"
	"roomledger/internal/infra/uow"
	"roomledger/internal/pkg/errs"
	"roomledger/internal/pkg/retry"
	"roomledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errInjectedContention = errs.New("injected contention")

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type roomRow struct {
	id          uuid.UUID
	number      string
	category    string
	price       decimal.Decimal
	description string
	status      room.Status
	createdAt   time.Time
}

type bookingRow struct {
	id        uuid.UUID
	reference booking.Reference
	guestID   uuid.UUID
	roomID    *uuid.UUID
	period    booking.StayPeriod
	status    booking.Status
	payment   booking.PaymentStatus
	createdAt time.Time
	updatedAt time.Time
}

type guestRow struct {
	id        uuid.UUID
	fullName  string
	email     guest.Email
	phone     string
	hash      *string
	createdAt time.Time
}

type idemKey struct {
	key   string
	scope shared.IdempotencyScope
}

type state struct {
	rooms     map[uuid.UUID]roomRow
	bookings  map[uuid.UUID]bookingRow
	guests    map[uuid.UUID]guestRow
	idem      map[idemKey]shared.IdempotencyRecord
	checkLogs []shared.CheckLogEntry
	jobs      []Job
}

func newState() *state {
	return &state{
		rooms:    map[uuid.UUID]roomRow{},
		bookings: map[uuid.UUID]bookingRow{},
		guests:   map[uuid.UUID]guestRow{},
		idem:     map[idemKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.guests {
		c.guests[k] = v
	}
	for k, v := range s.idem {
		c.idem[k] = v
	}
	c.checkLogs = append([]shared.CheckLogEntry(nil), s.checkLogs...)
	c.jobs = append([]Job(nil), s.jobs...)
	return c
}

type Store struct {
	mu        sync.Mutex
	committed *state
	policy    retry.Policy

	// failures left to inject at commit time, counted across attempts
	contention int
	attempts   int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		committed: newState(),
		policy:    retry.Policy{MaxAttempts: 3},
	}
}

func (s *Store) WithPolicy(p retry.Policy) *Store {
	s.policy = p
	return s
}

// InjectContention makes the next n commit attempts fail as transient.
func (s *Store) InjectContention(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contention = n
}

// Attempts counts transaction attempts made through Within.
func (s *Store) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	err := retry.Do(ctx, s.policy, uow.IsTransient, func(ctx context.Context, _ int) error {
		return s.runOnce(ctx, fn)
	}, nil)
	return uow.Translate(err)
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++

	work := s.committed.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	if s.contention > 0 {
		s.contention--
		return errs.Mark(errInjectedContention, shared.ErrRetryable)
	}
	s.committed = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	s.mu.Lock()
	snapshot := s.committed.clone()
	s.mu.Unlock()
	return uow.Translate(fn(ctx, &memTx{st: snapshot}))
}

// Reads exposes committed state for assertions.
func (s *Store) Reads() shared.CommandReads {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memTx{st: s.committed.clone()}
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.committed.jobs...)
}

func (s *Store) CheckLogs() []shared.CheckLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shared.CheckLogEntry(nil), s.committed.checkLogs...)
}

// Seed writes fixtures directly into committed state.
func (s *Store) SeedRoom(r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.rooms[r.ID()] = toRoomRow(r)
}

func (s *Store) SeedGuest(g *guest.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.guests[g.ID()] = toGuestRow(g)
}

func (s *Store) SeedBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.bookings[b.ID()] = toBookingRow(b)
}

type memTx struct {
	st *state
}

var _ shared.Tx = (*memTx)(nil)

func (t *memTx) Bookings() shared.BookingRepository           { return t }
func (t *memTx) Rooms() shared.RoomRepository                 { return roomRepo{t} }
func (t *memTx) Guests() shared.GuestRepository               { return guestRepo{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository    { return t }
func (t *memTx) Notifications() shared.NotificationRepository { return t }
func (t *memTx) CheckLogs() shared.CheckLogRepository         { return t }
func (t *memTx) Reads() shared.CommandReads                   { return t }

func (t *memTx) Nested(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	savepoint := t.st.clone()
	if err := fn(ctx, t); err != nil {
		*t.st = *savepoint
		return err
	}
	return nil
}

// bookings

func (t *memTx) Insert(_ context.Context, b *booking.Booking) error {
	if _, ok := t.st.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("failed to insert booking", nil, infra.KindDuplicateKey)
	}
	row := toBookingRow(b)
	if row.roomID != nil && booking.OccupyingStatuses.Contains(row.status) {
		for _, other := range t.st.bookings {
			if other.roomID != nil && *other.roomID == *row.roomID &&
				booking.OccupyingStatuses.Contains(other.status) && other.period.Overlaps(row.period) {
				return infra.WrapRepoErr("failed to insert booking", nil, infra.KindExclusionViolated)
			}
		}
	}
	t.st.bookings[row.id] = row
	return nil
}

func (t *memTx) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := t.st.bookings[b.ID()]; !ok {
		return infra.NotFound("booking not found for update")
	}
	t.st.bookings[b.ID()] = toBookingRow(b)
	return nil
}

func (t *memTx) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := t.st.bookings[id]; !ok {
		return infra.NotFound("booking not found for delete")
	}
	delete(t.st.bookings, id)
	return nil
}

// idempotency, notifications, check logs

func (t *memTx) TryInsert(_ context.Context, rec shared.IdempotencyRecord) (bool, error) {
	k := idemKey{rec.Key, rec.Scope}
	if _, ok := t.st.idem[k]; ok {
		return false, nil
	}
	t.st.idem[k] = rec
	return true, nil
}

func (t *memTx) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	t.st.jobs = append(t.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

func (t *memTx) Append(_ context.Context, entry shared.CheckLogEntry) error {
	t.st.checkLogs = append(t.st.checkLogs, entry)
	return nil
}

type roomRepo struct{ t *memTx }

func (r roomRepo) Insert(_ context.Context, rm *room.Room) error {
	for _, other := range r.t.st.rooms {
		if other.number == rm.Number() {
			return infra.WrapRepoErr("failed to insert room", nil, infra.KindDuplicateKey)
		}
	}
	r.t.st.rooms[rm.ID()] = toRoomRow(rm)
	return nil
}

func (r roomRepo) UpdateStatus(_ context.Context, id uuid.UUID, status room.Status) error {
	row, ok := r.t.st.rooms[id]
	if !ok {
		return infra.NotFound("room not found for status update")
	}
	row.status = status
	r.t.st.rooms[id] = row
	return nil
}

func (r roomRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.t.st.rooms[id]; !ok {
		return infra.NotFound("room not found for delete")
	}
	delete(r.t.st.rooms, id)
	// ON DELETE SET NULL
	for bid, b := range r.t.st.bookings {
		if b.roomID != nil && *b.roomID == id {
			b.roomID = nil
			r.t.st.bookings[bid] = b
		}
	}
	return nil
}

type guestRepo struct{ t *memTx }

func (r guestRepo) Insert(_ context.Context, g *guest.Guest) error {
	for _, other := range r.t.st.guests {
		if other.email.Equal(g.Email()) {
			return infra.WrapRepoErr("failed to insert guest", nil, infra.KindDuplicateKey)
		}
	}
	r.t.st.guests[g.ID()] = toGuestRow(g)
	return nil
}

func (r guestRepo) UpdateCredential(_ context.Context, id uuid.UUID, passwordHash string) error {
	row, ok := r.t.st.guests[id]
	if !ok {
		return infra.NotFound("guest not found for credential update")
	}
	row.hash = &passwordHash
	r.t.st.guests[id] = row
	return nil
}

// reads

func (t *memTx) RoomByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	row, ok := t.st.rooms[id]
	if !ok {
		return nil, infra.NotFound("room not found")
	}
	return row.toDomain(), nil
}

func (t *memTx) RoomByNumber(_ context.Context, number string) (*room.Room, error) {
	for _, row := range t.st.rooms {
		if row.number == number {
			return row.toDomain(), nil
		}
	}
	return nil, infra.NotFound("room not found")
}

func (t *memTx) RoomIDs(_ context.Context) ([]uuid.UUID, error) {
	rows := make([]roomRow, 0, len(t.st.rooms))
	for _, row := range t.st.rooms {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].number < rows[j].number })

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.id
	}
	return ids, nil
}

func (t *memTx) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, ok := t.st.bookings[id]
	if !ok {
		return nil, infra.NotFound("booking not found")
	}
	return row.toDomain(), nil
}

func (t *memTx) BookingByReference(_ context.Context, ref booking.Reference) (*booking.Booking, error) {
	for _, row := range t.st.bookings {
		if row.reference == ref {
			return row.toDomain(), nil
		}
	}
	return nil, infra.NotFound("booking not found")
}

func (t *memTx) ReferenceExists(_ context.Context, ref booking.Reference) (bool, error) {
	for _, row := range t.st.bookings {
		if row.reference == ref {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) RoomOccupancies(_ context.Context, roomID uuid.UUID, statuses booking.StatusSet, endingAfter time.Time) ([]booking.Occupancy, error) {
	var out []booking.Occupancy
	for _, row := range t.st.bookings {
		if row.roomID == nil || *row.roomID != roomID {
			continue
		}
		if !statuses.Contains(row.status) || !row.period.CheckOut().After(endingAfter) {
			continue
		}
		out = append(out, booking.Occupancy{
			BookingID: row.id,
			RoomID:    roomID,
			Period:    row.period,
			Status:    row.status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.CheckIn().Before(out[j].Period.CheckIn()) })
	return out, nil
}

func (t *memTx) GuestByID(_ context.Context, id uuid.UUID) (*guest.Guest, error) {
	row, ok := t.st.guests[id]
	if !ok {
		return nil, infra.NotFound("guest not found")
	}
	return row.toDomain(), nil
}

func (t *memTx) GuestByEmail(_ context.Context, email guest.Email) (*guest.Guest, error) {
	for _, row := range t.st.guests {
		if row.email.Equal(email) {
			return row.toDomain(), nil
		}
	}
	return nil, infra.NotFound("guest not found")
}

func (t *memTx) IdempotencyByKey(_ context.Context, key string, scope shared.IdempotencyScope) (*shared.IdempotencyRecord, error) {
	rec, ok := t.st.idem[idemKey{key, scope}]
	if !ok {
		return nil, infra.NotFound("idempotency key not found")
	}
	return &rec, nil
}

func toRoomRow(r *room.Room) roomRow {
	return roomRow{
		id:          r.ID(),
		number:      r.Number(),
		category:    r.Category(),
		price:       r.Price(),
		description: r.Description(),
		status:      r.Status(),
		createdAt:   r.CreatedAt(),
	}
}

func (r roomRow) toDomain() *room.Room {
	return room.Reconstruct(r.id, r.number, r.category, r.price, r.description, r.status, r.createdAt)
}

func toBookingRow(b *booking.Booking) bookingRow {
	var roomID *uuid.UUID
	if b.RoomID() != nil {
		id := *b.RoomID()
		roomID = &id
	}
	return bookingRow{
		id:        b.ID(),
		reference: b.Reference(),
		guestID:   b.GuestID(),
		roomID:    roomID,
		period:    b.Period(),
		status:    b.Status(),
		payment:   b.PaymentStatus(),
		createdAt: b.CreatedAt(),
		updatedAt: b.UpdatedAt(),
	}
}

func (r bookingRow) toDomain() *booking.Booking {
	var roomID *uuid.UUID
	if r.roomID != nil {
		id := *r.roomID
		roomID = &id
	}
	return booking.Reconstruct(r.id, r.reference, r.guestID, roomID, r.period, r.status, r.payment, r.createdAt, r.updatedAt)
}

func toGuestRow(g *guest.Guest) guestRow {
	var hash *string
	if g.PasswordHash() != nil {
		h := *g.PasswordHash()
		hash = &h
	}
	return guestRow{
		id:        g.ID(),
		fullName:  g.FullName(),
		email:     g.Email(),
		phone:     g.Phone(),
		hash:      hash,
		createdAt: g.CreatedAt(),
	}
}

func (r guestRow) toDomain() *guest.Guest {
	return guest.Reconstruct(r.id, r.fullName, r.email, r.phone, r.hash, r.createdAt)
}
