// Package memory keeps every record in process memory. It backs the
// `serve --memory` mode and the use case and handler tests, and enforces
// the same unique and foreign key rules as the postgres schema.
//
// Transactions are serialized. Each write made through a transaction's
// repository logs how to undo itself; a failed transaction replays that log
// and leaves writes made outside it in place. Sequences are not rewound,
// as in postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinicadev/clinic-api/internal/domain/appointment"
	"github.com/clinicadev/clinic-api/internal/domain/patient"
	"github.com/clinicadev/clinic-api/internal/domain/specialty"
	"github.com/clinicadev/clinic-api/internal/domain/user"
	"github.com/clinicadev/clinic-api/internal/httperr"
	"github.com/clinicadev/clinic-api/internal/models"
)

type tables struct {
	patients     map[uint]models.Patient
	specialties  map[uint]models.Specialty
	users        map[uint]models.User
	appointments map[uint]models.Appointment

	// per table sequences, like postgres serial columns
	seq struct{ patient, specialty, user, appointment uint }
}

type Store struct {
	txMu sync.Mutex // serializes transactions
	mu   sync.RWMutex
	t    tables
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		t: tables{
			patients:     map[uint]models.Patient{},
			specialties:  map[uint]models.Specialty{},
			users:        map[uint]models.User{},
			appointments: map[uint]models.Appointment{},
		},
		now: time.Now,
	}
}

func (s *Store) Patients() *PatientRepository         { return &PatientRepository{s: s} }
func (s *Store) Specialties() *SpecialtyRepository    { return &SpecialtyRepository{s: s} }
func (s *Store) Users() *UserRepository               { return &UserRepository{s: s} }
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

// txLog holds the undo steps of one transaction, newest last.
type txLog struct {
	undo []func()
}

// remember records the current state of row id so a rollback can put it
// back. It is a no-op outside a transaction; callers hold mu.
func remember[T any](l *txLog, table map[uint]T, id uint) {
	if l == nil {
		return
	}
	prev, existed := table[id]
	l.undo = append(l.undo, func() {
		if existed {
			table[id] = prev
		} else {
			delete(table, id)
		}
	})
}

// transaction runs fn and undoes the writes it logged when it fails.
func (s *Store) transaction(fn func(tx *txLog) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txLog{}
	if err := fn(tx); err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// next advances a sequence; callers hold mu.
func next(seq *uint) uint {
	*seq++
	return *seq
}

func uniqueViolation(constraint string) error {
	return httperr.StorageConstraint("unique_violation", constraint, nil)
}

func sameString(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// ======================================================
// Patients
// ======================================================

type PatientRepository struct {
	s  *Store
	tx *txLog
}

func (r *PatientRepository) GetPatient(_ context.Context, id uint) (*models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.t.patients[id]
	if !ok {
		return nil, httperr.ErrRecordNotFound
	}
	return &p, nil
}

func (r *PatientRepository) ListPatients(_ context.Context, filter patient.ListFilter) ([]models.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.TrimSpace(filter.Query)
	lower := strings.ToLower(q)
	out := make([]models.Patient, 0, len(r.s.t.patients))
	for _, p := range r.s.t.patients {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), lower) &&
			(p.NationalID == nil || *p.NationalID != q) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PatientRepository) checkUnique(p *models.Patient) error {
	for id, other := range r.s.t.patients {
		if id == p.ID {
			continue
		}
		if sameString(other.NationalID, p.NationalID) {
			return uniqueViolation("idx_patients_national_id")
		}
		if sameString(other.HealthCardNumber, p.HealthCardNumber) {
			return uniqueViolation("idx_patients_health_card_number")
		}
	}
	return nil
}

func (r *PatientRepository) CreatePatient(_ context.Context, p *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(p); err != nil {
		return err
	}
	p.ID = next(&r.s.t.seq.patient)
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	remember(r.tx, r.s.t.patients, p.ID)
	r.s.t.patients[p.ID] = *p
	return nil
}

func (r *PatientRepository) UpdatePatient(_ context.Context, p *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.patients[p.ID]; !ok {
		return httperr.ErrRecordNotFound
	}
	if err := r.checkUnique(p); err != nil {
		return err
	}
	p.UpdatedAt = r.s.now()
	remember(r.tx, r.s.t.patients, p.ID)
	r.s.t.patients[p.ID] = *p
	return nil
}

// DeletePatient detaches appointments that referenced the patient; their
// snapshots stay as they were.
func (r *PatientRepository) DeletePatient(_ context.Context, p *models.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	remember(r.tx, r.s.t.patients, p.ID)
	delete(r.s.t.patients, p.ID)
	for id, ap := range r.s.t.appointments {
		if ap.PatientID != nil && *ap.PatientID == p.ID {
			ap.PatientID = nil
			remember(r.tx, r.s.t.appointments, id)
			r.s.t.appointments[id] = ap
		}
	}
	return nil
}

func (r *PatientRepository) Transaction(_ context.Context, fn func(patient.Repository) error) error {
	return r.s.transaction(func(tx *txLog) error { return fn(&PatientRepository{s: r.s, tx: tx}) })
}

// ======================================================
// Specialties
// ======================================================

type SpecialtyRepository struct {
	s  *Store
	tx *txLog
}

func (r *SpecialtyRepository) GetSpecialty(_ context.Context, id uint) (*models.Specialty, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sp, ok := r.s.t.specialties[id]
	if !ok {
		return nil, httperr.ErrRecordNotFound
	}
	return &sp, nil
}

func (r *SpecialtyRepository) ListSpecialties(_ context.Context) ([]models.Specialty, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Specialty, 0, len(r.s.t.specialties))
	for _, sp := range r.s.t.specialties {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SpecialtyRepository) CreateSpecialty(_ context.Context, sp *models.Specialty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sp.ID = next(&r.s.t.seq.specialty)
	sp.CreatedAt = r.s.now()
	sp.UpdatedAt = sp.CreatedAt
	remember(r.tx, r.s.t.specialties, sp.ID)
	r.s.t.specialties[sp.ID] = *sp
	return nil
}

func (r *SpecialtyRepository) UpdateSpecialty(_ context.Context, sp *models.Specialty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.specialties[sp.ID]; !ok {
		return httperr.ErrRecordNotFound
	}
	sp.UpdatedAt = r.s.now()
	remember(r.tx, r.s.t.specialties, sp.ID)
	r.s.t.specialties[sp.ID] = *sp
	return nil
}

func (r *SpecialtyRepository) DeleteSpecialty(_ context.Context, sp *models.Specialty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	remember(r.tx, r.s.t.specialties, sp.ID)
	delete(r.s.t.specialties, sp.ID)
	for id, ap := range r.s.t.appointments {
		if ap.SpecialtyID != nil && *ap.SpecialtyID == sp.ID {
			ap.SpecialtyID = nil
			remember(r.tx, r.s.t.appointments, id)
			r.s.t.appointments[id] = ap
		}
	}
	return nil
}

func (r *SpecialtyRepository) Transaction(_ context.Context, fn func(specialty.Repository) error) error {
	return r.s.transaction(func(tx *txLog) error { return fn(&SpecialtyRepository{s: r.s, tx: tx}) })
}

// ======================================================
// Users
// ======================================================

type UserRepository struct {
	s  *Store
	tx *txLog
}

func (r *UserRepository) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.t.users[id]
	if !ok {
		return nil, httperr.ErrRecordNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.t.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, httperr.ErrRecordNotFound
}

func (r *UserRepository) ListUsers(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0, len(r.s.t.users))
	for _, u := range r.s.t.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *UserRepository) checkUnique(u *models.User) error {
	for id, other := range r.s.t.users {
		if id != u.ID && other.Username == u.Username {
			return uniqueViolation("idx_users_username")
		}
	}
	return nil
}

func (r *UserRepository) CreateUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(u); err != nil {
		return err
	}
	u.ID = next(&r.s.t.seq.user)
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	remember(r.tx, r.s.t.users, u.ID)
	r.s.t.users[u.ID] = *u
	return nil
}

func (r *UserRepository) UpdateUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.users[u.ID]; !ok {
		return httperr.ErrRecordNotFound
	}
	if err := r.checkUnique(u); err != nil {
		return err
	}
	u.UpdatedAt = r.s.now()
	remember(r.tx, r.s.t.users, u.ID)
	r.s.t.users[u.ID] = *u
	return nil
}

// DeleteUser refuses while appointments name the user as their author.
func (r *UserRepository) DeleteUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ap := range r.s.t.appointments {
		if ap.CreatedByID == u.ID {
			return httperr.StorageConstraint("foreign_key_violation", "fk_appointments_created_by", nil)
		}
	}
	remember(r.tx, r.s.t.users, u.ID)
	delete(r.s.t.users, u.ID)
	return nil
}

func (r *UserRepository) Transaction(_ context.Context, fn func(user.Repository) error) error {
	return r.s.transaction(func(tx *txLog) error { return fn(&UserRepository{s: r.s, tx: tx}) })
}

// ======================================================
// Appointments
// ======================================================

type AppointmentRepository struct {
	s  *Store
	tx *txLog
}

func (r *AppointmentRepository) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	return r.s.Patients().GetPatient(ctx, id)
}

func (r *AppointmentRepository) GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error) {
	return r.s.Specialties().GetSpecialty(ctx, id)
}

func (r *AppointmentRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return r.s.Users().GetUser(ctx, id)
}

func (r *AppointmentRepository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ap, ok := r.s.t.appointments[id]
	if !ok {
		return nil, httperr.ErrRecordNotFound
	}
	return &ap, nil
}

func matches(ap models.Appointment, f appointment.ListFilter) bool {
	if f.PatientID != nil && (ap.PatientID == nil || *ap.PatientID != *f.PatientID) {
		return false
	}
	if s := strings.TrimSpace(f.PatientNationalID); s != "" &&
		(ap.PatientNationalID == nil || *ap.PatientNationalID != s) {
		return false
	}
	if f.SpecialtyID != nil && (ap.SpecialtyID == nil || *ap.SpecialtyID != *f.SpecialtyID) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Specialty)); s != "" &&
		(ap.SpecialtyName == nil || !strings.Contains(strings.ToLower(*ap.SpecialtyName), s)) {
		return false
	}
	if f.Start != nil && ap.ScheduledAt.Before(*f.Start) {
		return false
	}
	if f.End != nil && ap.ScheduledAt.After(*f.End) {
		return false
	}
	return true
}

func (r *AppointmentRepository) ListAppointments(_ context.Context, filter appointment.ListFilter) ([]models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Appointment, 0, len(r.s.t.appointments))
	for _, ap := range r.s.t.appointments {
		if matches(ap, filter) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.After(out[j].ScheduledAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *AppointmentRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.users[ap.CreatedByID]; !ok {
		return httperr.StorageConstraint("foreign_key_violation", "fk_appointments_created_by", nil)
	}
	ap.ID = next(&r.s.t.seq.appointment)
	ap.CreatedAt = r.s.now()
	ap.UpdatedAt = ap.CreatedAt
	remember(r.tx, r.s.t.appointments, ap.ID)
	r.s.t.appointments[ap.ID] = *ap
	return nil
}

func (r *AppointmentRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.t.appointments[ap.ID]; !ok {
		return httperr.ErrRecordNotFound
	}
	ap.UpdatedAt = r.s.now()
	remember(r.tx, r.s.t.appointments, ap.ID)
	r.s.t.appointments[ap.ID] = *ap
	return nil
}

func (r *AppointmentRepository) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	remember(r.tx, r.s.t.appointments, ap.ID)
	delete(r.s.t.appointments, ap.ID)
	return nil
}

func (r *AppointmentRepository) Transaction(_ context.Context, fn func(appointment.Repository) error) error {
	return r.s.transaction(func(tx *txLog) error { return fn(&AppointmentRepository{s: r.s, tx: tx}) })
}

var (
	_ patient.Repository     = (*PatientRepository)(nil)
	_ specialty.Repository   = (*SpecialtyRepository)(nil)
	_ user.Repository        = (*UserRepository)(nil)
	_ appointment.Repository = (*AppointmentRepository)(nil)
)
