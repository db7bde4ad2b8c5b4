package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeMedicationRepo struct {
	active []*types.Medication
	err    error
}

func (f *fakeMedicationRepo) Create(ctx context.Context, tx *gorm.DB, m *types.Medication) error {
	f.active = append(f.active, m)
	return nil
}

func (f *fakeMedicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Medication, error) {
	for _, m := range f.active {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (f *fakeMedicationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activeOnly bool) ([]*types.Medication, error) {
	var out []*types.Medication
	for _, m := range f.active {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMedicationRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Medication, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active, nil
}

func (f *fakeMedicationRepo) Update(ctx context.Context, tx *gorm.DB, m *types.Medication) error {
	return nil
}

func (f *fakeMedicationRepo) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return nil
}

type fakeNotificationRepo struct {
	created  []*types.Notification
	batchErr error

	// stamp stands in for the insert timestamp so tests can pin the clock.
	stamp time.Time
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	stamp := f.stamp
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	for _, n := range notifications {
		n.CreatedAt = stamp
	}
	f.created = append(f.created, notifications...)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Notification, error) {
	var out []*types.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ExistsSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, notificationType, title string, since time.Time) (bool, error) {
	for _, n := range f.created {
		if n.UserID == userID && n.Type == notificationType && n.Title == title && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, u *types.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("record not found")
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, tx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) PhoneNumberExists(ctx context.Context, tx *gorm.DB, phoneNumber string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, u *types.User) error { return nil }

func newSweepService(t *testing.T, medRepo *fakeMedicationRepo, notifRepo *fakeNotificationRepo) ReminderService {
	t.Helper()
	return NewReminderService(nil, testLogger(t), medRepo, notifRepo, &fakeUserRepo{}, nil, nil, nil)
}

func TestDoseBucket(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, types.BucketNight},
		{5, types.BucketNight},
		{6, types.BucketMorning},
		{8, types.BucketMorning},
		{11, types.BucketMorning},
		{12, types.BucketAfternoon},
		{16, types.BucketAfternoon},
		{17, types.BucketEvening},
		{20, types.BucketEvening},
		{21, types.BucketNight},
		{23, types.BucketNight},
	}
	for _, tt := range tests {
		if got := DoseBucket(tt.hour); got != tt.want {
			t.Errorf("DoseBucket(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSweep_DoseReminderDedupedWithinDay(t *testing.T) {
	userID := uuid.New()
	medRepo := &fakeMedicationRepo{active: []*types.Medication{{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Metformin",
		Dosage:    "500mg",
		TimeOfDay: datatypes.NewJSONSlice([]string{types.BucketMorning}),
		IsActive:  true,
	}}}
	// 08:00 UTC is the morning bucket.
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	notifRepo := &fakeNotificationRepo{stamp: now}
	svc := newSweepService(t, medRepo, notifRepo)

	created, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if created != 1 {
		t.Fatalf("first sweep created = %d, want 1", created)
	}
	if got := notifRepo.created[0].Title; got != "Time for Metformin" {
		t.Errorf("title = %q, want %q", got, "Time for Metformin")
	}
	if !strings.Contains(notifRepo.created[0].Message, "500mg") {
		t.Errorf("message %q does not mention the dosage", notifRepo.created[0].Message)
	}

	// An hour later, still morning: the exact-title check suppresses a repeat.
	created, err = svc.Sweep(context.Background(), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if created != 0 {
		t.Errorf("second sweep created = %d, want 0", created)
	}
}

func TestSweep_NoDoseReminderOutsideBucket(t *testing.T) {
	medRepo := &fakeMedicationRepo{active: []*types.Medication{{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "Metformin",
		TimeOfDay: datatypes.NewJSONSlice([]string{types.BucketEvening}),
		IsActive:  true,
	}}}
	notifRepo := &fakeNotificationRepo{}
	svc := newSweepService(t, medRepo, notifRepo)

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	created, err := svc.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0 for an evening-only medication at 08:00", created)
	}
}

func TestSweep_RefillReminderFiresEachRunInWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	refillDate := now.AddDate(0, 0, 2)
	medRepo := &fakeMedicationRepo{active: []*types.Medication{{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Name:               "Lisinopril",
		RefillReminderDate: &refillDate,
		IsActive:           true,
	}}}
	notifRepo := &fakeNotificationRepo{}
	svc := newSweepService(t, medRepo, notifRepo)

	for run := 1; run <= 2; run++ {
		created, err := svc.Sweep(context.Background(), now)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if created != 1 {
			t.Fatalf("run %d created = %d, want 1 (refill reminders are not deduped)", run, created)
		}
	}
	if len(notifRepo.created) != 2 {
		t.Fatalf("total notifications = %d, want 2", len(notifRepo.created))
	}
	for _, n := range notifRepo.created {
		if n.Type != types.NotificationTypeRefill {
			t.Errorf("type = %q, want %q", n.Type, types.NotificationTypeRefill)
		}
		if !strings.Contains(n.Message, "2 day(s)") {
			t.Errorf("message = %q, want it to mention 2 day(s)", n.Message)
		}
	}
}

func TestSweep_RefillWindowBounds(t *testing.T) {
	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	tests := []struct {
		daysAhead int
		want      int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 0},
	}
	for _, tt := range tests {
		refillDate := now.AddDate(0, 0, tt.daysAhead)
		medRepo := &fakeMedicationRepo{active: []*types.Medication{{
			ID:                 uuid.New(),
			UserID:             uuid.New(),
			Name:               "Lisinopril",
			RefillReminderDate: &refillDate,
			IsActive:           true,
		}}}
		notifRepo := &fakeNotificationRepo{}
		svc := newSweepService(t, medRepo, notifRepo)

		created, err := svc.Sweep(context.Background(), now)
		if err != nil {
			t.Fatalf("daysAhead=%d: %v", tt.daysAhead, err)
		}
		if created != tt.want {
			t.Errorf("daysAhead=%d created = %d, want %d", tt.daysAhead, created, tt.want)
		}
	}
}

func TestSweep_BatchInsertFailureAborts(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	medRepo := &fakeMedicationRepo{active: []*types.Medication{{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "Metformin",
		TimeOfDay: datatypes.NewJSONSlice([]string{types.BucketMorning}),
		IsActive:  true,
	}}}
	notifRepo := &fakeNotificationRepo{batchErr: fmt.Errorf("connection reset")}
	svc := newSweepService(t, medRepo, notifRepo)

	created, err := svc.Sweep(context.Background(), now)
	if err == nil {
		t.Fatal("expected sweep error on batch insert failure, got nil")
	}
	if created != 0 {
		t.Errorf("created = %d, want 0", created)
	}
}

func TestSweep_ListActiveFailureAborts(t *testing.T) {
	medRepo := &fakeMedicationRepo{err: fmt.Errorf("db down")}
	svc := newSweepService(t, medRepo, &fakeNotificationRepo{})

	if _, err := svc.Sweep(context.Background(), time.Now().UTC()); err == nil {
		t.Fatal("expected sweep error when listing medications fails, got nil")
	}
}
