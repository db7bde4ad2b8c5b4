package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/socket"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

// Refill reminders fire 1-3 days (inclusive) before the refill date, once per
// sweep run with no dedup; the hourly schedule bounds the duplicate volume.
const (
	refillWindowMinDays = 1
	refillWindowMaxDays = 3
)

type ReminderService interface {
	// Sweep is a stateless batch pass over all active medications. It
	// collects every qualifying notification and inserts them in a single
	// batch; a batch failure aborts the whole invocation.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

type reminderService struct {
	db               *gorm.DB
	log              *logger.Logger
	medicationRepo   repos.MedicationRepo
	notificationRepo repos.NotificationRepo
	userRepo         repos.UserRepo
	hub              *socket.Hub
	emailService     EmailService
	textService      TextService
}

func NewReminderService(
	db *gorm.DB,
	log *logger.Logger,
	medicationRepo repos.MedicationRepo,
	notificationRepo repos.NotificationRepo,
	userRepo repos.UserRepo,
	hub *socket.Hub,
	emailService EmailService,
	textService TextService,
) ReminderService {
	serviceLog := log.With("service", "ReminderService")
	return &reminderService{
		db:               db,
		log:              serviceLog,
		medicationRepo:   medicationRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		emailService:     emailService,
		textService:      textService,
	}
}

// DoseBucket maps an hour of day onto exactly one dose bucket:
// morning [6,12), afternoon [12,17), evening [17,21), night otherwise.
func DoseBucket(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return types.BucketMorning
	case hour >= 12 && hour < 17:
		return types.BucketAfternoon
	case hour >= 17 && hour < 21:
		return types.BucketEvening
	default:
		return types.BucketNight
	}
}

// DoseReminderTitle is the exact title the same-day dedup check matches on.
func DoseReminderTitle(medicationName string) string {
	return "Time for " + medicationName
}

func startOfDayUTC(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysUntil counts whole calendar days (UTC) from now until target.
func daysUntil(now, target time.Time) int {
	return int(startOfDayUTC(target).Sub(startOfDayUTC(now)).Hours() / 24)
}

func (rs *reminderService) Sweep(ctx context.Context, now time.Time) (int, error) {
	medications, err := rs.medicationRepo.ListActive(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("listing active medications: %w", err)
	}

	bucket := DoseBucket(now.UTC().Hour())
	dayStart := startOfDayUTC(now)

	var pending []*types.Notification
	for _, med := range medications {
		if med.RefillReminderDate != nil {
			days := daysUntil(now, *med.RefillReminderDate)
			if days >= refillWindowMinDays && days <= refillWindowMaxDays {
				pending = append(pending, &types.Notification{
					UserID:  med.UserID,
					Type:    types.NotificationTypeRefill,
					Title:   "Refill reminder: " + med.Name,
					Message: fmt.Sprintf("%s needs a refill in %d day(s).", med.Name, days),
				})
			}
		}

		if med.HasBucket(bucket) {
			title := DoseReminderTitle(med.Name)
			exists, err := rs.notificationRepo.ExistsSince(ctx, nil, med.UserID, types.NotificationTypeMedication, title, dayStart)
			if err != nil {
				return 0, fmt.Errorf("checking dose reminder dedup for %s: %w", med.Name, err)
			}
			if !exists {
				message := fmt.Sprintf("It's %s: time to take %s", bucket, med.Name)
				if med.Dosage != "" {
					message += " (" + med.Dosage + ")"
				}
				pending = append(pending, &types.Notification{
					UserID:  med.UserID,
					Type:    types.NotificationTypeMedication,
					Title:   title,
					Message: message + ".",
				})
			}
		}
	}

	if len(pending) == 0 {
		return 0, nil
	}
	if err := rs.notificationRepo.CreateBatch(ctx, nil, pending); err != nil {
		return 0, fmt.Errorf("batch inserting notifications: %w", err)
	}
	rs.log.Info("Reminder sweep inserted notifications", "count", len(pending), "bucket", bucket)

	rs.dispatch(ctx, pending)
	return len(pending), nil
}

// dispatch fans the inserted rows out over the websocket hub and the optional
// email/SMS channels. Delivery is best-effort and never fails the sweep.
func (rs *reminderService) dispatch(ctx context.Context, notifications []*types.Notification) {
	userIDSet := make(map[uuid.UUID]struct{})
	for _, n := range notifications {
		userIDSet[n.UserID] = struct{}{}
	}
	userIDs := make([]uuid.UUID, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	users := make(map[uuid.UUID]*types.User, len(userIDs))
	if rows, err := rs.userRepo.GetByIDs(ctx, nil, userIDs); err == nil {
		for _, u := range rows {
			users[u.ID] = u
		}
	} else {
		rs.log.Warn("Failed to load users for reminder dispatch", "error", err)
	}

	for _, n := range notifications {
		if rs.hub != nil {
			rs.hub.BroadcastGlobal(ctx, socket.Message{
				Channel: "user:" + n.UserID.String(),
				Payload: n,
			})
		}
		user, ok := users[n.UserID]
		if !ok {
			continue
		}
		switch n.Type {
		case types.NotificationTypeRefill:
			if rs.emailService != nil && user.Email != "" {
				if err := rs.emailService.SendEmail(ctx, user.Email, n.Title, n.Message, "", "reminder"); err != nil {
					rs.log.Warn("Failed to email refill reminder", "error", err, "userID", user.ID)
				}
			}
		case types.NotificationTypeMedication:
			if rs.textService != nil && user.PhoneNumber != nil && *user.PhoneNumber != "" {
				if err := rs.textService.SendText(ctx, *user.PhoneNumber, n.Title+": "+n.Message); err != nil {
					rs.log.Warn("Failed to text dose reminder", "error", err, "userID", user.ID)
				}
			}
		}
	}
}
