// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/sevahub/internal/app/store/audit"
	"github.com/dalemusser/sevahub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config selects the destination per event category.
// Values: "all" (MongoDB + zap), "db", "log", "off".
type Config struct {
	Auth   string
	Action string
}

// Logger records audit events to MongoDB and structured logs. A nil Logger
// is a no-op, which lets tests skip audit wiring.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates an audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// Log records one event according to the category's configured destination.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := "all"
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAction:
		setting = l.config.Action
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", event.SubjectID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// --- Authentication events ---

// LoginSuccess records a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, method, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"auth_method": method,
			"email":       email,
		},
	})
}

// LoginFailed records a rejected credential check. Unknown email and wrong
// password are recorded identically so the audit trail doesn't leak which
// accounts exist.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedBadCredential,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "invalid credentials",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// LoginRateLimited records a login blocked by the rate limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedRateLimit,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "rate limit exceeded",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// Logout records a sign-out. userIDStr comes from the session and may be
// stale; an unparseable ID is recorded without the user reference.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	var userID *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		userID = &oid
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// Registered records a completed registration.
func (l *Logger) Registered(ctx context.Context, r *http.Request, userID primitive.ObjectID, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventRegistered,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"role": role,
		},
	})
}

// GoogleSignIn records a login completed through the Google callback.
func (l *Logger) GoogleSignIn(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventGoogleSignIn,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"email": email,
		},
	})
}

// --- Action events ---

// DonationCreated records a donor posting a donation.
func (l *Logger) DonationCreated(ctx context.Context, r *http.Request, userID, donationID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAction,
		EventType: audit.EventDonationCreated,
		UserID:    &userID,
		SubjectID: &donationID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// DonationClaimed records a volunteer claiming a donation.
func (l *Logger) DonationClaimed(ctx context.Context, r *http.Request, userID, donationID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAction,
		EventType: audit.EventDonationClaimed,
		UserID:    &userID,
		SubjectID: &donationID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// IssueSubmitted records a community issue submission.
func (l *Logger) IssueSubmitted(ctx context.Context, r *http.Request, userID, issueID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAction,
		EventType: audit.EventIssueSubmitted,
		UserID:    &userID,
		SubjectID: &issueID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// IssueVerified records a community-support rep verifying an issue.
func (l *Logger) IssueVerified(ctx context.Context, r *http.Request, userID, issueID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAction,
		EventType: audit.EventIssueVerified,
		UserID:    &userID,
		SubjectID: &issueID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}
