package notificator

import (
	"fmt"
	"runtime/debug"

	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

// Notificator fans claim lifecycle events out to the configured channels:
// Telegram for the admin inbox, email for claimants. Either channel may be
// nil when unconfigured; delivery failures never reach the claim workflow.
type Notificator struct {
	logger *logger.Logger

	TelegramNotificator *TelegramNotificator
	EmailNotificator    *EmailNotificator
}

func NewNotificator(logger *logger.Logger, telNotif *TelegramNotificator, emailNotif *EmailNotificator) *Notificator {
	return &Notificator{logger: logger, TelegramNotificator: telNotif, EmailNotificator: emailNotif}
}

// safeCall runs a function with panic recovery (synchronous, no goroutine spawning)
func (n *Notificator) safeCall(fn func(), context string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// ClaimCreated posts a new-claim alert to the admin Telegram chat.
func (n *Notificator) ClaimCreated(claim *models.Claim, drop *models.Drop, profile *models.Profile) {
	if n.TelegramNotificator == nil {
		return
	}

	claimant := claim.UserID
	if profile != nil && profile.Email != "" {
		claimant = profile.Email
	}
	message := fmt.Sprintf("New claim on %q by %s (status: %s)", drop.Title, claimant, claim.Status)
	n.safeCall(func() { n.TelegramNotificator.SendAdminNotification(message) }, "telegramNotification")
}

// ClaimResolved emails the claimant that their claim was paid or rejected.
func (n *Notificator) ClaimResolved(claim *models.Claim, drop *models.Drop, profile *models.Profile) {
	if n.EmailNotificator == nil || profile == nil || profile.Email == "" {
		return
	}

	title := "a ghost drop"
	if drop != nil {
		title = fmt.Sprintf("%q", drop.Title)
	}
	var message string
	switch claim.Status {
	case models.ClaimStatusPaid:
		message = fmt.Sprintf("Your claim on %s has been approved and paid out to %s.", title, claim.WalletAddress)
	case models.ClaimStatusRejected:
		message = fmt.Sprintf("Your claim on %s has been rejected.", title)
		if claim.AdminNotes != "" {
			message += " Notes: " + claim.AdminNotes
		}
	default:
		return
	}
	n.safeCall(func() { n.EmailNotificator.SendNotification(profile.Email, message) }, "emailNotification")
}
