package ghostdrop

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/ghostcoin/ghostdrop/internal/config"
	"github.com/ghostcoin/ghostdrop/internal/eligibility"
	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/logger"
	"github.com/ghostcoin/ghostdrop/pkg/validation"
)

// Ghostdrop is the main struct for the Ghostdrop application
// It contains all the necessary components to run the application
// and serves all business logic
type Ghostdrop struct {
	logger *logger.Logger
	config *config.Config

	repo        models.Repository
	oracle      models.TokenBalanceOracle
	notificator models.NotificationService
}

// NewGhostdrop creates a new Ghostdrop instance
func NewGhostdrop(
	repo models.Repository,
	oracle models.TokenBalanceOracle,
	notificator models.NotificationService,
	logger *logger.Logger,
	config *config.Config,
) models.GhostdropI {
	return &Ghostdrop{
		repo:        repo,
		oracle:      oracle,
		logger:      logger,
		notificator: notificator,
		config:      config,
	}
}

// Start runs the balance warmer: a periodic refresh of the cached balances of
// every wallet on file so that drop listings don't pay the RPC round-trip.
func (g *Ghostdrop) Start() {
	ticker := time.NewTicker(g.config.BalanceWarmInterval)
	defer ticker.Stop()
	for range ticker.C {
		g.warmBalances()
	}
}

func (g *Ghostdrop) warmBalances() {
	profiles, err := g.repo.ListProfilesWithWallets()
	if err != nil {
		g.logger.Error("Failed to list profiles for balance warming", "error", err)
		return
	}

	refresher, canRefresh := g.oracle.(interface {
		Refresh(ctx context.Context, address string) (*big.Int, error)
	})

	for _, profile := range profiles {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if canRefresh {
			_, err = refresher.Refresh(ctx, profile.WalletAddress)
		} else {
			_, err = g.oracle.GetBalance(ctx, profile.WalletAddress)
		}
		cancel()
		if err != nil {
			g.logger.Debug("Balance warm failed", "address", profile.WalletAddress, "error", err)
		}
	}
}

// VisibleDrops returns the drops the viewer may see, newest first.
func (g *Ghostdrop) VisibleDrops(ctx context.Context, viewer models.Viewer) ([]*models.Drop, error) {
	drops, err := g.repo.ListDrops(0)
	if err != nil {
		return nil, err
	}
	return g.filterForViewer(ctx, drops, viewer), nil
}

// MappableDrops returns the visible drops that have coordinates.
func (g *Ghostdrop) MappableDrops(ctx context.Context, viewer models.Viewer) ([]*models.Drop, error) {
	drops, err := g.repo.ListDropsWithCoordinates()
	if err != nil {
		return nil, err
	}
	return g.filterForViewer(ctx, drops, viewer), nil
}

func (g *Ghostdrop) filterForViewer(ctx context.Context, drops []*models.Drop, viewer models.Viewer) []*models.Drop {
	balance := g.resolveBalance(ctx, viewer.WalletAddress)
	return eligibility.VisibleDrops(drops, balance, viewer.Position, g.config.MaxDistanceMiles)
}

// resolveBalance reads the viewer's balance. No wallet means nil; a failed
// oracle read counts as zero so gated drops stay hidden (fail-closed).
func (g *Ghostdrop) resolveBalance(ctx context.Context, wallet string) *big.Int {
	if wallet == "" {
		return nil
	}
	balance, err := g.oracle.GetBalance(ctx, wallet)
	if err != nil {
		g.logger.Warn("Balance read failed, treating as zero", "address", wallet, "error", err)
		return big.NewInt(0)
	}
	return balance
}

// ClaimDrop converts a scanned drop code into a pending claim. The checks run
// in order and short-circuit on the first failure: code resolution, expiry,
// then duplicate per the configured claim policy. The unique index installed
// by the repository backs the duplicate check, so a scan that loses a race
// still comes back as ErrDuplicateClaim from the insert.
func (g *Ghostdrop) ClaimDrop(ctx context.Context, userID, dropCode string) (*models.ClaimReceipt, error) {
	drop, err := g.repo.GetDropByCode(dropCode)
	if err != nil {
		return nil, err
	}
	if drop == nil {
		return nil, models.ErrInvalidDropCode
	}

	now := time.Now().Unix()
	if drop.Expired(now) {
		return nil, models.ErrDropExpired
	}

	existing, err := g.findExistingClaim(drop.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrDuplicateClaim
	}

	// Wallet presence is not required to claim; the address is recorded if
	// the claimant already set one and must exist before a payout.
	profile, err := g.repo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	wallet := ""
	if profile != nil {
		wallet = profile.WalletAddress
	}

	claim := &models.Claim{
		ID:            uuid.NewString(),
		DropID:        drop.ID,
		UserID:        userID,
		WalletAddress: wallet,
		Status:        models.ClaimStatusPending,
		ClaimedAt:     now,
		UpdatedAt:     now,
	}
	if err := g.repo.InsertClaim(claim); err != nil {
		return nil, err
	}

	g.logger.Info("Claim created", "claim", claim.ID, "drop", drop.DropCode, "user", userID)
	go g.notificator.ClaimCreated(claim, drop, profile)

	return &models.ClaimReceipt{Claim: claim, Drop: drop}, nil
}

func (g *Ghostdrop) findExistingClaim(dropID, userID string) (*models.Claim, error) {
	if g.config.ClaimPolicy == models.PolicyFirstWins {
		return g.repo.FindClaimByDrop(dropID)
	}
	return g.repo.FindClaimByDropAndUser(dropID, userID)
}

// ClaimsForUser returns the account's claims, newest first.
func (g *Ghostdrop) ClaimsForUser(ctx context.Context, userID string) ([]*models.Claim, error) {
	return g.repo.ListClaimsForUser(userID)
}

// ListClaims returns recent claims across all users. Admin only.
func (g *Ghostdrop) ListClaims(ctx context.Context, adminID string, limit int) ([]*models.Claim, error) {
	if err := g.requireAdmin(adminID); err != nil {
		return nil, err
	}
	return g.repo.ListClaims(limit)
}

// ResolveClaim transitions a claim to paid or rejected. The transition is
// unconditional on the source status once authorization passes, except that
// paying out requires a wallet address: an empty one is backfilled from the
// claimant's current profile, and the transition is refused if none exists.
// Expiry never rescinds an existing claim.
func (g *Ghostdrop) ResolveClaim(ctx context.Context, adminID, claimID, status, adminNotes string) (*models.Claim, error) {
	if err := g.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if !models.ValidClaimStatus(status) {
		return nil, fmt.Errorf("invalid claim status %q", status)
	}

	claim, err := g.repo.GetClaim(claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, models.ErrNotFound
	}

	profile, err := g.repo.GetProfile(claim.UserID)
	if err != nil {
		return nil, err
	}

	if status == models.ClaimStatusPaid && claim.WalletAddress == "" {
		if profile == nil || profile.WalletAddress == "" {
			return nil, models.ErrWalletMissing
		}
		claim.WalletAddress = profile.WalletAddress
	}

	claim.Status = status
	claim.AdminNotes = adminNotes
	claim.UpdatedAt = time.Now().Unix()
	if err := g.repo.UpdateClaim(claim); err != nil {
		return nil, err
	}

	drop, err := g.repo.GetDrop(claim.DropID)
	if err != nil {
		g.logger.Error("Failed to load drop for resolution notice", "error", err)
	}

	g.logger.Info("Claim resolved", "claim", claim.ID, "status", status, "admin", adminID)
	go g.notificator.ClaimResolved(claim, drop, profile)

	return claim, nil
}

// CreateDrop creates a drop with a server-assigned code. Admin only.
func (g *Ghostdrop) CreateDrop(ctx context.Context, adminID string, draft models.DropDraft) (*models.Drop, error) {
	if err := g.requireAdmin(adminID); err != nil {
		return nil, err
	}
	if draft.Title == "" {
		return nil, fmt.Errorf("drop title is required")
	}
	if (draft.Latitude == nil) != (draft.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be set together")
	}
	if draft.MinTokenRequired < 0 {
		return nil, fmt.Errorf("minimum token requirement cannot be negative")
	}

	now := time.Now().Unix()
	drop := &models.Drop{
		ID:               uuid.NewString(),
		DropCode:         uuid.NewString(),
		Title:            draft.Title,
		Description:      draft.Description,
		Prize:            draft.Prize,
		Latitude:         draft.Latitude,
		Longitude:        draft.Longitude,
		ExpiresAt:        draft.ExpiresAt,
		MinTokenRequired: draft.MinTokenRequired,
		CreatedBy:        adminID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := g.repo.CreateDrop(drop); err != nil {
		return nil, err
	}

	g.logger.Info("Drop created", "drop", drop.DropCode, "title", drop.Title, "admin", adminID)
	return drop, nil
}

// Profile returns the account's profile, creating one on first access.
func (g *Ghostdrop) Profile(ctx context.Context, userID, email string) (*models.Profile, error) {
	profile, err := g.repo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	now := time.Now().Unix()
	profile = &models.Profile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.repo.UpsertProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetWalletAddress updates the account's payout address.
func (g *Ghostdrop) SetWalletAddress(ctx context.Context, userID, address string) (*models.Profile, error) {
	normalized, err := validation.ValidateAndNormalizeAddress(address)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet address: %w", err)
	}

	profile, err := g.repo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrNotFound
	}

	profile.WalletAddress = normalized
	profile.UpdatedAt = time.Now().Unix()
	if err := g.repo.UpsertProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// WalletBalance reads the GHOX balance for an address.
func (g *Ghostdrop) WalletBalance(ctx context.Context, address string) (*big.Int, error) {
	if err := validation.ValidateAddress(address); err != nil {
		return nil, fmt.Errorf("invalid wallet address: %w", err)
	}
	return g.oracle.GetBalance(ctx, address)
}

func (g *Ghostdrop) requireAdmin(userID string) error {
	isAdmin, err := g.repo.HasRole(userID, models.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return models.ErrForbidden
	}
	return nil
}
