package http_api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/geo"
	"github.com/ghostcoin/ghostdrop/pkg/validation"
)

// CreateClaimRequest represents the JSON body for redeeming a scanned code
type CreateClaimRequest struct {
	DropCode string `json:"drop_code" binding:"required"`
}

// ClaimResponse represents the success response for a claim
type ClaimResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Claim   *models.Claim `json:"claim"`
}

// CreateDropRequest represents the JSON body for creating a drop
type CreateDropRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	Prize            string   `json:"prize"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ExpiresAt        int64    `json:"expires_at"`
	MinTokenRequired int64    `json:"min_token_required" binding:"gte=0"`
}

// ResolveClaimRequest represents the JSON body for resolving a claim
type ResolveClaimRequest struct {
	Status     string `json:"status" binding:"required,oneof=paid rejected"`
	AdminNotes string `json:"admin_notes"`
}

// SetWalletRequest represents the JSON body for updating the payout address
type SetWalletRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

// health is a handler for the /healthz endpoint.
func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// viewerFromQuery builds the viewer context from optional query parameters.
// An invalid wallet address is a client error; missing parameters just
// degrade the eligibility filters.
func viewerFromQuery(c *gin.Context) (models.Viewer, bool) {
	viewer := models.Viewer{}

	wallet := c.Query("wallet")
	if wallet != "" {
		normalized, err := validation.ValidateAndNormalizeAddress(wallet)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wallet address: " + err.Error()})
			return viewer, false
		}
		viewer.WalletAddress = normalized
	}

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" && lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat/lon"})
			return viewer, false
		}
		viewer.Position = &geo.Point{Latitude: lat, Longitude: lon}
	}

	return viewer, true
}

// listDrops is a handler for GET /drops.
// It returns the drops the viewer is eligible to see, newest first.
func (s *HTTPServer) listDrops(c *gin.Context) {
	viewer, ok := viewerFromQuery(c)
	if !ok {
		return
	}

	drops, err := s.app.VisibleDrops(c.Request.Context(), viewer)
	if err != nil {
		s.logger.Error("Failed to list drops", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list drops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drops": drops})
}

// listMappableDrops is a handler for GET /drops/map.
// It returns only drops that have coordinates.
func (s *HTTPServer) listMappableDrops(c *gin.Context) {
	viewer, ok := viewerFromQuery(c)
	if !ok {
		return
	}

	drops, err := s.app.MappableDrops(c.Request.Context(), viewer)
	if err != nil {
		s.logger.Error("Failed to list mappable drops", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list drops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drops": drops})
}

// createDrop is a handler for POST /drops. Admin only.
func (s *HTTPServer) createDrop(c *gin.Context) {
	var req CreateDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	drop, err := s.app.CreateDrop(c.Request.Context(), callerID(c), models.DropDraft{
		Title:            req.Title,
		Description:      req.Description,
		Prize:            req.Prize,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		ExpiresAt:        req.ExpiresAt,
		MinTokenRequired: req.MinTokenRequired,
	})
	if err != nil {
		s.respondDomainError(c, err, "Failed to create drop")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"drop": drop})
}

// createClaim is a handler for POST /claims.
// It runs the full claim validation sequence for a scanned drop code.
func (s *HTTPServer) createClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	receipt, err := s.app.ClaimDrop(c.Request.Context(), callerID(c), req.DropCode)
	if err != nil {
		s.respondDomainError(c, err, "Failed to process claim")
		return
	}

	prize := receipt.Drop.Prize
	if prize == "" {
		prize = "N/A"
	}
	c.JSON(http.StatusCreated, ClaimResponse{
		Success: true,
		Message: "You've claimed \"" + receipt.Drop.Title + "\"! Prize: " + prize + ". Your claim is now pending review.",
		Claim:   receipt.Claim,
	})
}

// listMyClaims is a handler for GET /claims.
func (s *HTTPServer) listMyClaims(c *gin.Context) {
	claims, err := s.app.ClaimsForUser(c.Request.Context(), callerID(c))
	if err != nil {
		s.logger.Error("Failed to list claims", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list claims"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

// listAllClaims is a handler for GET /claims/all. Admin only.
func (s *HTTPServer) listAllClaims(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	claims, err := s.app.ListClaims(c.Request.Context(), callerID(c), limit)
	if err != nil {
		s.respondDomainError(c, err, "Failed to list claims")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

// resolveClaim is a handler for PUT /claims/:id/status. Admin only.
func (s *HTTPServer) resolveClaim(c *gin.Context) {
	var req ResolveClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	claim, err := s.app.ResolveClaim(c.Request.Context(), callerID(c), c.Param("id"), req.Status, req.AdminNotes)
	if err != nil {
		s.respondDomainError(c, err, "Failed to resolve claim")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// getProfile is a handler for GET /profile.
// A profile is created on first access from the token's identity.
func (s *HTTPServer) getProfile(c *gin.Context) {
	profile, err := s.app.Profile(c.Request.Context(), callerID(c), callerEmail(c))
	if err != nil {
		s.logger.Error("Failed to get profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// setWalletAddress is a handler for PUT /profile/wallet.
func (s *HTTPServer) setWalletAddress(c *gin.Context) {
	var req SetWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	profile, err := s.app.SetWalletAddress(c.Request.Context(), callerID(c), req.WalletAddress)
	if err != nil {
		if strings.Contains(err.Error(), "invalid wallet address") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.respondDomainError(c, err, "Failed to update wallet address")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// getBalance is a handler for GET /balance.
// It returns the GHOX balance of an address in the smallest unit.
func (s *HTTPServer) getBalance(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	balance, err := s.app.WalletBalance(c.Request.Context(), address)
	if err != nil {
		if strings.Contains(err.Error(), "invalid wallet address") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.logger.Error("Balance read failed", "address", address, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "balance read failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address, "balance": balance.String()})
}

// respondDomainError maps the claim/admin error taxonomy onto HTTP statuses
// with the user-facing messages the clients show verbatim.
func (s *HTTPServer) respondDomainError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, models.ErrInvalidDropCode):
		c.JSON(http.StatusNotFound, gin.H{"error": "This QR code doesn't match any ghost drops."})
	case errors.Is(err, models.ErrDropExpired):
		c.JSON(http.StatusGone, gin.H{"error": "This ghost drop has expired and can no longer be claimed."})
	case errors.Is(err, models.ErrDuplicateClaim):
		c.JSON(http.StatusConflict, gin.H{"error": "This ghost drop has already been claimed."})
	case errors.Is(err, models.ErrWalletMissing):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No wallet address is set for this claim."})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to perform this action."})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	default:
		s.logger.Error(logContext, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": logContext})
	}
}
