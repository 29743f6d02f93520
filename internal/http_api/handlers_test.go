package http_api

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

const testSecret = "test-secret"

// fakeApp is a canned GhostdropI for handler tests.
type fakeApp struct {
	drops      []*models.Drop
	claims     []*models.Claim
	receipt    *models.ClaimReceipt
	profile    *models.Profile
	balance    *big.Int
	err        error
	lastUserID string
	lastCode   string
}

func (f *fakeApp) Start() {}

func (f *fakeApp) VisibleDrops(ctx context.Context, viewer models.Viewer) ([]*models.Drop, error) {
	return f.drops, f.err
}

func (f *fakeApp) MappableDrops(ctx context.Context, viewer models.Viewer) ([]*models.Drop, error) {
	return f.drops, f.err
}

func (f *fakeApp) CreateDrop(ctx context.Context, adminID string, draft models.DropDraft) (*models.Drop, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastUserID = adminID
	return f.drops[0], nil
}

func (f *fakeApp) ClaimDrop(ctx context.Context, userID, dropCode string) (*models.ClaimReceipt, error) {
	f.lastUserID = userID
	f.lastCode = dropCode
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

func (f *fakeApp) ClaimsForUser(ctx context.Context, userID string) ([]*models.Claim, error) {
	f.lastUserID = userID
	return f.claims, f.err
}

func (f *fakeApp) ListClaims(ctx context.Context, adminID string, limit int) ([]*models.Claim, error) {
	f.lastUserID = adminID
	return f.claims, f.err
}

func (f *fakeApp) ResolveClaim(ctx context.Context, adminID, claimID, status, adminNotes string) (*models.Claim, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims[0], nil
}

func (f *fakeApp) Profile(ctx context.Context, userID, email string) (*models.Profile, error) {
	f.lastUserID = userID
	return f.profile, f.err
}

func (f *fakeApp) SetWalletAddress(ctx context.Context, userID, address string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeApp) WalletBalance(ctx context.Context, address string) (*big.Int, error) {
	return f.balance, f.err
}

func newTestServer(t *testing.T, app models.GhostdropI) *HTTPServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.NewLogger(true)
	require.NoError(t, err)
	return NewHTTPServer(app, 0, testSecret, log)
}

func signToken(t *testing.T, userID, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(s *HTTPServer, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpointNeedsNoAuth(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodGet, "/api/v1/drops", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenSignedWithWrongSecretIsUnauthorized(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec := doRequest(s, http.MethodGet, "/api/v1/drops", signed, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenWithoutSubjectIsUnauthorized(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "u@example.com"})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := doRequest(s, http.MethodGet, "/api/v1/drops", signed, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListDrops(t *testing.T) {
	app := &fakeApp{drops: []*models.Drop{{ID: "d1", DropCode: "abc", Title: "Ghost"}}}
	s := newTestServer(t, app)

	rec := doRequest(s, http.MethodGet, "/api/v1/drops", signToken(t, "user-1", ""), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Drops []*models.Drop `json:"drops"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Drops, 1)
	assert.Equal(t, "Ghost", body.Drops[0].Title)
}

func TestListDropsRejectsBadWalletQuery(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodGet, "/api/v1/drops?wallet=nope", signToken(t, "user-1", ""), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDropsRejectsBadCoordinates(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodGet, "/api/v1/drops?lat=abc&lon=1.0", signToken(t, "user-1", ""), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateClaimSuccess(t *testing.T) {
	app := &fakeApp{receipt: &models.ClaimReceipt{
		Claim: &models.Claim{ID: "c1", DropID: "d1", UserID: "user-1", Status: models.ClaimStatusPending},
		Drop:  &models.Drop{ID: "d1", DropCode: "abc", Title: "Pier Ghost", Prize: "50 GHOX"},
	}}
	s := newTestServer(t, app)

	rec := doRequest(s, http.MethodPost, "/api/v1/claims", signToken(t, "user-1", ""), `{"drop_code":"abc"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body ClaimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, `You've claimed "Pier Ghost"! Prize: 50 GHOX. Your claim is now pending review.`, body.Message)
	assert.Equal(t, "c1", body.Claim.ID)
	assert.Equal(t, "user-1", app.lastUserID)
	assert.Equal(t, "abc", app.lastCode)
}

func TestCreateClaimMissingBody(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodPost, "/api/v1/claims", signToken(t, "user-1", ""), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateClaimErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown code", models.ErrInvalidDropCode, http.StatusNotFound},
		{"expired drop", models.ErrDropExpired, http.StatusGone},
		{"duplicate claim", models.ErrDuplicateClaim, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &fakeApp{err: tt.err})
			rec := doRequest(s, http.MethodPost, "/api/v1/claims", signToken(t, "user-1", ""), `{"drop_code":"abc"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestResolveClaimForbiddenForNonAdmin(t *testing.T) {
	s := newTestServer(t, &fakeApp{err: models.ErrForbidden})
	rec := doRequest(s, http.MethodPut, "/api/v1/claims/c1/status", signToken(t, "user-1", ""), `{"status":"paid"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestResolveClaimWalletMissing(t *testing.T) {
	s := newTestServer(t, &fakeApp{err: models.ErrWalletMissing})
	rec := doRequest(s, http.MethodPut, "/api/v1/claims/c1/status", signToken(t, "admin-1", ""), `{"status":"paid"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestResolveClaimRejectsUnknownStatus(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodPut, "/api/v1/claims/c1/status", signToken(t, "admin-1", ""), `{"status":"approved"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveClaimSuccess(t *testing.T) {
	app := &fakeApp{claims: []*models.Claim{{ID: "c1", Status: models.ClaimStatusPaid}}}
	s := newTestServer(t, app)

	rec := doRequest(s, http.MethodPut, "/api/v1/claims/c1/status", signToken(t, "admin-1", ""), `{"status":"paid","admin_notes":"sent"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Claim *models.Claim `json:"claim"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ClaimStatusPaid, body.Claim.Status)
}

func TestGetProfileUsesTokenIdentity(t *testing.T) {
	app := &fakeApp{profile: &models.Profile{ID: "p1", UserID: "user-1", Email: "u1@example.com"}}
	s := newTestServer(t, app)

	rec := doRequest(s, http.MethodGet, "/api/v1/profile", signToken(t, "user-1", "u1@example.com"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", app.lastUserID)
}

func TestSetWalletRejectsInvalidAddress(t *testing.T) {
	app := &fakeApp{}
	s := newTestServer(t, app)
	app.err = errInvalidWallet{}

	rec := doRequest(s, http.MethodPut, "/api/v1/profile/wallet", signToken(t, "user-1", ""), `{"wallet_address":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type errInvalidWallet struct{}

func (errInvalidWallet) Error() string { return "invalid wallet address: address must start with 0x" }

func TestGetBalance(t *testing.T) {
	app := &fakeApp{balance: big.NewInt(0).Mul(big.NewInt(500), big.NewInt(1e18))}
	s := newTestServer(t, app)

	rec := doRequest(s, http.MethodGet, "/api/v1/balance?address=0x1111111111111111111111111111111111111111", signToken(t, "user-1", ""), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Address string `json:"address"`
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "500000000000000000000", body.Balance)
}

func TestGetBalanceRequiresAddress(t *testing.T) {
	s := newTestServer(t, &fakeApp{})
	rec := doRequest(s, http.MethodGet, "/api/v1/balance", signToken(t, "user-1", ""), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
