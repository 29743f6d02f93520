package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ghostcoin/ghostdrop/internal/models"
	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

type PostgresDB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

func NewPostgresDB(user, password, dbname, host string, port int, policy models.ClaimPolicy, logger *logger.Logger) (models.Repository, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use standard logger
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond, // Log queries slower than this
			LogLevel:                  gormLogger.Warn,        // Only log warnings or errors
			IgnoreRecordNotFoundError: true,                   // Suppress "record not found" errors
			Colorful:                  true,                   // Enable colorful logs
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %s", err)
	}

	if err := db.AutoMigrate(&models.Drop{}, &models.Claim{}, &models.Profile{}, &models.UserRole{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %s", err)
	}

	if err := ensureClaimUniqueness(db, policy); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to PostgreSQL!")
	return &PostgresDB{Conn: db, logger: logger}, nil
}

// ensureClaimUniqueness installs the unique index matching the configured
// claim policy. The index is what actually serializes concurrent scans of the
// same drop; the application-side duplicate check only gives nicer messages.
func ensureClaimUniqueness(db *gorm.DB, policy models.ClaimPolicy) error {
	var create, drop string
	switch policy {
	case models.PolicyFirstWins:
		create = "CREATE UNIQUE INDEX IF NOT EXISTS uniq_claims_drop ON claims (drop_id)"
		drop = "DROP INDEX IF EXISTS uniq_claims_drop_user"
	default:
		create = "CREATE UNIQUE INDEX IF NOT EXISTS uniq_claims_drop_user ON claims (drop_id, user_id)"
		drop = "DROP INDEX IF EXISTS uniq_claims_drop"
	}
	if err := db.Exec(drop).Error; err != nil {
		return fmt.Errorf("failed to drop stale claim index: %s", err)
	}
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("failed to create claim uniqueness index: %s", err)
	}
	return nil
}

func (db *PostgresDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %s", err)
	}
	return sqlDB.Close()
}

func (db *PostgresDB) CreateDrop(drop *models.Drop) error {
	if err := db.Conn.Create(drop).Error; err != nil {
		return fmt.Errorf("failed to create drop: %s", err)
	}

	return nil
}

func (db *PostgresDB) ListDrops(limit int) ([]*models.Drop, error) {
	var drops []*models.Drop
	query := db.Conn.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&drops).Error; err != nil {
		return nil, fmt.Errorf("failed to list drops: %s", err)
	}

	return drops, nil
}

func (db *PostgresDB) ListDropsWithCoordinates() ([]*models.Drop, error) {
	var drops []*models.Drop
	if err := db.Conn.Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").Find(&drops).Error; err != nil {
		return nil, fmt.Errorf("failed to list drops with coordinates: %s", err)
	}

	return drops, nil
}

func (db *PostgresDB) GetDropByCode(dropCode string) (*models.Drop, error) {
	var drop models.Drop
	if err := db.Conn.Where("drop_code = ?", dropCode).First(&drop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drop by code: %s", err)
	}

	return &drop, nil
}

func (db *PostgresDB) GetDrop(id string) (*models.Drop, error) {
	var drop models.Drop
	if err := db.Conn.Where("id = ?", id).First(&drop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drop: %s", err)
	}

	return &drop, nil
}

func (db *PostgresDB) InsertClaim(claim *models.Claim) error {
	if err := db.Conn.Create(claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateClaim
		}
		return fmt.Errorf("failed to insert claim: %s", err)
	}

	return nil
}

func (db *PostgresDB) FindClaimByDropAndUser(dropID, userID string) (*models.Claim, error) {
	var claim models.Claim
	if err := db.Conn.Where("drop_id = ? AND user_id = ?", dropID, userID).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find claim: %s", err)
	}

	return &claim, nil
}

func (db *PostgresDB) FindClaimByDrop(dropID string) (*models.Claim, error) {
	var claim models.Claim
	if err := db.Conn.Where("drop_id = ?", dropID).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find claim: %s", err)
	}

	return &claim, nil
}

func (db *PostgresDB) GetClaim(id string) (*models.Claim, error) {
	var claim models.Claim
	if err := db.Conn.Where("id = ?", id).First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %s", err)
	}

	return &claim, nil
}

func (db *PostgresDB) ListClaimsForUser(userID string) ([]*models.Claim, error) {
	var claims []*models.Claim
	if err := db.Conn.Where("user_id = ?", userID).Order("claimed_at DESC").Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("failed to list claims for user: %s", err)
	}

	return claims, nil
}

func (db *PostgresDB) ListClaims(limit int) ([]*models.Claim, error) {
	var claims []*models.Claim
	query := db.Conn.Order("claimed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("failed to list claims: %s", err)
	}

	return claims, nil
}

func (db *PostgresDB) UpdateClaim(claim *models.Claim) error {
	if err := db.Conn.Save(claim).Error; err != nil {
		return fmt.Errorf("failed to update claim: %s", err)
	}

	return nil
}

func (db *PostgresDB) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Conn.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %s", err)
	}

	return &profile, nil
}

func (db *PostgresDB) UpsertProfile(profile *models.Profile) error {
	if err := db.Conn.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to upsert profile: %s", err)
	}

	return nil
}

func (db *PostgresDB) ListProfilesWithWallets() ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := db.Conn.Where("wallet_address <> ''").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles with wallets: %s", err)
	}

	return profiles, nil
}

func (db *PostgresDB) HasRole(userID, role string) (bool, error) {
	var userRole models.UserRole
	if err := db.Conn.Where("user_id = ? AND role = ?", userID, role).First(&userRole).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check role: %s", err)
	}

	return true, nil
}
