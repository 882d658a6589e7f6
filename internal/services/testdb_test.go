package services

import (
	"database/sql"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jalanma/jalanma-backend/internal/config"
	"github.com/jalanma/jalanma-backend/internal/events"
	"github.com/jalanma/jalanma-backend/internal/models"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var registerMathDriver sync.Once

// registerSQLiteMath registers a sqlite driver with the scalar functions the
// distance predicate needs (Postgres has them built in, sqlite does not), so
// the radius filter runs unchanged against the test database.
func registerSQLiteMath() {
	registerMathDriver.Do(func() {
		sql.Register("sqlite3_math", &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				scalars := map[string]interface{}{
					"acos":     math.Acos,
					"cos":      math.Cos,
					"sin":      math.Sin,
					"radians":  func(deg float64) float64 { return deg * math.Pi / 180 },
					"least":    math.Min,
					"greatest": math.Max,
				}
				for name, impl := range scalars {
					if err := conn.RegisterFunc(name, impl, true); err != nil {
						return err
					}
				}
				return nil
			},
		})
	})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	registerSQLiteMath()

	db, err := gorm.Open(&sqlite.Dialector{DriverName: "sqlite3_math", DSN: ":memory:"}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Single connection: each sqlite :memory: connection is its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RoadDamageReport{},
		&models.RefreshToken{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		UploadBaseURL:    "https://storage.jalanma.app",
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     "Budi Santoso",
		Provider: models.ProviderEmail,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedReport(t *testing.T, db *gorm.DB, userID uuid.UUID, status string, createdAt time.Time, lat, lng float64) *models.RoadDamageReport {
	t.Helper()

	report := models.RoadDamageReport{
		ID:              uuid.New(),
		UserID:          userID,
		ReporterName:    "Budi Santoso",
		ReporterPhone:   "081234567890",
		ReporterAddress: "Jl. Sudirman No. 1, Jakarta",
		ReportDate:      createdAt,
		PhotoURL:        "https://storage.jalanma.app/uploads/road-damage-1.jpg",
		Latitude:        lat,
		Longitude:       lng,
		Status:          status,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	require.NoError(t, db.Create(&report).Error)
	return &report
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	subjects []string
	events   []events.ReportEvent
}

func (p *capturePublisher) Publish(subject string, event events.ReportEvent) {
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, event)
}

func (p *capturePublisher) Close() {}

func ptr[T any](v T) *T {
	return &v
}
