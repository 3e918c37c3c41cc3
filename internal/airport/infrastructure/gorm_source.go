package infrastructure

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/globehunters/flight-bff/internal/airport/domain"
	"github.com/globehunters/flight-bff/pkg/application"
	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

type airportModel struct {
	ID          string `gorm:"primaryKey;column:id"`
	City        string `gorm:"column:city;index"`
	Country     string `gorm:"column:country"`
	CountryCode string `gorm:"column:country_code"`
	Name        string `gorm:"column:name"`
}

func (airportModel) TableName() string {
	return "airports"
}

// GormAirportSource reads the directory dataset from Postgres. Unlike the
// embedded dataset this source is live, so a directory built on it supports a
// real refresh.
type GormAirportSource struct {
	db     *gorm.DB
	logger application.AppLogger
}

func NewGormAirportSource(dsn string, logger application.AppLogger) (*GormAirportSource, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: opening airport database: %v", pkgDomain.ErrDataUnavailable, err)
	}

	if err = db.AutoMigrate(&airportModel{}); err != nil {
		return nil, fmt.Errorf("%w: migrating airports table: %v", pkgDomain.ErrDataUnavailable, err)
	}

	return &GormAirportSource{
		db:     db,
		logger: logger,
	}, nil
}

func (s *GormAirportSource) Load(ctx context.Context) ([]domain.Airport, error) {
	var models []airportModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		application.LogError(ctx, s.logger, "failed to load airports", err, nil)
		return nil, fmt.Errorf("%w: loading airports table: %v", pkgDomain.ErrDataUnavailable, err)
	}

	records := make([]airportRecord, 0, len(models))
	for _, m := range models {
		records = append(records, airportRecord{
			ID:          m.ID,
			City:        m.City,
			Country:     m.Country,
			CountryCode: m.CountryCode,
			Name:        m.Name,
		})
	}

	application.LogInfo(ctx, s.logger, "airports loaded", map[string]interface{}{
		"count": len(records),
	})

	return mapRecords(records)
}
