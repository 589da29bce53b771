package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"twoem/internal/model"
	"twoem/internal/repository"
)

// defaultServices is the catalog seeded on first startup.
var defaultServices = []model.Service{
	{
		Name:        "eCitizen Services",
		Category:    "government",
		Description: "Logbook Transfer, Vehicle Inspection, Smart DL Application, Handbook DL Renewal, PSV Badge Applications",
		ImageURL:    "images/ecitizen.jpg",
	},
	{
		Name:        "iTax Services",
		Category:    "tax",
		Description: "Tax Compliance Certificate, Individual Tax Return, Advanced Tax, Company Returns, Group KRA PIN Application",
		ImageURL:    "images/itax.jpg",
	},
	{
		Name:        "Digital Printing",
		Category:    "printing",
		Description: "Business Cards, Award Certificates, Brochures, Funeral Programs, Handouts, Flyers, Maps, Posters",
		ImageURL:    "images/digital_printing.jpg",
	},
	{
		Name:        "Cyber Services",
		Category:    "cyber",
		Description: "Printing, Lamination, Photocopy, Internet Browsing, Typesetting, Instant Passport Photos",
		ImageURL:    "images/cyber_services.jpg",
	},
	{
		Name:        "Other Services",
		Category:    "other",
		Description: "High-Speed Internet, Online Services, Scanning & Photocopy, Design & Layout",
		ImageURL:    "images/other_services.jpg",
	},
}

// CatalogService defines the services-catalog use cases.
type CatalogService interface {
	// List returns active catalog entries for the public services page.
	List(ctx context.Context) ([]model.Service, error)

	// Seed inserts the default catalog if the table is empty.
	Seed(ctx context.Context) error
}

type catalogService struct {
	repo repository.ServiceRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(repo repository.ServiceRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) List(ctx context.Context) ([]model.Service, error) {
	return s.repo.ListActive(ctx)
}

func (s *catalogService) Seed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, svc := range defaultServices {
		svc.ID = uuid.New().String()
		svc.IsActive = true
		svc.CreatedAt = time.Now().UTC()
		if _, err := s.repo.Create(ctx, &svc); err != nil {
			return err
		}
	}
	return nil
}
