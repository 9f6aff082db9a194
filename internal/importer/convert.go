package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated ImportSchema into domain plans ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema
// is valid.
func Convert(schema *ImportSchema) ([]*domain.Plan, error) {
	now := time.Now().UTC()
	defaults := schema.Defaults
	if defaults == nil {
		defaults = &DefaultsImport{}
	}

	plans := make([]*domain.Plan, 0, len(schema.Plans))
	for _, pi := range schema.Plans {
		startDate, err := parseOptionalDate(pi.StartDate)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", pi.Code, err)
		}
		var endDate *time.Time
		if pi.EndDate != nil {
			if endDate, err = parseOptionalDate(*pi.EndDate); err != nil {
				return nil, fmt.Errorf("plan %s: %w", pi.Code, err)
			}
		}

		status := domain.PlanActive
		if pi.Inactive {
			status = domain.PlanInactive
		}

		plans = append(plans, &domain.Plan{
			ID:          uuid.New().String(),
			Code:        strings.ToUpper(strings.TrimSpace(pi.Code)),
			Description: pi.Description,
			Status:      status,
			StartDate:   startDate,
			EndDate:     endDate,
			Frequency:   stringOr(pi.Frequency, defaults.Frequency),
			Workshop:    stringOr(pi.Workshop, defaults.Workshop),
			CrewSize:    intOr(pi.CrewSize, defaults.CrewSize),
			PersonHours: floatOr(pi.PersonHours, defaults.PersonHours),
			Condition:   stringOr(pi.Condition, defaults.Condition),
			SiteRef:     stringOr(pi.SiteRef, defaults.SiteRef),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return plans, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return &d, nil
}

func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func intOr(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}

func floatOr(value, fallback float64) float64 {
	if value != 0 {
		return value
	}
	return fallback
}
