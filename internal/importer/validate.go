package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrelbraga/maintkit/internal/recurrence"
)

const dateLayout = "2006-01-02"

// ValidateImportSchema checks the schema for structural problems and returns
// all of them at once, so a bad file can be fixed in one pass instead of one
// error per attempt.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Plans) == 0 {
		return []error{fmt.Errorf("import file contains no plans")}
	}

	seen := make(map[string]bool, len(schema.Plans))
	for i, p := range schema.Plans {
		prefix := fmt.Sprintf("plans[%d]", i)
		if p.Code != "" {
			prefix = fmt.Sprintf("plan %s", p.Code)
		}

		if strings.TrimSpace(p.Code) == "" {
			errs = append(errs, fmt.Errorf("%s: code is required", prefix))
		} else {
			upper := strings.ToUpper(strings.TrimSpace(p.Code))
			if seen[upper] {
				errs = append(errs, fmt.Errorf("%s: duplicate code", prefix))
			}
			seen[upper] = true
		}

		if strings.TrimSpace(p.Description) == "" {
			errs = append(errs, fmt.Errorf("%s: description is required", prefix))
		}

		var start *time.Time
		if p.StartDate != "" {
			d, err := time.Parse(dateLayout, p.StartDate)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid start_date %q (want YYYY-MM-DD)", prefix, p.StartDate))
			} else {
				start = &d
			}
		}
		if p.EndDate != nil && *p.EndDate != "" {
			end, err := time.Parse(dateLayout, *p.EndDate)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid end_date %q (want YYYY-MM-DD)", prefix, *p.EndDate))
			} else if start != nil && !end.After(*start) {
				errs = append(errs, fmt.Errorf("%s: end_date %s is not after start_date %s", prefix, *p.EndDate, p.StartDate))
			}
		}

		if p.CrewSize < 0 {
			errs = append(errs, fmt.Errorf("%s: crew_size must not be negative", prefix))
		}
		if p.PersonHours < 0 {
			errs = append(errs, fmt.Errorf("%s: person_hours must not be negative", prefix))
		}
	}

	return errs
}

// FrequencyWarnings lists the plans whose frequency label is unrecognized
// and will generate on the weekly fallback cadence. These are warnings, not
// errors: the import still proceeds.
func FrequencyWarnings(schema *ImportSchema) []string {
	var warnings []string
	for _, p := range schema.Plans {
		label := p.Frequency
		if label == "" && schema.Defaults != nil {
			label = schema.Defaults.Frequency
		}
		if label == "" {
			continue
		}
		if _, info := recurrence.NormalizeFrequency(label); info.Fallback {
			warnings = append(warnings,
				fmt.Sprintf("plan %s: frequency %q is unrecognized and will generate weekly", p.Code, label))
		}
	}
	return warnings
}
