package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andrelbraga/maintkit/internal/db"
	"github.com/andrelbraga/maintkit/internal/domain"
	"github.com/andrelbraga/maintkit/internal/importer"
	"github.com/andrelbraga/maintkit/internal/repository"
)

// ImportResult summarizes one bulk import.
type ImportResult struct {
	Created  int
	Warnings []string
}

type importService struct {
	uow db.UnitOfWork
	log *slog.Logger
}

// NewImportService creates the bulk plan importer. The whole file is applied
// in one transaction: either every plan is created or none are.
func NewImportService(uow db.UnitOfWork, logger *slog.Logger) ImportService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &importService{uow: uow, log: logger}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, err
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("import file is invalid: %w", errors.Join(errs...))
	}

	plans, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}

	warnings := importer.FrequencyWarnings(schema)
	for _, w := range warnings {
		s.log.WarnContext(ctx, "import warning", slog.String("detail", w))
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		for _, p := range plans {
			if err := repo.Create(ctx, p); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return fmt.Errorf("plan %s already exists: %w", p.Code, err)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "import finished",
		slog.String("file", path),
		slog.Int("plans_created", len(plans)),
	)
	return &ImportResult{Created: len(plans), Warnings: warnings}, nil
}
