package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mentorbook/infras/otel"
	"mentorbook/infras/postgres"
	"mentorbook/internal/domains/availability/model"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/logger"
	gRepo "mentorbook/shared/repository"
)

// upsertQuery replaces every declared column and keeps the original creation metadata.
const upsertQuery = `INSERT INTO availability_policies
	(target_id, enabled, start_hour, end_hour, active_days, created_at, modified_at, created_by, modified_by)
VALUES
	(:target_id, :enabled, :start_hour, :end_hour, :active_days, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (target_id) DO UPDATE SET
	enabled = excluded.enabled,
	start_hour = excluded.start_hour,
	end_hour = excluded.end_hour,
	active_days = excluded.active_days,
	modified_at = excluded.modified_at,
	modified_by = excluded.modified_by`

type Availability interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Policy, error)
	Upsert(ctx context.Context, policy model.Policy) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Policy]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Policy](model.EntityName, model.TableName, model.FieldTargetID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Upsert(ctx context.Context, policy model.Policy) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.Upsert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertQuery)

	if _, err := repo.db.Write.NamedExecContext(ctx, upsertQuery, policy); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}
