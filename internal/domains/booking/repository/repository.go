package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mentorbook/infras/otel"
	"mentorbook/infras/postgres"
	"mentorbook/internal/domains/booking/model"
	"mentorbook/internal/scheduling"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/logger"
	gRepo "mentorbook/shared/repository"
	"mentorbook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// transitionQuery only matches while the row still holds the status the caller read.
const transitionQuery = `UPDATE bookings
SET status = :to_status, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id AND status = :from_status`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetByTargetAndDates(ctx context.Context, targetID string, from, to scheduling.Date) ([]model.Booking, error)
	TransitionTx(ctx context.Context, sqltx *sqlx.Tx, id string, from, to scheduling.Status, actor string) (bool, error)
	Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetByTargetAndDates returns every booking of the target between from and to inclusive,
// released ones included, ordered by date and start time.
func (repo *repositoryImpl) GetByTargetAndDates(ctx context.Context, targetID string, from, to scheduling.Date) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetByTargetAndDates")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTargetID,
				Operator: gDto.FilterOperatorEq,
				Value:    targetID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "date_from",
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from.String(),
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    to.String(),
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldBookingDate + ", " + model.TableName + "." + model.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// TransitionTx moves the booking from one status to another inside sqltx. It reports false
// when the row no longer carries the from status.
func (repo *repositoryImpl) TransitionTx(ctx context.Context, sqltx *sqlx.Tx, id string, from, to scheduling.Status, actor string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.TransitionTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, transitionQuery)

	result, err := sqltx.NamedExecContext(ctx, transitionQuery, map[string]any{
		"id":          id,
		"from_status": string(from),
		"to_status":   string(to),
		"modified_at": timezone.Now(),
		"modified_by": actor,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to transition data (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected == 1, nil
}
