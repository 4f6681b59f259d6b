package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mentorbook/infras/otel"
	"mentorbook/infras/postgres"
	"mentorbook/internal/domains/user/model"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/logger"
	gRepo "mentorbook/shared/repository"
	"mentorbook/shared/timezone"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientCoins is returned when a debit would take a balance below zero.
var ErrInsufficientCoins = errors.New("insufficient coins")

const adjustCoinsQuery = `UPDATE users
SET coins = coins + :delta, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id AND coins + :delta >= 0`

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	AdjustCoins(ctx context.Context, id string, delta int, actor string) error
	AdjustCoinsTx(ctx context.Context, sqltx *sqlx.Tx, id string, delta int, actor string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) AdjustCoins(ctx context.Context, id string, delta int, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.AdjustCoins")
	defer scope.End()

	return repo.adjustCoins(ctx, repo.db.Write, id, delta, actor)
}

// AdjustCoinsTx moves the balance by delta inside sqltx. Debits that would overdraw fail with ErrInsufficientCoins.
func (repo *repositoryImpl) AdjustCoinsTx(ctx context.Context, sqltx *sqlx.Tx, id string, delta int, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.AdjustCoinsTx")
	defer scope.End()

	return repo.adjustCoins(ctx, sqltx, id, delta, actor)
}

func (repo *repositoryImpl) adjustCoins(ctx context.Context, exec sqlx.ExtContext, id string, delta int, actor string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.adjustCoins")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, adjustCoinsQuery)

	result, err := sqlx.NamedExecContext(ctx, exec, adjustCoinsQuery, map[string]any{
		"id":          id,
		"delta":       delta,
		"modified_at": timezone.Now(),
		"modified_by": actor,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to adjust coins (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	if affected == 0 {
		return ErrInsufficientCoins
	}

	return nil
}
