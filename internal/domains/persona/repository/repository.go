package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mentorbook/infras/otel"
	"mentorbook/infras/postgres"
	"mentorbook/internal/domains/persona/model"
	gDto "mentorbook/shared/dto"
	gRepo "mentorbook/shared/repository"
)

type Persona interface {
	Insert(ctx context.Context, model model.Persona) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Persona, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Persona, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Persona]
}

func New(db *postgres.Connection, otel otel.Otel) Persona {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Persona](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
