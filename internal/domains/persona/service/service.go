package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"

	"mentorbook/config"
	"mentorbook/infras/otel"
	"mentorbook/infras/s3"
	"mentorbook/internal/domains/persona/model"
	"mentorbook/internal/domains/persona/model/dto"
	"mentorbook/internal/domains/persona/repository"
	"mentorbook/shared"
	"mentorbook/shared/cache"
	"mentorbook/shared/constant"
	gDto "mentorbook/shared/dto"
	"mentorbook/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetPersona    = "persona:get"
	cacheGetAllPersona = "persona:gets"
	cacheCountPersona  = "persona:count"
)

type Persona interface {
	Create(ctx context.Context, req dto.CreatePersonaRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPersonasResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PersonaResponse, error)
	Update(ctx context.Context, req dto.UpdatePersonaRequest, id string) error
	Deactivate(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Persona
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Persona, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Persona {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePersonaRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, objectKey, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return id, err
	}

	persona := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, persona); err != nil {
		log.Error().Err(err).Msg("failed to create persona")

		if objectKey != constant.Empty {
			_ = s.s3.Delete(ctx, objectKey)
		}

		return id, fmt.Errorf("failed to create persona: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPersona)
		shared.InvalidateCaches(c, s.cache, cacheCountPersona)
	}()

	return persona.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPersonasResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPersona, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for personas")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count personas")

		return res, fmt.Errorf("failed to count personas: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req.Sortable(model.TableName, model.FieldName, constant.FieldCreatedAt), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get personas")

		return res, fmt.Errorf("failed to get personas: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save personas to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPersona, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for persona count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count personas")

		return res, fmt.Errorf("failed to count personas: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save persona count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PersonaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetPersona, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for persona")

		return res, nil
	}

	persona, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get persona")

		return res, fmt.Errorf("failed to get persona: %w", err)
	}

	if persona.ID == constant.Empty {
		return res, failure.NotFound("persona not found") // nolint:wrapcheck
	}

	res.FromModel(persona)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save persona to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePersonaRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get persona")

		return fmt.Errorf("failed to get persona: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("persona not found")
	}

	imageURL, objectKey, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update persona")

		if objectKey != constant.Empty {
			_ = s.s3.Delete(ctx, objectKey)
		}

		return fmt.Errorf("failed to update persona: %w", err)
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		if old := s.s3.KeyFromURL(current.Image); old != constant.Empty {
			_ = s.s3.Delete(ctx, old)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// Deactivate hides the persona from new bookings. Rows are kept so past bookings stay resolvable.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if persona exists")

		return fmt.Errorf("failed to check if persona exists: %w", err)
	}

	if !exist {
		return failure.NotFound("persona not found")
	}

	inactive := false

	if err = s.repo.Update(ctx, shared.TransformFields(dto.UpdatePersonaRequest{Active: &inactive}, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate persona")

		return fmt.Errorf("failed to deactivate persona: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// uploadImage stores the image under persona/<uuid><ext>. A missing header uploads nothing.
func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, key string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	key = path.Join(model.EntityName, uuid.NewString()+filepath.Ext(header.Filename))

	url, err = s.s3.Upload(ctx, key, header.Header.Get(constant.RequestHeaderContentType), file)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, key, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPersona, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete persona from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPersona)
		shared.InvalidateCaches(c, s.cache, cacheCountPersona)
	}()
}
