package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/storage/mapping"
	"github.com/d3coo/car-rental-fastapi-vite/internal/service/cars/models"
)

// Service сервис для работы с парком машин
type Service struct {
	carRepo CarRepository
	now     func() time.Time
	logger  Logger
}

// NewService создает новый экземпляр сервиса машин
func NewService(carRepo CarRepository, logger Logger) *Service {
	return &Service{
		carRepo: carRepo,
		now:     time.Now,
		logger:  logger,
	}
}

// GetByID получает машину по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.CarResponse, error) {
	s.logger.Info("GetByID: fetching car id=%s", id)

	car, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainCar(car), nil
}

// List получает список машин с фильтрацией и пагинацией.
// Документы, которые не удалось прочитать, пропускаются и учитываются в Skipped.
func (s *Service) List(ctx context.Context, req *models.ListCarsRequest) (*models.CarListResponse, error) {
	filter, err := req.ToDomainFilter(s.now().UTC())
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cars, err := s.carRepo.List(ctx, filter, domain.Page{Number: req.Page, Size: req.PageSize})
	skipped := 0
	if err != nil {
		if !errors.Is(err, mapping.ErrMapping) {
			s.logger.Error("List: repository error: %v", err)
			return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
		}
		skipped = mapping.CountErrors(err)
		s.logger.Warn("List: skipped %d unreadable car documents: %v", skipped, err)
	}

	s.logger.Info("List: fetched %d cars", len(cars))
	return models.FromDomainCarList(cars, skipped), nil
}

// GetByLicensePlate ищет машину по номерному знаку без учёта регистра.
// Нечитаемые документы не мешают поиску: если среди читаемых машины нет, ответ ErrCarNotFound.
func (s *Service) GetByLicensePlate(ctx context.Context, plate string) (*models.CarResponse, error) {
	plate = strings.TrimSpace(plate)
	s.logger.Info("GetByLicensePlate: fetching car plate=%s", plate)
	if plate == "" {
		return nil, fmt.Errorf("%w: license plate is required", ErrInvalidInput)
	}

	filter := domain.CarFilter{LicensePlate: &plate}
	cars, err := s.carRepo.List(ctx, filter, domain.Page{Number: 1, Size: 1})
	if err != nil {
		if !errors.Is(err, mapping.ErrMapping) {
			s.logger.Error("GetByLicensePlate: repository error: %v", err)
			return nil, fmt.Errorf("%w: GetByLicensePlate - repository error: %w", ErrInternal, err)
		}
		s.logger.Warn("GetByLicensePlate: skipped %d unreadable car documents: %v", mapping.CountErrors(err), err)
	}
	if len(cars) == 0 {
		s.logger.Warn("GetByLicensePlate: car plate=%s not found", plate)
		return nil, ErrCarNotFound
	}

	return models.FromDomainCar(cars[0]), nil
}

// Create добавляет машину в парк
func (s *Service) Create(ctx context.Context, req *models.CreateCarRequest) (*models.CarResponse, error) {
	s.logger.Info("Create: make=%s, model=%s, plate=%s", req.Make, req.Model, req.LicensePlate)

	params, err := req.ToDomainParams()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	car, err := domain.NewCar(params)
	if err != nil {
		s.logger.Warn("Create: car validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.carRepo.Save(ctx, car)
	if err != nil {
		s.logger.Error("Create: failed to save car: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: car id=%s created", saved.ID)
	return models.FromDomainCar(saved), nil
}

// UpdateStatus меняет статус машины через переходы доменной модели
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.CarResponse, error) {
	s.logger.Info("UpdateStatus: car id=%s, status=%s", id, req.Status)

	status, err := models.ToDomainCarStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	car, err := s.load(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.CarStatusAvailable:
		car.MarkAvailable()
	case domain.CarStatusRented:
		err = car.MarkRented()
	case domain.CarStatusMaintenance:
		err = car.SendToMaintenance()
	}
	if err != nil {
		s.logger.Warn("UpdateStatus: car id=%s cannot move from %s to %s", id, car.Status, status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	return s.save(ctx, "UpdateStatus", car)
}

// UpdateRate меняет дневную цену машины в её валюте
func (s *Service) UpdateRate(ctx context.Context, id string, req *models.UpdateRateRequest) (*models.CarResponse, error) {
	s.logger.Info("UpdateRate: car id=%s, rate=%s", id, req.DailyRate)

	car, err := s.load(ctx, "UpdateRate", id)
	if err != nil {
		return nil, err
	}

	rate, err := models.ParseMoney(req.DailyRate, car.DailyRate.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := car.SetDailyRate(rate); err != nil {
		s.logger.Warn("UpdateRate: rejected rate for car id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.save(ctx, "UpdateRate", car)
}

// Delete удаляет машину
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: car id=%s", id)

	if err := s.carRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Delete: car id=%s not found", id)
			return ErrCarNotFound
		}
		s.logger.Error("Delete: repository error for car id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, op, id string) (*domain.Car, error) {
	car, err := s.carRepo.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("%s: car id=%s not found", op, id)
			return nil, ErrCarNotFound
		case errors.Is(err, mapping.ErrMapping):
			s.logger.Error("%s: car id=%s cannot be mapped: %v", op, id, err)
			return nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
		}
		s.logger.Error("%s: repository error for car id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return car, nil
}

func (s *Service) save(ctx context.Context, op string, car *domain.Car) (*models.CarResponse, error) {
	saved, err := s.carRepo.Save(ctx, car)
	if err != nil {
		s.logger.Error("%s: failed to save car id=%s: %v", op, car.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	s.logger.Info("%s: car id=%s saved, status=%s", op, saved.ID, saved.Status)
	return models.FromDomainCar(saved), nil
}
