package mapping

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// Значения trans_type, которые пишет внешняя система
const (
	transAutomatic = "AT"
	transManual    = "MT"
)

var (
	automaticAliases = []string{"at", "a", "auto", "automatic", "cvt"}
	manualAliases    = []string{"mt", "m", "manual", "stick"}
)

type flagRecord struct {
	Feature string
	Field   Field
	Value   opt[bool]
}

// carRecord типизированное представление документа машины
type carRecord struct {
	Make         opt[string]
	Model        opt[string]
	Year         opt[int]
	LicensePlate opt[string]
	DailyRate    opt[decimal.Decimal]
	WeeklyRate   opt[decimal.Decimal]
	MonthlyRate  opt[decimal.Decimal]
	Currency     opt[string]
	Seats        opt[int]
	Transmission opt[string]
	Features     opt[[]string]
	LastService  opt[time.Time]
	NextService  opt[time.Time]

	OutOfService     opt[bool]
	UnderMaintenance opt[bool]
	Rented           opt[bool]
	Available        opt[bool]
	LegacyStatus     opt[string]
	Flags            []flagRecord
}

func parseCar(r *reader) carRecord {
	rec := carRecord{
		Make:             readField(r, carMake, toString, storeString),
		Model:            readField(r, carModel, toString, storeString),
		Year:             readField(r, carYear, toInt, storeInt),
		LicensePlate:     readField(r, carLicensePlate, toString, storeString),
		DailyRate:        readField(r, carDailyRate, toDecimal, storeDecimal),
		WeeklyRate:       readField(r, carWeeklyRate, toDecimal, storeDecimal),
		MonthlyRate:      readField(r, carMonthlyRate, toDecimal, storeDecimal),
		Currency:         readField[string](r, carCurrency, toString, nil),
		Seats:            readField(r, carSeats, toInt, storeInt),
		Transmission:     readField[string](r, carTransmission, toString, nil),
		Features:         readField[[]string](r, carFeatures, toStringList, nil),
		LastService:      readField(r, carLastServiceDate, toTime, storeTime),
		NextService:      readField(r, carNextServiceDate, toTime, storeTime),
		OutOfService:     readField(r, carOutOfService, toBool, storeBool),
		UnderMaintenance: readField(r, carUnderMaintenance, toBool, storeBool),
		Rented:           readField(r, carRented, toBool, storeBool),
		Available:        readField(r, carAvailable, toBool, storeBool),
		LegacyStatus:     readField[string](r, carLegacyStatus, toString, nil),
	}
	for _, flag := range featureFlags {
		rec.Flags = append(rec.Flags, flagRecord{
			Feature: flag.Feature,
			Field:   flag.Field,
			Value:   readField(r, flag.Field, toBool, storeBool),
		})
	}
	return rec
}

// Car переводит документ из коллекции Cars в сущность
func (m *Mapper) Car(id string, doc docstore.Document) (*domain.Car, error) {
	r := newReader(EntityCar, id, doc)
	if strings.TrimSpace(id) == "" {
		r.fail(KindInvariantViolated, "id", fmt.Errorf("document id is empty"))
		return nil, r.err()
	}

	rec := parseCar(r)
	if r.failed() {
		return nil, r.err()
	}

	car := buildCar(r, id, rec)
	if r.failed() {
		return nil, r.err()
	}
	car.Source = r.finish(m.observer)
	return car, nil
}

func buildCar(r *reader, id string, rec carRecord) *domain.Car {
	car := &domain.Car{ID: id}

	car.Make = strings.TrimSpace(rec.Make.Value)
	if car.Make == "" {
		r.fail(KindMissingRequiredField, carMake.Canonical, missing(carMake))
		return nil
	}

	if rec.Model.OK {
		car.Model = rec.Model.Value
	} else {
		r.synthesize(carModel, "", EventDefault, "model defaulted to empty")
	}

	currency := carCurrencyOf(r, rec)
	car.DailyRate = carDailyRateOf(r, rec, currency)
	car.WeeklyRate = carOptionalRate(r, carWeeklyRate, rec.WeeklyRate, currency)
	car.MonthlyRate = carOptionalRate(r, carMonthlyRate, rec.MonthlyRate, currency)

	if rec.Year.OK {
		car.Year = rec.Year.Value
		if car.Year < domain.MinCarYear {
			car.Year = domain.MinCarYear
			r.clamp(carYear, rec.Year.Key, rec.Year.Raw, int64(car.Year), fmt.Sprintf("year clamped to %d", domain.MinCarYear))
		}
	}

	if rec.Seats.OK {
		car.Seats = rec.Seats.Value
		switch {
		case car.Seats < domain.MinSeats:
			car.Seats = domain.MinSeats
		case car.Seats > domain.MaxSeats:
			car.Seats = domain.MaxSeats
		}
		if car.Seats != rec.Seats.Value {
			r.clamp(carSeats, rec.Seats.Key, rec.Seats.Raw, int64(car.Seats),
				fmt.Sprintf("seats clamped into %d..%d", domain.MinSeats, domain.MaxSeats))
		}
	}

	car.Transmission = carTransmissionOf(r, rec)
	car.Status = carStatusOf(r, rec)
	car.Features = carFeaturesOf(r, rec)
	car.LastServiceDate = optTime(rec.LastService)
	car.NextServiceDate = optTime(rec.NextService)

	car.LicensePlate = strings.TrimSpace(rec.LicensePlate.Value)
	if car.LicensePlate == "" {
		car.LicensePlate = domain.DeriveLicensePlate(car.Make, id)
		r.synthesize(carLicensePlate, car.LicensePlate, EventDerived, "license plate derived from make and id")
	}
	return car
}

func carCurrencyOf(r *reader, rec carRecord) string {
	if !rec.Currency.OK {
		r.synthesize(carCurrency, domain.DefaultCurrency, EventDefault, "currency defaulted to "+domain.DefaultCurrency)
		return domain.DefaultCurrency
	}
	currency, err := domain.NormalizeCurrency(rec.Currency.Value)
	if err != nil {
		r.fail(KindTypeCoercionFailed, rec.Currency.Key, err)
		return domain.DefaultCurrency
	}
	if currency != rec.Currency.Raw {
		r.coerce(carCurrency, rec.Currency.Key, rec.Currency.Raw, currency, "currency code normalised")
	}
	return currency
}

func carDailyRateOf(r *reader, rec carRecord, currency string) domain.Money {
	minimum := domain.Money{Amount: domain.MinDailyRate, Currency: currency}
	if !rec.DailyRate.OK {
		r.synthesize(carDailyRate, moneyValue(minimum), EventDefault, "daily rate defaulted to minimum")
		return minimum
	}
	if rec.DailyRate.Value.LessThan(domain.MinDailyRate) {
		r.clamp(carDailyRate, rec.DailyRate.Key, rec.DailyRate.Raw, moneyValue(minimum),
			"daily rate below minimum clamped to "+domain.MinDailyRate.String())
		return minimum
	}
	rate, err := domain.NewMoney(rec.DailyRate.Value, currency)
	if err != nil {
		r.fail(KindTypeCoercionFailed, rec.DailyRate.Key, err)
	}
	return rate
}

// carOptionalRate: неположительная недельная или месячная цена означает, что тариф не предлагается
func carOptionalRate(r *reader, f Field, value opt[decimal.Decimal], currency string) *domain.Money {
	if !value.OK {
		return nil
	}
	if !value.Value.IsPositive() {
		r.clamp(f, value.Key, value.Raw, nil, "non-positive rate treated as not offered")
		return nil
	}
	rate, err := domain.NewMoney(value.Value, currency)
	if err != nil {
		r.fail(KindTypeCoercionFailed, value.Key, err)
		return nil
	}
	return &rate
}

func carTransmissionOf(r *reader, rec carRecord) domain.Transmission {
	if !rec.Transmission.OK {
		r.synthesize(carTransmission, transAutomatic, EventDefault, "transmission defaulted to automatic")
		return domain.TransmissionAutomatic
	}
	value := strings.ToLower(strings.TrimSpace(rec.Transmission.Value))
	var (
		transmission domain.Transmission
		stored       string
	)
	switch {
	case contains(automaticAliases, value):
		transmission, stored = domain.TransmissionAutomatic, transAutomatic
	case contains(manualAliases, value):
		transmission, stored = domain.TransmissionManual, transManual
	default:
		r.fail(KindTypeCoercionFailed, rec.Transmission.Key, fmt.Errorf("%w: transmission %q", errUnknownValue, rec.Transmission.Value))
		return ""
	}
	if rec.Transmission.Raw != stored {
		r.coerce(carTransmission, rec.Transmission.Key, rec.Transmission.Raw, stored, "transmission read as "+string(transmission))
	}
	return transmission
}

// carStatusOf таблица решений статуса, первая подходящая строка побеждает
func carStatusOf(r *reader, rec carRecord) domain.CarStatus {
	legacy := strings.ToLower(strings.TrimSpace(rec.LegacyStatus.Value))

	var (
		status domain.CarStatus
		reason string
	)
	switch {
	case rec.OutOfService.Value:
		status, reason = domain.CarStatusMaintenance, "out of service flag"
	case rec.UnderMaintenance.Value:
		status, reason = domain.CarStatusMaintenance, "under maintenance flag"
	case legacy == "maintenance" || legacy == "out_of_service":
		status, reason = domain.CarStatusMaintenance, "legacy status "+legacy
	case rec.Rented.Value:
		status, reason = domain.CarStatusRented, "rented flag"
	case legacy == "rented":
		status, reason = domain.CarStatusRented, "legacy status rented"
	case rec.Available.OK && !rec.Available.Value:
		status, reason = domain.CarStatusMaintenance, "available flag is false"
	default:
		status, reason = domain.CarStatusAvailable, "no blocking signal"
	}
	r.event(EventDerived, "status", nil, fmt.Sprintf("status %s from %s", status, reason))
	return status
}

func carFeaturesOf(r *reader, rec carRecord) []string {
	listed := domain.NormalizeFeatures(rec.Features.Value)
	if rec.Features.OK && !sameValue(listValue(listed), rec.Features.Raw) {
		r.coerce(carFeatures, rec.Features.Key, rec.Features.Raw, listValue(listed), "features sorted and deduplicated")
	}

	features := append([]string(nil), listed...)
	var flaggedOnly []string
	for _, flag := range rec.Flags {
		if !flag.Value.Value {
			continue
		}
		if !contains(listed, flag.Feature) {
			flaggedOnly = append(flaggedOnly, flag.Feature)
		}
		features = append(features, flag.Feature)
	}
	if len(flaggedOnly) > 0 {
		r.state.source.Synthesized[flaggedFeaturesKey] = flaggedOnly
	}
	return domain.NormalizeFeatures(features)
}

// flaggedFeaturesKey отмечает фичи, пришедшие только из флагов has_*
const flaggedFeaturesKey = "features.flagged"

// optTime: отсутствующая дата обслуживания остаётся nil
func optTime(v opt[time.Time]) *time.Time {
	if !v.OK {
		return nil
	}
	t := v.Value
	return &t
}

func timePtrValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func listValue(items []string) any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

// CarDocument переводит машину в документ коллекции Cars
func (m *Mapper) CarDocument(car *domain.Car) docstore.Document {
	w := newWriter(car.Source)

	w.put(carMake, car.Make)
	w.put(carModel, car.Model)
	if car.Year != 0 || w.has(carYear) {
		w.put(carYear, int64(car.Year))
	}
	w.put(carLicensePlate, car.LicensePlate)
	w.put(carCurrency, car.DailyRate.Currency)
	w.put(carDailyRate, moneyValue(car.DailyRate))
	w.put(carWeeklyRate, moneyPtrValue(car.WeeklyRate))
	w.put(carMonthlyRate, moneyPtrValue(car.MonthlyRate))
	if car.Seats != 0 || w.has(carSeats) {
		w.put(carSeats, int64(car.Seats))
	}
	if car.Transmission == domain.TransmissionManual {
		w.put(carTransmission, transManual)
	} else {
		w.put(carTransmission, transAutomatic)
	}

	w.put(carLastServiceDate, timePtrValue(car.LastServiceDate))
	w.put(carNextServiceDate, timePtrValue(car.NextServiceDate))

	writeCarStatus(w, car)
	writeCarFeatures(w, car)
	return w.doc
}

// writeCarStatus пишет флаги так, чтобы таблица решений при чтении дала тот же статус
func writeCarStatus(w *writer, car *domain.Car) {
	isNew := car.Source == nil
	maintenance := car.Status == domain.CarStatusMaintenance
	rented := car.Status == domain.CarStatusRented

	if isNew || maintenance || w.has(carOutOfService) {
		w.put(carOutOfService, maintenance)
	}
	if w.has(carUnderMaintenance) {
		w.put(carUnderMaintenance, maintenance)
	}
	if isNew || rented || w.has(carRented) {
		w.put(carRented, rented)
	}
	if w.has(carAvailable) {
		w.put(carAvailable, car.Status == domain.CarStatusAvailable)
	}
	if w.has(carLegacyStatus) {
		w.put(carLegacyStatus, string(car.Status))
	}
}

func writeCarFeatures(w *writer, car *domain.Car) {
	var flaggedOnly []string
	if w.src != nil {
		flaggedOnly, _ = w.src.Synthesized[flaggedFeaturesKey].([]string)
	}

	var listed []string
	for _, feature := range car.Features {
		if contains(flaggedOnly, feature) {
			continue
		}
		listed = append(listed, feature)
	}
	if len(listed) > 0 || w.has(carFeatures) {
		w.put(carFeatures, listValue(listed))
	}

	for _, flag := range featureFlags {
		if w.has(flag.Field) {
			w.put(flag.Field, car.HasFeature(flag.Feature))
		}
	}
}
