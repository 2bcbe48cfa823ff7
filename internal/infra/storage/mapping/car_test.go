package mapping

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

var ignoreCarSource = cmpopts.IgnoreFields(domain.Car{}, "Source")

func TestMapper_Car_ToyotaScenario(t *testing.T) {
	rec := &Recorder{}
	m := NewMapper(rec)

	car, err := m.Car("abcd1234", docstore.Document{
		"make":           "Toyota",
		"rental_price":   0,
		"Seats":          4,
		"trans_type":     "AT",
		"isOutOfService": false,
	})
	require.NoError(t, err)

	assert.Equal(t, "abcd1234", car.ID)
	assert.Equal(t, "TOY-abcd", car.LicensePlate)
	assert.True(t, car.DailyRate.Amount.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "SAR", car.DailyRate.Currency)
	assert.Equal(t, 4, car.Seats)
	assert.Equal(t, domain.TransmissionAutomatic, car.Transmission)
	assert.Equal(t, domain.CarStatusAvailable, car.Status)

	clamps := rec.OfKind(EventClamp)
	require.Len(t, clamps, 1)
	assert.Equal(t, "rental_price", clamps[0].Field)
	assert.Equal(t, "0", clamps[0].RawValue)
	assert.Equal(t, EntityCar, clamps[0].EntityType)
	assert.Equal(t, "abcd1234", clamps[0].DocumentID)

	// сырое значение сохранено для аудита
	assert.Equal(t, domain.Clamp{Raw: 0, Applied: 1.0}, car.Source.Clamped["rental_price_day"])
}

func TestMapper_Car_DerivedPlate(t *testing.T) {
	tests := []struct {
		make string
		id   string
		want string
	}{
		{"Toyota", "abcd1234", "TOY-abcd"},
		{"kia", "xy", "KIA-xy"},
		{"  mercedes-benz", "m-0099", "MER-m-00"},
		{"BMW", "ZZZZZZ", "BMW-ZZZZ"},
	}

	m := NewMapper(nil)
	for _, tt := range tests {
		t.Run(tt.make, func(t *testing.T) {
			car, err := m.Car(tt.id, docstore.Document{"make": tt.make})
			require.NoError(t, err)
			assert.Equal(t, tt.want, car.LicensePlate)
			assert.Equal(t, tt.want, car.Source.Synthesized["license_plate"])
		})
	}
}

func TestMapper_Car_PresentPlateWins(t *testing.T) {
	car, err := NewMapper(nil).Car("abcd1234", docstore.Document{"make": "Toyota", "plate_number": "ABC-123"})
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", car.LicensePlate)
	assert.Equal(t, "plate_number", car.Source.FieldName("license_plate"))
}

func TestMapper_Car_NonPositiveRateClamped(t *testing.T) {
	for _, raw := range []any{0, -5, -0.01, "0", 0.5} {
		rec := &Recorder{}
		car, err := NewMapper(rec).Car("c1", docstore.Document{"make": "Kia", "rental_price_day": raw})
		require.NoError(t, err, "%v", raw)
		assert.True(t, car.DailyRate.Amount.Equal(decimal.NewFromInt(1)), "%v", raw)
		assert.Len(t, rec.OfKind(EventClamp), 1, "%v", raw)
	}
}

func TestMapper_Car_StatusDecisionTable(t *testing.T) {
	tests := []struct {
		name string
		doc  docstore.Document
		want domain.CarStatus
	}{
		{"no signal", docstore.Document{}, domain.CarStatusAvailable},
		{"out of service beats rented", docstore.Document{"isOutOfService": true, "isRented": true, "isAvailable": true}, domain.CarStatusMaintenance},
		{"out of service beats legacy", docstore.Document{"isOutOfService": true, "status": "available"}, domain.CarStatusMaintenance},
		{"under maintenance", docstore.Document{"underMaintenance": true}, domain.CarStatusMaintenance},
		{"legacy out_of_service", docstore.Document{"status": "out_of_service", "isRented": true}, domain.CarStatusMaintenance},
		{"rented flag", docstore.Document{"isRented": true, "isOutOfService": false}, domain.CarStatusRented},
		{"legacy rented", docstore.Document{"status": "Rented"}, domain.CarStatusRented},
		{"not available", docstore.Document{"isAvailable": false}, domain.CarStatusMaintenance},
		{"available", docstore.Document{"isAvailable": true}, domain.CarStatusAvailable},
		{"string flag", docstore.Document{"is_out_of_service": "true"}, domain.CarStatusMaintenance},
	}

	m := NewMapper(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doc["make"] = "Kia"
			car, err := m.Car("c1", tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, car.Status)
		})
	}
}

func TestMapper_Car_Transmission(t *testing.T) {
	m := NewMapper(nil)
	for raw, want := range map[string]domain.Transmission{
		"AT": domain.TransmissionAutomatic, "auto": domain.TransmissionAutomatic, "CVT": domain.TransmissionAutomatic,
		"MT": domain.TransmissionManual, "manual": domain.TransmissionManual, "stick": domain.TransmissionManual,
	} {
		car, err := m.Car("c1", docstore.Document{"make": "Kia", "transmission": raw})
		require.NoError(t, err, raw)
		assert.Equal(t, want, car.Transmission, raw)
	}

	_, err := m.Car("c1", docstore.Document{"make": "Kia", "trans_type": "hover"})
	assert.ErrorIs(t, err, ErrTypeCoercionFailed)
	assert.ErrorIs(t, err, ErrMapping)
}

func TestMapper_Car_Clamps(t *testing.T) {
	rec := &Recorder{}
	car, err := NewMapper(rec).Car("c1", docstore.Document{
		"make":              "Kia",
		"seats":             120,
		"year":              1850,
		"rental_price_week": 0,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxSeats, car.Seats)
	assert.Equal(t, domain.MinCarYear, car.Year)
	assert.Nil(t, car.WeeklyRate)
	assert.Len(t, rec.OfKind(EventClamp), 3)
}

func TestMapper_Car_Features(t *testing.T) {
	car, err := NewMapper(nil).Car("c1", docstore.Document{
		"make":            "Kia",
		"features":        []any{"usb_charger", "sunroof", "sunroof"},
		"has_gps":         true,
		"has_bluetooth":   false,
		"has_usb_charger": true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gps", "sunroof", "usb_charger"}, car.Features)
}

func TestMapper_Car_Errors(t *testing.T) {
	m := NewMapper(nil)

	_, err := m.Car("c1", docstore.Document{"model": "Rio"})
	var merr *MappingError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, KindMissingRequiredField, merr.Kind)
	assert.Equal(t, []string{"make"}, merr.Fields)
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	_, err = m.Car("", docstore.Document{"make": "Kia"})
	assert.ErrorIs(t, err, ErrInvariantViolated)

	_, err = m.Car("c1", docstore.Document{"make": "Kia", "Currency": "riyal"})
	assert.ErrorIs(t, err, ErrTypeCoercionFailed)

	_, err = m.Car("c1", docstore.Document{"make": "Kia", "rental_price": "cheap", "Seats": "many"})
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, []string{"rental_price", "Seats"}, merr.Fields)
}

func TestMapper_Car_EventsOnlyOnSuccess(t *testing.T) {
	rec := &Recorder{}
	_, err := NewMapper(rec).Car("c1", docstore.Document{"rental_price": 0})
	require.Error(t, err)
	assert.Empty(t, rec.Events())
}

func TestMapper_CarDocument_RoundTrip(t *testing.T) {
	m := NewMapper(nil)
	source := docstore.Document{
		"make":                "Hyundai",
		"model":               "Elantra",
		"year":                "2021",
		"rental_price":        -3,
		"rental_price_mounth": 2400.5,
		"currency":            "sar",
		"seats":               5,
		"transmission":        "automatic",
		"features":            []any{"gps"},
		"has_bluetooth":       true,
		"isAvailable":         true,
		"color":               "white",
	}

	car, err := m.Car("hyun0001", source)
	require.NoError(t, err)

	doc := m.CarDocument(car)
	// имена и сырые значения из источника сохраняются
	assert.Equal(t, -3, doc["rental_price"])
	assert.Equal(t, "sar", doc["currency"])
	assert.Equal(t, "2021", doc["year"])
	assert.Equal(t, "automatic", doc["transmission"])
	assert.Equal(t, 2400.5, doc["rental_price_mounth"])
	assert.Equal(t, "white", doc["color"])
	assert.Equal(t, true, doc["has_bluetooth"])
	assert.NotContains(t, doc, "license_plate")
	assert.NotContains(t, doc, "rental_price_day")

	again, err := m.Car("hyun0001", doc)
	require.NoError(t, err)
	if diff := cmp.Diff(car, again, ignoreCarSource); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// сохранение без изменений даёт тот же документ
	assert.Equal(t, doc, m.CarDocument(again))
}

func TestMapper_CarDocument_Changes(t *testing.T) {
	m := NewMapper(nil)
	car, err := m.Car("abcd1234", docstore.Document{"make": "Toyota", "rental_price": 0, "has_gps": true})
	require.NoError(t, err)

	require.NoError(t, car.SetDailyRate(domain.MustMoney("180", "SAR")))
	require.NoError(t, car.MarkRented())
	car.LicensePlate = "TOY-9999"
	car.Features = []string{"bluetooth"}

	doc := m.CarDocument(car)
	assert.Equal(t, 180.0, doc["rental_price"])
	assert.Equal(t, "TOY-9999", doc["license_plate"])
	assert.Equal(t, true, doc["isRented"])
	assert.Equal(t, false, doc["has_gps"])
	assert.Equal(t, []any{"bluetooth"}, doc["features"])

	again, err := m.Car("abcd1234", doc)
	require.NoError(t, err)
	if diff := cmp.Diff(car, again, ignoreCarSource); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMapper_CarDocument_NewCar(t *testing.T) {
	car, err := domain.NewCar(domain.NewCarParams{
		Make:         "Nissan",
		Model:        "Patrol",
		LicensePlate: "NIS-0001",
		DailyRate:    domain.MustMoney("450", "SAR"),
		Seats:        7,
		Features:     []string{"gps", "sunroof"},
	})
	require.NoError(t, err)
	car.ID = "nis-1"

	m := NewMapper(nil)
	doc := m.CarDocument(car)
	assert.Equal(t, "Nissan", doc["make"])
	assert.Equal(t, 450.0, doc["rental_price_day"])
	assert.Equal(t, "AT", doc["trans_type"])
	assert.Equal(t, false, doc["isOutOfService"])

	back, err := m.Car(car.ID, doc)
	require.NoError(t, err)
	if diff := cmp.Diff(car, back, ignoreCarSource); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMapper_Car_ServiceDates(t *testing.T) {
	next := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 10, 1, 8, 30, 0, 0, time.UTC)
	rec := &Recorder{}
	m := NewMapper(rec)

	car, err := m.Car("kia77881", docstore.Document{
		"make":              "Kia",
		"rental_price":      120,
		"nextServiceDate":   "2025-04-01",
		"last_service_date": map[string]any{"_seconds": last.Unix(), "_nanoseconds": 0},
	})
	require.NoError(t, err)
	require.NotNil(t, car.NextServiceDate)
	require.NotNil(t, car.LastServiceDate)
	assert.True(t, next.Equal(*car.NextServiceDate))
	assert.True(t, last.Equal(*car.LastServiceDate))

	doc := m.CarDocument(car)
	// непрочитанное имя и сырая строка сохраняются
	assert.Equal(t, "2025-04-01", doc["nextServiceDate"])
	assert.NotContains(t, doc, "next_service_date")

	moved := next.AddDate(0, 6, 0)
	car.NextServiceDate = &moved
	doc = m.CarDocument(car)
	assert.Equal(t, moved, doc["nextServiceDate"])

	again, err := m.Car("kia77881", doc)
	require.NoError(t, err)
	if diff := cmp.Diff(car, again, ignoreCarSource); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMapper_Car_NoServiceDates(t *testing.T) {
	m := NewMapper(nil)
	car, err := m.Car("c1", docstore.Document{"make": "Kia", "rental_price": 120, "next_service_date": nil})
	require.NoError(t, err)
	assert.Nil(t, car.NextServiceDate)
	assert.Nil(t, car.LastServiceDate)

	doc := m.CarDocument(car)
	assert.NotContains(t, doc, "last_service_date")
}

func TestMapper_Car_BadServiceDate(t *testing.T) {
	_, err := NewMapper(nil).Car("c1", docstore.Document{"make": "Kia", "rental_price": 120, "next_service_date": "soon"})
	assert.ErrorIs(t, err, ErrTypeCoercionFailed)
}
