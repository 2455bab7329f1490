package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nest/config"
	"nest/infras/kafka"
	kafkaMocks "nest/infras/kafka/mocks"
	"nest/infras/otel/mocks"
	appointmentMocks "nest/internal/domains/appointment/mocks"
	"nest/internal/domains/appointment/model"
	"nest/internal/domains/appointment/model/dto"
	"nest/internal/domains/appointment/service"
	propertyMocks "nest/internal/domains/property/mocks"
	timeslotMocks "nest/internal/domains/timeslot/mocks"
	slotModel "nest/internal/domains/timeslot/model"
	slotDto "nest/internal/domains/timeslot/model/dto"
	cacheMocks "nest/shared/cache/mocks"
	gDto "nest/shared/dto"
	"nest/shared/failure"
	"nest/shared/timezone"
)

type fixture struct {
	repo         *appointmentMocks.MockAppointment
	slotRepo     *timeslotMocks.MockTimeSlot
	propertyRepo *propertyMocks.MockProperty
	cache        *cacheMocks.MockRedisCache
	kafka        *kafkaMocks.MockClient
	svc          service.Appointment
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.Appointment = "appointment-events"

	f := fixture{
		repo:         appointmentMocks.NewMockAppointment(ctrl),
		slotRepo:     timeslotMocks.NewMockTimeSlot(ctrl),
		propertyRepo: propertyMocks.NewMockProperty(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, f.slotRepo, f.propertyRepo, cfg, f.cache, f.kafka, mocks.NewOtel())

	return f
}

func (f fixture) runTransaction() {
	f.repo.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func (f fixture) allowCache() {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// expectEvent waits for the asynchronous publish and returns the event.
func (f fixture) expectEvent(t *testing.T) func() model.Event {
	t.Helper()

	var (
		wg    sync.WaitGroup
		event model.Event
	)

	wg.Add(1)
	f.kafka.EXPECT().
		SendMessages(gomock.Any(), "appointment-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			defer wg.Done()

			if assert.Len(t, messages, 1) {
				event, _ = messages[0].Value.(model.Event)
			}

			return nil
		})

	return func() model.Event {
		wg.Wait()

		return event
	}
}

func validRequest() dto.InsertAppointment {
	propertyID := 1

	return dto.InsertAppointment{
		PropertyID:      &propertyID,
		RenterName:      "Dana Lee",
		RenterEmail:     "dana@example.com",
		RenterPhone:     "555",
		AppointmentDate: "2024-06-01T10:00:00Z",
		AppointmentTime: "10:00",
	}
}

func TestAppointmentService_Create(t *testing.T) {
	t.Run("books the matching slot and publishes", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		f.propertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)
		f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slotModel.TimeSlot{ID: 6}, nil)
		f.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": true}, gomock.Any()).Return(int64(1), nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, appointment model.Appointment) (int, error) {
				assert.Equal(t, model.StatusPending, appointment.Status)

				return 21, nil
			})
		waitEvent := f.expectEvent(t)

		id, err := f.svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, 21, id)

		event := waitEvent()
		assert.Equal(t, model.EventCreated, event.Type)
		assert.Equal(t, 21, event.AppointmentID)
		assert.Equal(t, "dana@example.com", event.RenterEmail)
	})

	t.Run("accepted without a slot", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		f.propertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)
		f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(slotModel.TimeSlot{}, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(3, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(kafka.ErrNoBrokers).AnyTimes()

		id, err := f.svc.Create(context.Background(), validRequest())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 3, id)
	})

	conflicts := []struct {
		name  string
		clash model.Appointment
		slot  slotModel.TimeSlot
	}{
		{name: "active appointment holds the slot", clash: model.Appointment{ID: 2}},
		{name: "slot is blocked", slot: slotModel.TimeSlot{ID: 6, IsBlocked: true}},
		{name: "slot is booked", slot: slotModel.TimeSlot{ID: 6, IsBooked: true}},
	}

	for _, tt := range conflicts {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.runTransaction()

			f.propertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.clash, nil)

			if tt.clash.ID == 0 {
				f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.slot, nil)
			}

			_, err := f.svc.Create(context.Background(), validRequest())

			require.Error(t, err)
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		})
	}

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), validRequest())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("cancelled booking skips reservation", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		req := validRequest()
		req.Status = model.StatusCancelled

		f.propertyRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(4, nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		_, err := f.svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	existing := model.Appointment{ID: 8, PropertyID: 1, Status: model.StatusPending, AppointmentTime: "10:00"}

	t.Run("cancelling frees the slot", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)
		f.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": false}, gomock.Any()).Return(int64(1), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": "cancelled"}, gomock.Any()).Return(int64(1), nil)
		waitEvent := f.expectEvent(t)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), 8, model.StatusCancelled))

		event := waitEvent()
		assert.Equal(t, model.EventStatusChanged, event.Type)
		assert.Equal(t, model.StatusPending, event.PreviousStatus)
		assert.Equal(t, model.StatusCancelled, event.Status)
	})

	t.Run("confirming keeps the slot", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": "confirmed"}, gomock.Any()).Return(int64(1), nil)
		waitEvent := f.expectEvent(t)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), 8, model.StatusConfirmed))
		assert.Equal(t, model.StatusConfirmed, waitEvent().Status)
	})

	t.Run("reactivating a cancelled booking re-checks the slot", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		cancelled := existing
		cancelled.Status = model.StatusCancelled

		gomock.InOrder(
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil),
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{ID: 99}, nil),
		)

		err := f.svc.UpdateStatus(context.Background(), 8, model.StatusPending)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(existing, nil)

		assert.NoError(t, f.svc.UpdateStatus(context.Background(), 8, model.StatusPending))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil)

		err := f.svc.UpdateStatus(context.Background(), 8, model.StatusConfirmed)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestAppointmentService_Delete(t *testing.T) {
	t.Run("frees the slot", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{ID: 8, Status: model.StatusConfirmed}, nil)
		f.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": false}, gomock.Any()).Return(int64(1), nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		require.NoError(t, f.svc.Delete(context.Background(), 8))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("expired booking leaves slots alone", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{ID: 8, Status: model.StatusExpired}, nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		require.NoError(t, f.svc.Delete(context.Background(), 8))

		time.Sleep(10 * time.Millisecond)
	})
}

func TestAppointmentService_ExpirePending(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_, dayEnd := timezone.DayRange(now)

	morning := model.Appointment{ID: 5, PropertyID: 1, Status: model.StatusPending, AppointmentDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), AppointmentTime: "10:00"}
	afternoon := model.Appointment{ID: 6, PropertyID: 1, Status: model.StatusPending, AppointmentDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), AppointmentTime: "15:00"}
	yesterday := model.Appointment{ID: 7, PropertyID: 2, Status: model.StatusPending, AppointmentDate: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), AppointmentTime: "18:30"}

	t.Run("frees the slot of every started booking", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		f.repo.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), dto.PendingBefore(dayEnd)).Return([]model.Appointment{morning, afternoon, yesterday}, nil)
		f.slotRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": false}, slotDto.SlotAt(morning.PropertyID, morning.AppointmentDate, morning.AppointmentTime)).
			Return(int64(1), nil)
		f.slotRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": false}, slotDto.SlotAt(yesterday.PropertyID, yesterday.AppointmentDate, yesterday.AppointmentTime)).
			Return(int64(1), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": "expired"}, dto.ByIDs([]int{5, 7})).Return(int64(2), nil)
		f.cache.EXPECT().Clear(gomock.Any(), "appointment*").Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), slotModel.CachePrefix+"*").Return(nil)

		affected, err := f.svc.ExpirePending(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
	})

	t.Run("later the same day is kept", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		f.repo.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Appointment{afternoon}, nil)

		affected, err := f.svc.ExpirePending(context.Background(), now)
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("release failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		f.repo.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Appointment{morning}, nil)
		f.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))

		affected, err := f.svc.ExpirePending(context.Background(), now)
		assert.Error(t, err)
		assert.Zero(t, affected)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.runTransaction()

		f.repo.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		_, err := f.svc.ExpirePending(context.Background(), now)
		assert.Error(t, err)
	})

	t.Run("expired booking can be confirmed again", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.runTransaction()
		f.runTransaction()

		slot := slotModel.TimeSlot{ID: 9, PropertyID: 1, IsBooked: true}

		f.repo.EXPECT().GetAllForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Appointment{morning}, nil)
		f.slotRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": false}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ map[string]any, _ gDto.FilterGroup) (int64, error) {
				slot.IsBooked = false

				return 1, nil
			})
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": "expired"}, gomock.Any()).Return(int64(1), nil)

		_, err := f.svc.ExpirePending(context.Background(), now)
		require.NoError(t, err)

		expired := morning
		expired.Status = model.StatusExpired

		gomock.InOrder(
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(expired, nil),
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{}, nil),
		)
		f.slotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, _ gDto.FilterGroup) (slotModel.TimeSlot, error) {
				return slot, nil
			})
		f.slotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"is_booked": true}, gomock.Any()).Return(int64(1), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), map[string]any{"status": "confirmed"}, gomock.Any()).Return(int64(1), nil)
		waitEvent := f.expectEvent(t)

		require.NoError(t, f.svc.UpdateStatus(context.Background(), 5, model.StatusConfirmed))
		assert.Equal(t, model.StatusExpired, waitEvent().PreviousStatus)
	})
}

func TestAppointmentService_GetAll(t *testing.T) {
	f := newFixture(t)
	filter := dto.AppointmentFilter{Status: model.StatusPending}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), filter.ToFilterGroup()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), filter.ToFilterGroup()).Return([]model.Appointment{{ID: 1}, {ID: 2}}, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, filter)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Appointments, 2)
	assert.Equal(t, 1, res.TotalPage)
}
