package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/basaltlabs/basalt/internal/db"
	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/queue"
)

func newRecomputeFixture(t *testing.T) (*RecomputeService, *db.Repositories) {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "basalt.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := database.DB()
		if err != nil {
			return
		}
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	return NewRecomputeService(repos, engine.DefaultConfig(), time.UTC), repos
}

func createRecomputeUser(t *testing.T, repos *db.Repositories) models.User {
	t.Helper()
	user := models.User{
		ID:             uuid.NewString(),
		Username:       "tester",
		HashedPassword: "irrelevant",
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func seedDailyReadings(t *testing.T, repos *db.Repositories, userID string, startDay string, count int, value float64) {
	t.Helper()
	day := mustParseRecomputeDay(t, startDay)
	for i := 0; i < count; i++ {
		reading := models.Temperature{
			UserID:      userID,
			Temperature: value,
			Timestamp:   day.AddDate(0, 0, i).Add(8 * time.Hour),
		}
		if err := repos.Temperatures.Create(&reading); err != nil {
			t.Fatalf("create temperature: %v", err)
		}
	}
}

func TestHandlePhaseJobStoresLearningStateForSparseHistory(t *testing.T) {
	service, repos := newRecomputeFixture(t)
	user := createRecomputeUser(t, repos)
	seedDailyReadings(t, repos, user.ID, "2026-03-01", 3, 36.5)

	service.Handle(context.Background(), queue.Job{Kind: queue.KindPhase, UserID: user.ID})

	state, found, err := repos.States.FindTemperatureState(user.ID)
	if err != nil {
		t.Fatalf("load temperature state: %v", err)
	}
	if !found {
		t.Fatalf("expected a temperature state row after the job ran")
	}
	if state.Phase != string(engine.PhaseLearning) {
		t.Fatalf("expected phase %s, got %s", engine.PhaseLearning, state.Phase)
	}
	if state.Baseline != nil {
		t.Fatalf("expected nil baseline with sparse history, got %f", *state.Baseline)
	}
	if state.LastEvaluated.IsZero() {
		t.Fatalf("expected a recorded evaluation time")
	}
}

func TestHandlePhaseJobDetectsSustainedElevation(t *testing.T) {
	service, repos := newRecomputeFixture(t)
	user := createRecomputeUser(t, repos)
	seedDailyReadings(t, repos, user.ID, "2026-03-01", 20, 36.5)
	seedDailyReadings(t, repos, user.ID, "2026-03-21", 4, 37.1)

	service.Handle(context.Background(), queue.Job{Kind: queue.KindPhase, UserID: user.ID})

	state, found, err := repos.States.FindTemperatureState(user.ID)
	if err != nil {
		t.Fatalf("load temperature state: %v", err)
	}
	if !found {
		t.Fatalf("expected a temperature state row after the job ran")
	}
	if state.Phase != string(engine.PhaseElevated) {
		t.Fatalf("expected phase %s, got %s", engine.PhaseElevated, state.Phase)
	}
	if state.Baseline == nil {
		t.Fatalf("expected a baseline with %d readings", 24)
	}
}

func TestHandleCycleJobStoresAverages(t *testing.T) {
	service, repos := newRecomputeFixture(t)
	user := createRecomputeUser(t, repos)

	start := mustParseRecomputeDay(t, "2026-01-02")
	for i := 0; i < 4; i++ {
		periodStart := start.AddDate(0, 0, 28*i)
		periodEnd := periodStart.AddDate(0, 0, 5)
		period := models.Period{UserID: user.ID, StartDate: periodStart, EndDate: &periodEnd}
		if err := repos.Periods.Create(&period); err != nil {
			t.Fatalf("create period: %v", err)
		}
	}

	service.Handle(context.Background(), queue.Job{Kind: queue.KindCycle, UserID: user.ID})

	state, found, err := repos.States.FindCycleState(user.ID)
	if err != nil {
		t.Fatalf("load cycle state: %v", err)
	}
	if !found {
		t.Fatalf("expected a cycle state row after the job ran")
	}
	if state.State != string(engine.CycleStable) {
		t.Fatalf("expected state %s, got %s", engine.CycleStable, state.State)
	}
	if state.AvgCycleLength == nil || *state.AvgCycleLength != 28 {
		t.Fatalf("expected average cycle length 28, got %v", state.AvgCycleLength)
	}
	if state.AvgPeriodLength == nil || *state.AvgPeriodLength != 5 {
		t.Fatalf("expected average period length 5, got %v", state.AvgPeriodLength)
	}
	if state.LastPeriodStart == nil || state.LastPeriodStart.Format("2006-01-02") != "2026-03-27" {
		t.Fatalf("expected last period start 2026-03-27, got %v", state.LastPeriodStart)
	}
}

func TestHandleLutealJobStoresLength(t *testing.T) {
	service, repos := newRecomputeFixture(t)
	user := createRecomputeUser(t, repos)
	seedDailyReadings(t, repos, user.ID, "2026-01-01", 30, 36.5)
	seedDailyReadings(t, repos, user.ID, "2026-01-31", 14, 37.5)

	period := models.Period{UserID: user.ID, StartDate: mustParseRecomputeDay(t, "2026-02-10")}
	if err := repos.Periods.Create(&period); err != nil {
		t.Fatalf("create period: %v", err)
	}

	service.Handle(context.Background(), queue.Job{Kind: queue.KindLuteal, UserID: user.ID, PeriodID: period.ID})

	stored, err := repos.Periods.FindByIDForUser(period.ID, user.ID)
	if err != nil {
		t.Fatalf("reload period: %v", err)
	}
	if stored.LutealLength == nil {
		t.Fatalf("expected a luteal length after the job ran")
	}
	if *stored.LutealLength != 11 {
		t.Fatalf("expected luteal length 11, got %d", *stored.LutealLength)
	}
}

func TestHandleLutealJobSkipsFlatSeries(t *testing.T) {
	service, repos := newRecomputeFixture(t)
	user := createRecomputeUser(t, repos)
	seedDailyReadings(t, repos, user.ID, "2026-01-01", 20, 36.5)

	period := models.Period{UserID: user.ID, StartDate: mustParseRecomputeDay(t, "2026-01-22")}
	if err := repos.Periods.Create(&period); err != nil {
		t.Fatalf("create period: %v", err)
	}

	service.Handle(context.Background(), queue.Job{Kind: queue.KindLuteal, UserID: user.ID, PeriodID: period.ID})

	stored, err := repos.Periods.FindByIDForUser(period.ID, user.ID)
	if err != nil {
		t.Fatalf("reload period: %v", err)
	}
	if stored.LutealLength != nil {
		t.Fatalf("expected no luteal length on a flat series, got %d", *stored.LutealLength)
	}
}

func TestHandleUnknownJobKindIsIgnored(t *testing.T) {
	service, repos := newRecomputeFixture(t)
	user := createRecomputeUser(t, repos)

	service.Handle(context.Background(), queue.Job{Kind: "reindex", UserID: user.ID})

	if _, found, err := repos.States.FindTemperatureState(user.ID); err != nil || found {
		t.Fatalf("expected no state writes for unknown kinds, found=%v err=%v", found, err)
	}
}

func mustParseRecomputeDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}
