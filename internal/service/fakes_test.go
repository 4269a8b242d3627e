package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes used across the service tests. They mirror the
// query semantics of the mongo implementations (sorting, ErrNotFound, owner
// scoping) closely enough for the services not to notice the difference.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.Profile
	failNext bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[primitive.ObjectID]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	if r.failNext {
		r.failNext = false
		return repository.ErrUpdateFailed
	}
	stored := *profile
	r.profiles[profile.ID] = &stored
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	existing, ok := r.profiles[profile.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.FirstName = profile.FirstName
	existing.LastName = profile.LastName
	existing.Email = profile.Email
	existing.Sex = profile.Sex
	existing.HeightCm = profile.HeightCm
	existing.UpdatedAt = profile.UpdatedAt
	return nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.TrainingPlan
	order []primitive.ObjectID // Insertion order, newest last
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *plan
	stored.ID = id
	r.plans[id] = &stored
	r.order = append(r.order, id)
	return id, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	var plans []domain.TrainingPlan
	// Newest first, like the createdAt desc sort in mongo.
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.plans[r.order[i]]
		if p.UserID == userID {
			plans = append(plans, *p)
		}
	}
	return plans, nil
}

func (r *fakePlanRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.plans[r.order[i]]
		if p.UserID == userID && p.IsActive {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	p, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (r *fakePlanRepo) DeactivateOthers(_ context.Context, userID, keepID primitive.ObjectID) error {
	for id, p := range r.plans {
		if p.UserID == userID && id != keepID {
			p.IsActive = false
		}
	}
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	p, ok := r.plans[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.PlannedExercise
	failBatch bool
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.PlannedExercise)}
}

func (r *fakeExerciseRepo) CreateBatch(_ context.Context, exercises []domain.PlannedExercise) error {
	if r.failBatch {
		return repository.ErrUpdateFailed
	}
	for i := range exercises {
		stored := exercises[i]
		if stored.ID.IsZero() {
			stored.ID = primitive.NewObjectID()
		}
		r.exercises[stored.ID] = &stored
	}
	return nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.PlannedExercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ex
	return &copied, nil
}

func (r *fakeExerciseRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.PlannedExercise, error) {
	var result []domain.PlannedExercise
	for _, ex := range r.exercises {
		if ex.PlanID == planID {
			result = append(result, *ex)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Weekday != result[j].Weekday {
			return result[i].Weekday < result[j].Weekday
		}
		return result[i].Order < result[j].Order
	})
	return result, nil
}

func (r *fakeExerciseRepo) GetByPlanAndWeekday(_ context.Context, planID primitive.ObjectID, day domain.Weekday) ([]domain.PlannedExercise, error) {
	var result []domain.PlannedExercise
	for _, ex := range r.exercises {
		if ex.PlanID == planID && ex.Weekday == day {
			result = append(result, *ex)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (r *fakeExerciseRepo) CountByPlanID(_ context.Context, planID primitive.ObjectID) (int64, error) {
	var n int64
	for _, ex := range r.exercises {
		if ex.PlanID == planID {
			n++
		}
	}
	return n, nil
}

func (r *fakeExerciseRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	for id, ex := range r.exercises {
		if ex.PlanID == planID {
			delete(r.exercises, id)
		}
	}
	return nil
}

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]*domain.WorkoutSession
	order    []primitive.ObjectID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[primitive.ObjectID]*domain.WorkoutSession)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *session
	stored.ID = id
	r.sessions[id] = &stored
	r.order = append(r.order, id)
	return id, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutSession, error) {
	for _, s := range r.sessions {
		if s.UserID == userID && s.Date == date {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeSessionRepo) GetByUserID(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	var result []domain.WorkoutSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	if limit > 0 && int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeSessionRepo) CountByUserID(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) SetCompleted(_ context.Context, id primitive.ObjectID, completed bool) error {
	s, ok := r.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Completed = completed
	return nil
}

type fakeSetRepo struct {
	sets map[primitive.ObjectID]*domain.PerformedSet
}

func newFakeSetRepo() *fakeSetRepo {
	return &fakeSetRepo{sets: make(map[primitive.ObjectID]*domain.PerformedSet)}
}

func (r *fakeSetRepo) CreateBatch(_ context.Context, sets []domain.PerformedSet) error {
	for i := range sets {
		stored := sets[i]
		if stored.ID.IsZero() {
			stored.ID = primitive.NewObjectID()
		}
		r.sets[stored.ID] = &stored
	}
	return nil
}

func (r *fakeSetRepo) GetBySessionID(_ context.Context, sessionID primitive.ObjectID) ([]domain.PerformedSet, error) {
	var result []domain.PerformedSet
	for _, s := range r.sets {
		if s.SessionID == sessionID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ExerciseID != result[j].ExerciseID {
			return result[i].ExerciseID.Hex() < result[j].ExerciseID.Hex()
		}
		return result[i].SetNumber < result[j].SetNumber
	})
	return result, nil
}

func (r *fakeSetRepo) DistinctExerciseIDs(_ context.Context, sessionID primitive.ObjectID) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, s := range r.sets {
		if s.SessionID == sessionID && !seen[s.ExerciseID] {
			seen[s.ExerciseID] = true
			ids = append(ids, s.ExerciseID)
		}
	}
	return ids, nil
}

func (r *fakeSetRepo) DeleteBySessionAndExercise(_ context.Context, sessionID, exerciseID primitive.ObjectID) error {
	for id, s := range r.sets {
		if s.SessionID == sessionID && s.ExerciseID == exerciseID {
			delete(r.sets, id)
		}
	}
	return nil
}

type fakeMeasurementRepo struct {
	measurements []domain.WeightMeasurement
}

func newFakeMeasurementRepo() *fakeMeasurementRepo {
	return &fakeMeasurementRepo{}
}

func (r *fakeMeasurementRepo) Create(_ context.Context, m *domain.WeightMeasurement) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *m
	stored.ID = id
	r.measurements = append(r.measurements, stored)
	return id, nil
}

func (r *fakeMeasurementRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.WeightMeasurement, error) {
	var result []domain.WeightMeasurement
	for _, m := range r.measurements {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}
