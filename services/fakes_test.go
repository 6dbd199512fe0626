package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"guate-servicios/libs"
	"guate-servicios/models"
	"guate-servicios/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUsers struct {
	byEmail     map[string]*models.User
	nextID      int
	findErr     error
	createErr   error
	techMissing []int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return repositories.ErrDuplicate
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) ListTechWithoutProfile(context.Context) ([]int, error) {
	return f.techMissing, nil
}

type fakeCategories struct {
	names  map[int]string
	nextID int
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{names: map[int]string{1: "General"}, nextID: 2}
}

func (f *fakeCategories) List(context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for id, name := range f.names {
		out = append(out, models.Category{ID: id, Name: name})
	}
	return out, nil
}

func (f *fakeCategories) Exists(_ context.Context, id int) (bool, error) {
	_, ok := f.names[id]
	return ok, nil
}

func (f *fakeCategories) Upsert(_ context.Context, name string) (int, error) {
	for id, n := range f.names {
		if n == name {
			return id, nil
		}
	}
	id := f.nextID
	f.nextID++
	f.names[id] = name
	return id, nil
}

type fakeTechnicians struct {
	byUser    map[int]*models.Technician
	nextID    int
	ensureErr error
	// ensureNoop makes EnsureProfile succeed without inserting.
	ensureNoop bool
	ensured    []int
	contacts   map[int]*models.TechnicianContact
	listFilter repositories.TechnicianFilter
}

func newFakeTechnicians() *fakeTechnicians {
	return &fakeTechnicians{byUser: map[int]*models.Technician{}, nextID: 1, contacts: map[int]*models.TechnicianContact{}}
}

func (f *fakeTechnicians) add(userID, categoryID int) *models.Technician {
	t := &models.Technician{ID: f.nextID, UserID: userID, CategoryID: categoryID}
	f.nextID++
	f.byUser[userID] = t
	return t
}

func (f *fakeTechnicians) byID(id int) *models.Technician {
	for _, t := range f.byUser {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (f *fakeTechnicians) summary(t *models.Technician) *models.TechnicianSummary {
	return &models.TechnicianSummary{
		ID: t.ID, UserID: t.UserID, Description: t.Description, PhotoURL: t.PhotoURL, WhatsApp: t.WhatsApp,
	}
}

func (f *fakeTechnicians) List(_ context.Context, filter repositories.TechnicianFilter) ([]models.TechnicianSummary, error) {
	f.listFilter = filter
	out := []models.TechnicianSummary{}
	for _, t := range f.byUser {
		out = append(out, *f.summary(t))
	}
	return out, nil
}

func (f *fakeTechnicians) FindSummaryByID(_ context.Context, id int) (*models.TechnicianSummary, error) {
	if t := f.byID(id); t != nil {
		return f.summary(t), nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeTechnicians) FindSummaryByUserID(_ context.Context, userID int) (*models.TechnicianSummary, error) {
	if t, ok := f.byUser[userID]; ok {
		return f.summary(t), nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeTechnicians) OwnerID(_ context.Context, id int) (int, error) {
	if t := f.byID(id); t != nil {
		return t.UserID, nil
	}
	return 0, repositories.ErrNotFound
}

func (f *fakeTechnicians) Exists(_ context.Context, id int) (bool, error) {
	return f.byID(id) != nil, nil
}

func (f *fakeTechnicians) EnsureProfile(_ context.Context, userID int) (bool, error) {
	f.ensured = append(f.ensured, userID)
	if f.ensureErr != nil {
		return false, f.ensureErr
	}
	if f.ensureNoop {
		return false, nil
	}
	if _, ok := f.byUser[userID]; ok {
		return false, nil
	}
	f.add(userID, models.DefaultCategoryID)
	return true, nil
}

func (f *fakeTechnicians) UpdateProfile(_ context.Context, userID int, req models.UpdateTechnicianRequest) error {
	t, ok := f.byUser[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	if req.CategoryID != nil {
		t.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.WhatsApp != nil {
		t.WhatsApp = *req.WhatsApp
	}
	return nil
}

func (f *fakeTechnicians) SetPhotoURL(_ context.Context, userID int, photoURL string) error {
	t, ok := f.byUser[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	t.PhotoURL = photoURL
	return nil
}

func (f *fakeTechnicians) Contact(_ context.Context, id int) (*models.TechnicianContact, error) {
	if c, ok := f.contacts[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeTechnicians) Create(_ context.Context, t *models.Technician) error {
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.byUser[t.UserID] = &cp
	return nil
}

type fakeServices struct {
	created []models.Service
	err     error
}

func (f *fakeServices) Create(_ context.Context, s *models.Service) error {
	if f.err != nil {
		return f.err
	}
	s.ID = len(f.created) + 1
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeServices) ListByTechnician(_ context.Context, technicianID int) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range f.created {
		if s.TechnicianID == technicianID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeReviews struct {
	created []models.Review
}

func (f *fakeReviews) Create(_ context.Context, r *models.Review) error {
	r.ID = len(f.created) + 1
	r.CreatedAt = time.Now()
	f.created = append(f.created, *r)
	return nil
}

func (f *fakeReviews) ListByTechnician(_ context.Context, technicianID int) ([]models.ReviewDetail, error) {
	out := []models.ReviewDetail{}
	for i := len(f.created) - 1; i >= 0; i-- {
		r := f.created[i]
		if r.TechnicianID == technicianID {
			out = append(out, models.ReviewDetail{ID: r.ID, UserID: r.UserID, Rating: r.Rating, Comment: r.Comment})
		}
	}
	return out, nil
}

type fakeMaintenance struct {
	counts    []models.TableCount
	truncated bool
	err       error
}

func (f *fakeMaintenance) Truncate(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.truncated = true
	return nil
}

func (f *fakeMaintenance) Counts(context.Context) ([]models.TableCount, error) {
	return f.counts, f.err
}

func (f *fakeMaintenance) SampleTechnicians(context.Context, int) ([]models.Technician, error) {
	return []models.Technician{{ID: 1}}, f.err
}

func (f *fakeMaintenance) SampleUsers(context.Context, int) ([]models.User, error) {
	return []models.User{{ID: 1}}, f.err
}

func (f *fakeMaintenance) Ping(context.Context) error { return f.err }

// plainHasher is reversible on purpose so tests can assert on the stored value.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(encodedHash, password string) (bool, error) {
	if !strings.HasPrefix(encodedHash, "hashed:") {
		return false, errors.New("malformed hash")
	}
	return encodedHash == "hashed:"+password, nil
}

type fakeTokens struct {
	issued []string
}

func (f *fakeTokens) Issue(userID int, name, role string) (string, error) {
	tok := strings.Join([]string{"token", name, role}, "-")
	f.issued = append(f.issued, tok)
	return tok, nil
}

type fakePhotos struct {
	url string
	err error
	ext string
}

func (f *fakePhotos) Save(_ context.Context, _ io.Reader, ext string) (string, error) {
	f.ext = ext
	return f.url, f.err
}

type fakeNotifier struct {
	notices []libs.ReviewNotice
	err     error
}

func (f *fakeNotifier) NotifyReview(_ context.Context, n libs.ReviewNotice) error {
	f.notices = append(f.notices, n)
	return f.err
}
