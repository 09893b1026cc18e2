package repository

import (
	"context"
	"testing"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	db    *gorm.DB
	repos *Repositories
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{db: db, repos: New(db), ctx: context.Background()}
}

func (f *fixture) navbar(t *testing.T, name string, order int) *models.NavbarCategory {
	t.Helper()
	n, err := f.repos.NavbarCategories.Create(f.ctx, &models.NavbarCategory{Name: name, Order: order, IsActive: true})
	require.NoError(t, err)
	return n
}

func (f *fixture) category(t *testing.T, name, navbarID string) *models.Category {
	t.Helper()
	c, err := f.repos.Categories.Create(f.ctx, &models.Category{Name: name, NavbarCategoryID: navbarID, IsActive: true})
	require.NoError(t, err)
	return c
}

func (f *fixture) subcategory(t *testing.T, name, categoryID string) *models.SubCategory {
	t.Helper()
	s, err := f.repos.SubCategories.Create(f.ctx, &models.SubCategory{Name: name, CategoryID: categoryID, IsActive: true})
	require.NoError(t, err)
	return s
}

func (f *fixture) product(t *testing.T, name string, c *models.Category, subID *string) *models.Product {
	t.Helper()
	p, err := f.repos.Products.Create(f.ctx, &models.Product{
		Name:             name,
		Description:      name + " description",
		Image1:           "https://img.example.com/" + name + ".jpg",
		NavbarCategoryID: c.NavbarCategoryID,
		CategoryID:       c.ID,
		SubCategoryID:    subID,
		IsActive:         true,
	})
	require.NoError(t, err)
	return p
}

func TestNavbarCategoryRepository_CRUD(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.NavbarCategories

	n := f.navbar(t, "Access Points!!", 2)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "access-points", n.Slug)
	assert.Nil(t, n.Description)

	f.navbar(t, "Cameras", 1)
	hidden := f.navbar(t, "Hidden", 0)
	_, err := repo.Update(f.ctx, hidden.ID, models.NavbarCategoryPatch{IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := repo.FindAll(f.ctx, NavbarCategoryFilter{IsActive: ptr(true)})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Cameras", active[0].Name)
	assert.Equal(t, "Access Points!!", active[1].Name)

	total, err := repo.Count(f.ctx, NavbarCategoryFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	bySlug, err := repo.FindBySlug(f.ctx, "access-points")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, n.ID, bySlug.ID)

	require.NoError(t, repo.Delete(f.ctx, n.ID))
	gone, err := repo.FindByID(f.ctx, n.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestNavbarCategoryRepository_UpdateSlugRules(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.NavbarCategories
	n := f.navbar(t, "Cameras", 1)

	updated, err := repo.Update(f.ctx, n.ID, models.NavbarCategoryPatch{Order: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Order)
	assert.Equal(t, "cameras", updated.Slug)
	assert.Equal(t, "Cameras", updated.Name)

	updated, err = repo.Update(f.ctx, n.ID, models.NavbarCategoryPatch{Name: ptr("Security Cameras"), Description: ptr("CCTV")})
	require.NoError(t, err)
	assert.Equal(t, "security-cameras", updated.Slug)
	assert.Equal(t, 7, updated.Order)
	require.NotNil(t, updated.Description)

	updated, err = repo.Update(f.ctx, n.ID, models.NavbarCategoryPatch{Description: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	unchanged, err := repo.Update(f.ctx, n.ID, models.NavbarCategoryPatch{})
	require.NoError(t, err)
	assert.Equal(t, "security-cameras", unchanged.Slug)
}

func TestNavbarCategoryRepository_NameExists(t *testing.T) {
	f := newFixture(t)
	n := f.navbar(t, "Cameras", 1)

	exists, err := f.repos.NavbarCategories.NameExists(f.ctx, "CAMERAS", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.repos.NavbarCategories.NameExists(f.ctx, "cameras", n.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_ScopedNames(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	net := f.navbar(t, "Networking", 2)
	indoor := f.category(t, "Indoor", cams.ID)

	exists, err := f.repos.Categories.NameExists(f.ctx, "indoor", cams.ID, "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.repos.Categories.NameExists(f.ctx, "indoor", net.ID, "")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = f.repos.Categories.NameExists(f.ctx, "INDOOR", cams.ID, indoor.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Same name under another parent is allowed by the store too.
	other := f.category(t, "Indoor", net.ID)
	assert.Equal(t, indoor.Slug, other.Slug)
	require.NotNil(t, other.NavbarCategory)
	assert.Equal(t, "Networking", other.NavbarCategory.Name)
}

func TestCategoryRepository_UniqueSlugPerParent(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	f.category(t, "Indoor", cams.ID)

	_, err := f.repos.Categories.Create(f.ctx, &models.Category{Name: "indoor!", NavbarCategoryID: cams.ID, IsActive: true})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	count, err := f.repos.Categories.Count(f.ctx, CategoryFilter{NavbarCategoryID: cams.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCategoryRepository_FindAllActiveNavbarOnly(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	legacy := f.navbar(t, "Legacy", 2)
	f.category(t, "Indoor", cams.ID)
	f.category(t, "Analog", legacy.ID)
	_, err := f.repos.NavbarCategories.Update(f.ctx, legacy.ID, models.NavbarCategoryPatch{IsActive: ptr(false)})
	require.NoError(t, err)

	all, err := f.repos.Categories.FindAll(f.ctx, CategoryFilter{IsActive: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := f.repos.Categories.FindAll(f.ctx, CategoryFilter{IsActive: ptr(true), ActiveNavbarOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Indoor", visible[0].Name)
}

func TestCategoryRepository_FindBySlugPrefersActive(t *testing.T) {
	f := newFixture(t)
	a := f.navbar(t, "A", 1)
	b := f.navbar(t, "B", 2)
	first := f.category(t, "Outdoor", a.ID)
	second := f.category(t, "Outdoor", b.ID)
	_, err := f.repos.Categories.Update(f.ctx, first.ID, models.CategoryPatch{IsActive: ptr(false)})
	require.NoError(t, err)

	got, err := f.repos.Categories.FindBySlug(f.ctx, "outdoor")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	missing, err := f.repos.Categories.FindBySlug(f.ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubCategoryRepository_Reparent(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	indoor := f.category(t, "Indoor", cams.ID)
	outdoor := f.category(t, "Outdoor", cams.ID)
	ptz := f.subcategory(t, "PTZ", indoor.ID)
	require.NotNil(t, ptz.Category)
	require.NotNil(t, ptz.Category.NavbarCategory)
	assert.Equal(t, "Cameras", ptz.Category.NavbarCategory.Name)

	moved, err := f.repos.SubCategories.Update(f.ctx, ptz.ID, models.SubCategoryPatch{CategoryID: ptr(outdoor.ID)})
	require.NoError(t, err)
	assert.Equal(t, outdoor.ID, moved.CategoryID)
	assert.Equal(t, "ptz", moved.Slug)

	n, err := f.repos.SubCategories.Count(f.ctx, SubCategoryFilter{CategoryID: indoor.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProductRepository_CreateAndScope(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	indoor := f.category(t, "Indoor", cams.ID)
	ptz := f.subcategory(t, "PTZ", indoor.ID)

	p := f.product(t, "Model X", indoor, &ptz.ID)
	assert.Equal(t, "model-x", p.Slug)
	assert.Equal(t, []string{}, []string(p.KeyFeatures))
	require.NotNil(t, p.Category)
	require.NotNil(t, p.Category.NavbarCategory)
	require.NotNil(t, p.SubCategory)
	assert.Equal(t, "PTZ", p.SubCategory.Name)

	exists, err := f.repos.Products.NameExists(f.ctx, "model x", indoor.ID, &ptz.ID, "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.repos.Products.NameExists(f.ctx, "model x", indoor.ID, nil, "")
	require.NoError(t, err)
	assert.False(t, exists)

	direct := f.product(t, "Model X", indoor, nil)
	assert.Nil(t, direct.SubCategory)
	exists, err = f.repos.Products.NameExists(f.ctx, "MODEL X", indoor.ID, nil, direct.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProductRepository_UniqueSlugWithoutSubcategory(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	indoor := f.category(t, "Indoor", cams.ID)
	ptz := f.subcategory(t, "PTZ", indoor.ID)

	first := f.product(t, "Model X", indoor, nil)
	_, err := f.repos.Products.Create(f.ctx, &models.Product{
		Name:             "Model X",
		Description:      "again",
		Image1:           "https://img.example.com/x.jpg",
		NavbarCategoryID: cams.ID,
		CategoryID:       indoor.ID,
		IsActive:         true,
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	n, err := f.repos.Products.Count(f.ctx, ProductFilter{CategoryID: indoor.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Same slug in a subcategory is a different scope.
	inPTZ := f.product(t, "Model X", indoor, &ptz.ID)

	// Detaching it from the subcategory lands it in the occupied scope.
	_, err = f.repos.Products.Update(f.ctx, inPTZ.ID, models.ProductPatch{SubCategoryID: ptr("")})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	require.NoError(t, f.repos.Products.Delete(f.ctx, first.ID))
	moved, err := f.repos.Products.Update(f.ctx, inPTZ.ID, models.ProductPatch{SubCategoryID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, moved.SubCategoryID)
}

func TestProductRepository_UpdatePatch(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	indoor := f.category(t, "Indoor", cams.ID)
	ptz := f.subcategory(t, "PTZ", indoor.ID)
	p := f.product(t, "Model X", indoor, &ptz.ID)

	updated, err := f.repos.Products.Update(f.ctx, p.ID, models.ProductPatch{
		KeyFeatures:   ptr([]string{"4K", "Night vision"}),
		Image2:        ptr("https://img.example.com/2.jpg"),
		SubCategoryID: ptr(""),
		IsActive:      ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"4K", "Night vision"}, []string(updated.KeyFeatures))
	require.NotNil(t, updated.Image2)
	assert.Nil(t, updated.SubCategoryID)
	assert.Nil(t, updated.SubCategory)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "model-x", updated.Slug)

	active, err := f.repos.Products.Count(f.ctx, ProductFilter{IsActive: ptr(true)})
	require.NoError(t, err)
	assert.Zero(t, active)
}

func TestProductRepository_FindAllFiltersAndLimit(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	net := f.navbar(t, "Networking", 2)
	indoor := f.category(t, "Indoor", cams.ID)
	switches := f.category(t, "Switches", net.ID)
	f.product(t, "Model X", indoor, nil)
	f.product(t, "Model Y", indoor, nil)
	f.product(t, "SW-24", switches, nil)

	list, err := f.repos.Products.FindAll(f.ctx, ProductFilter{NavbarCategoryID: cams.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	limited, err := f.repos.Products.FindAll(f.ctx, ProductFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestProductRepository_CountByCategory(t *testing.T) {
	f := newFixture(t)
	cams := f.navbar(t, "Cameras", 1)
	indoor := f.category(t, "Indoor", cams.ID)
	outdoor := f.category(t, "Outdoor", cams.ID)
	doomed := f.category(t, "Doomed", cams.ID)
	f.product(t, "A", indoor, nil)
	f.product(t, "B", outdoor, nil)
	f.product(t, "C", outdoor, nil)
	f.product(t, "D", doomed, nil)

	require.NoError(t, f.db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, f.db.Exec("DELETE FROM categories WHERE id = ?", doomed.ID).Error)

	counts, err := f.repos.Products.CountByCategory(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{
		{Name: "Outdoor", Count: 2},
		{Name: "Indoor", Count: 1},
		{Name: "Unknown", Count: 1},
	}, counts)
}

func TestEnquiryRepositories_ByDateRange(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()
	dayD := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC).AddDate(0, 0, -3)
	dayD1 := dayD.AddDate(0, 0, 1)
	old := dayD.AddDate(0, 0, -40)

	seed := func(at time.Time, n int) {
		for i := 0; i < n; i++ {
			require.NoError(t, f.repos.ContactEnquiries.Create(f.ctx, &models.ContactEnquiry{
				Name: "Jo", Email: "jo@example.com", Subject: "Quote", Message: "Hi",
				Status: "pending", CreatedAt: at.Add(time.Duration(i) * time.Minute),
			}))
			require.NoError(t, f.repos.ProductEnquiries.Create(f.ctx, &models.ProductEnquiry{
				ProductName: "Model X", Name: "Jo", Email: "jo@example.com", Mobile: "0700",
				Description: "Price?", Status: "pending", CreatedAt: at.Add(time.Duration(i) * time.Minute),
			}))
		}
	}
	seed(dayD, 3)
	seed(dayD1, 2)
	seed(old, 4)

	want := []TimeSeriesPoint{
		{Date: dayD.Format("2006-01-02"), Count: 3},
		{Date: dayD1.Format("2006-01-02"), Count: 2},
	}

	contact, err := f.repos.ContactEnquiries.ByDateRange(f.ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, want, contact)

	product, err := f.repos.ProductEnquiries.ByDateRange(f.ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, want, product)
}

func TestContactEnquiryRepository_StatusAndFilter(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.ContactEnquiries
	e := &models.ContactEnquiry{Name: "Jo", Email: "jo@example.com", Subject: "Quote", Message: "Hi", Status: "pending"}
	require.NoError(t, repo.Create(f.ctx, e))

	updated, err := repo.UpdateStatus(f.ctx, e.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, "resolved", updated.Status)

	pending, err := repo.FindAll(f.ctx, EnquiryFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Empty(t, pending)

	n, err := repo.Count(f.ctx, EnquiryFilter{Status: "resolved"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, repo.Delete(f.ctx, e.ID))
	missing, err := repo.FindByID(f.ctx, e.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNotificationRepository_ReadLifecycle(t *testing.T) {
	f := newFixture(t)
	repo := f.repos.Notifications
	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(f.ctx, &models.Notification{Title: title, Message: "m", Type: "info", Icon: "bell"}))
	}
	list, err := repo.ListLatest(f.ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	ok, err := repo.MarkRead(f.ctx, list[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.MarkRead(f.ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	unread, err := repo.CountUnread(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	deleted, err := repo.DeleteAllRead(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	marked, err := repo.MarkAllRead(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, marked)
	unread, err = repo.CountUnread(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
