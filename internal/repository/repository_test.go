package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
	"rentapp_backend/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	repos    *repository.Repositories
	broker   *model.User
	customer *model.User
	property *model.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := repository.New(db)
	ctx := context.Background()

	broker := &model.User{Username: "broker", Email: "broker@example.com", Password: "hash", Role: model.RoleBroker}
	require.NoError(t, repos.Users.Create(ctx, broker))
	customer := &model.User{Username: "customer", Email: "customer@example.com", Password: "hash", Role: model.RoleCustomer}
	require.NoError(t, repos.Users.Create(ctx, customer))

	property := &model.Property{
		Title:        "Loft",
		Price:        1200,
		Address:      "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
		PropertyType: model.PropertyTypeApartment,
		Bedrooms:     2,
		Bathrooms:    1,
		BrokerID:     broker.ID,
	}
	require.NoError(t, repos.Properties.Create(ctx, property))

	return &fixture{db: db, repos: repos, broker: broker, customer: customer, property: property}
}

func (f *fixture) fillChildren(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	pid := f.property.ID

	require.NoError(t, f.repos.Photos.Create(ctx, &model.PropertyPhoto{PropertyID: pid, PhotoURL: "https://cdn.example.com/a.jpg"}))
	_, err := f.repos.Statuses.Upsert(ctx, pid, model.StatusAvailable)
	require.NoError(t, err)
	require.NoError(t, f.repos.Inquiries.Create(ctx, &model.Inquiry{PropertyID: pid, CustomerID: f.customer.ID, Message: "Is it free?"}))
	require.NoError(t, f.repos.Likes.Create(ctx, &model.Like{PropertyID: pid, UserID: f.customer.ID}))
	require.NoError(t, f.repos.Comments.Create(ctx, &model.Comment{PropertyID: pid, UserID: f.customer.ID, Content: "Nice"}))
}

func (f *fixture) countChildren(t *testing.T) int64 {
	t.Helper()
	var total int64
	for _, child := range model.ChildModels() {
		var n int64
		require.NoError(t, f.db.Model(child).Where("property_id = ?", f.property.ID).Count(&n).Error)
		total += n
	}
	return total
}

func TestPropertyRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	f.fillChildren(t)
	require.Equal(t, int64(5), f.countChildren(t))

	require.NoError(t, f.repos.Properties.Delete(context.Background(), f.property.ID))

	assert.Zero(t, f.countChildren(t))
	_, err := f.repos.Properties.GetByID(context.Background(), f.property.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPropertyRepository_DeleteMissing(t *testing.T) {
	f := newFixture(t)

	err := f.repos.Properties.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	f.fillChildren(t)
	ctx := context.Background()

	require.NoError(t, f.repos.Users.Delete(ctx, f.broker.ID))

	var properties int64
	require.NoError(t, f.db.Model(&model.Property{}).Count(&properties).Error)
	assert.Zero(t, properties)
	assert.Zero(t, f.countChildren(t))

	customer, err := f.repos.Users.GetByID(ctx, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "customer", customer.Username)
}

func TestUserRepository_LookupMissReturnsNil(t *testing.T) {
	f := newFixture(t)

	user, err := f.repos.Users.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = f.repos.Users.GetByUsername(context.Background(), "broker")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, f.broker.ID, user.ID)
}

func TestPropertyRepository_UpdatePartial(t *testing.T) {
	f := newFixture(t)

	updated, err := f.repos.Properties.Update(context.Background(), f.property.ID, map[string]interface{}{"price": 1500.0})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, updated.Price)
	assert.Equal(t, "Loft", updated.Title)
}

func TestStatusRepository_UpsertKeepsSingleRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.repos.Statuses.Upsert(ctx, f.property.ID, model.StatusAvailable)
	require.NoError(t, err)
	second, err := f.repos.Statuses.Upsert(ctx, f.property.ID, model.StatusRented)
	require.NoError(t, err)

	assert.Equal(t, model.StatusRented, second.Status)
	assert.Equal(t, first.ID, second.ID)

	var rows int64
	require.NoError(t, f.db.Model(&model.PropertyStatus{}).Where("property_id = ?", f.property.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestLikeRepository_UniquePerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.property.ID

	require.NoError(t, f.repos.Likes.Create(ctx, &model.Like{PropertyID: pid, UserID: f.customer.ID}))
	err := f.repos.Likes.Create(ctx, &model.Like{PropertyID: pid, UserID: f.customer.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, f.repos.Likes.Create(ctx, &model.Like{PropertyID: pid, UserID: f.broker.ID}))

	likes, err := f.repos.Likes.ListByProperty(ctx, pid)
	require.NoError(t, err)
	assert.Len(t, likes, 2)

	exists, err := f.repos.Likes.Exists(ctx, pid, f.customer.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, f.repos.Likes.Delete(ctx, pid, f.customer.ID))
	assert.ErrorIs(t, f.repos.Likes.Delete(ctx, pid, f.customer.ID), gorm.ErrRecordNotFound)
}

func TestPhotoRepository_GetForPropertyChecksParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := *f.property
	other.ID = 0
	other.Photos = nil
	other.Status = nil
	require.NoError(t, f.repos.Properties.Create(ctx, &other))

	photo := &model.PropertyPhoto{PropertyID: f.property.ID, PhotoURL: "https://cdn.example.com/p.jpg"}
	require.NoError(t, f.repos.Photos.Create(ctx, photo))

	_, err := f.repos.Photos.GetForProperty(ctx, other.ID, photo.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := f.repos.Photos.GetForProperty(ctx, f.property.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.PhotoURL, got.PhotoURL)
}

func TestCommentRepository_BlankContentRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.repos.Comments.Create(ctx, &model.Comment{PropertyID: f.property.ID, UserID: f.customer.ID, Content: "   "})
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, model.CodeValidation, appErr.Code)

	comment := &model.Comment{PropertyID: f.property.ID, UserID: f.customer.ID, Content: "first"}
	require.NoError(t, f.repos.Comments.Create(ctx, comment))
	require.NoError(t, f.repos.Comments.UpdateContent(ctx, comment, "edited"))

	stored, err := f.repos.Comments.GetForProperty(ctx, f.property.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Content)
	assert.Error(t, f.repos.Comments.UpdateContent(ctx, stored, ""))
}
