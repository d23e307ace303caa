package controller

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/repository"
)

// staleLikes never sees an existing like, as when two requests race past the check.
type staleLikes struct {
	repository.LikeRepository
}

func (staleLikes) Exists(context.Context, uint, uint) (bool, error) {
	return false, nil
}

func TestLikeFlow(t *testing.T) {
	s := newTestServer(t)
	broker, _ := s.register("brokera", model.RoleBroker)
	userA, _ := s.register("usera", model.RoleCustomer)
	userB, _ := s.register("userb", model.RoleCustomer)
	path := "/properties/" + itoa(s.createProperty(broker)) + "/likes"

	assert.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, path, userA, nil).status)

	res := s.do(fiber.MethodPost, path, userA, nil)
	assert.Equal(t, fiber.StatusConflict, res.status)
	assert.Equal(t, model.CodeConflict, res.object(t)["code"])

	assert.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, path, userB, nil).status)

	likes := s.do(fiber.MethodGet, path, "", nil).list(t)
	assert.Len(t, likes, 2)
}

func TestLike_RequiresAuthAndRejectsUserID(t *testing.T) {
	s := newTestServer(t)
	broker, _ := s.register("brokera", model.RoleBroker)
	userA, _ := s.register("usera", model.RoleCustomer)
	path := "/properties/" + itoa(s.createProperty(broker)) + "/likes"

	assert.Equal(t, fiber.StatusUnauthorized, s.do(fiber.MethodPost, path, "", nil).status)
	assert.Equal(t, fiber.StatusBadRequest, s.do(fiber.MethodPost, path, userA, map[string]int{"user_id": 99}).status)
	assert.Equal(t, fiber.StatusNotFound, s.do(fiber.MethodPost, "/properties/999/likes", userA, nil).status)
}

func TestUnlike(t *testing.T) {
	s := newTestServer(t)
	broker, _ := s.register("brokera", model.RoleBroker)
	userA, _ := s.register("usera", model.RoleCustomer)
	path := "/properties/" + itoa(s.createProperty(broker)) + "/likes"

	assert.Equal(t, fiber.StatusNotFound, s.do(fiber.MethodDelete, path, userA, nil).status)
	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, path, userA, nil).status)
	assert.Equal(t, fiber.StatusNoContent, s.do(fiber.MethodDelete, path, userA, nil).status)
	assert.Empty(t, s.do(fiber.MethodGet, path, "", nil).list(t))
}

func TestLike_UniqueIndexBacksUpExistenceCheck(t *testing.T) {
	s := newTestServerWith(t, func(d *Deps) {
		d.Repos.Likes = staleLikes{d.Repos.Likes}
	})
	broker, _ := s.register("brokera", model.RoleBroker)
	userA, _ := s.register("usera", model.RoleCustomer)
	propertyID := s.createProperty(broker)
	path := "/properties/" + itoa(propertyID) + "/likes"

	require.Equal(t, fiber.StatusCreated, s.do(fiber.MethodPost, path, userA, nil).status)

	res := s.do(fiber.MethodPost, path, userA, nil)
	assert.Equal(t, fiber.StatusConflict, res.status, string(res.body))
	assert.Equal(t, model.CodeConflict, res.object(t)["code"])

	var count int64
	require.NoError(t, s.db.Model(&model.Like{}).Where("property_id = ?", propertyID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
