package controller

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentapp_backend/internal/model"
	"rentapp_backend/pkg/utils/storage"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *testServer) upload(token, filename string, data []byte) response {
	s.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/upload-photo", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return s.send(req, token)
}

func TestUploadPhoto(t *testing.T) {
	s := newTestServer(t)
	broker, _ := s.register("JaneBroker", model.RoleBroker)
	customer, _ := s.register("carol", model.RoleCustomer)

	res := s.upload(broker, "house.png", pngBytes(t))
	require.Equal(t, fiber.StatusCreated, res.status, string(res.body))
	url := res.object(t)["url"].(string)
	assert.True(t, strings.HasPrefix(url, fakeCDN+"uploads/janebroker/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
	assert.Len(t, s.store.objects, 1)

	assert.Equal(t, fiber.StatusForbidden, s.upload(customer, "house.png", pngBytes(t)).status)
	assert.Equal(t, fiber.StatusUnauthorized, s.upload("", "house.png", pngBytes(t)).status)
}

func TestUploadPhoto_RejectsDisguisedFile(t *testing.T) {
	s := newTestServer(t)
	broker, _ := s.register("brokera", model.RoleBroker)

	res := s.upload(broker, "totally-an-image.png", []byte("#!/bin/sh\necho pwned\n"))
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "file", res.object(t)["field"])
	assert.Empty(t, s.store.objects)
}

func TestUploadPhoto_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"credentials rejected", fmt.Errorf("%w: AccessDenied", storage.ErrAccessDenied), fiber.StatusForbidden, model.CodeUpstreamForbidden},
		{"upstream failure", fmt.Errorf("%w: 500", storage.ErrUpstream), fiber.StatusBadGateway, model.CodeUpstreamError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.store.errOnPut = tt.err
			broker, _ := s.register("brokera", model.RoleBroker)

			res := s.upload(broker, "a.png", pngBytes(t))
			assert.Equal(t, tt.status, res.status)
			assert.Equal(t, tt.code, res.object(t)["code"])
		})
	}
}

func TestUploadPhoto_StorageNotConfigured(t *testing.T) {
	s := newTestServerWith(t, func(d *Deps) { d.Storage = nil })
	broker, _ := s.register("brokera", model.RoleBroker)

	res := s.upload(broker, "a.png", pngBytes(t))
	assert.Equal(t, fiber.StatusServiceUnavailable, res.status)
	assert.Equal(t, model.CodeUpstreamUnavailable, res.object(t)["code"])
}
