package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postJSON(t *testing.T, method, target string, payload any, deviceID string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(method, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(deviceIDKey, deviceID)
	return w, c
}

func TestRegisterRejectsBlankNickname(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		payload any
	}{
		{"Empty", RegisterDeviceRequest{Nickname: ""}},
		{"Whitespace Only", RegisterDeviceRequest{Nickname: "   "}},
		{"Missing Field", gin.H{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			service := NewDeviceService(db)

			w, c := postJSON(t, http.MethodPost, "/api/v1/devices", tt.payload, "abc")
			service.Register(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			// A rejected nickname must not reach the store at all
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegisterInsertsDevice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)
	service := NewDeviceService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "devices"`).
		WithArgs("abc", "Alice", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w, c := postJSON(t, http.MethodPost, "/api/v1/devices", RegisterDeviceRequest{Nickname: "  Alice  "}, "abc")
	service.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		State    FlowState `json:"state"`
		Nickname string    `json:"nickname"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, StateRegistered, resp.State)
	assert.Equal(t, "Alice", resp.Nickname)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStoreFailurePreservesState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)
	service := NewDeviceService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "devices"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	w, c := postJSON(t, http.MethodPost, "/api/v1/devices", RegisterDeviceRequest{Nickname: "Alice"}, "abc")
	service.Register(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "등록에 실패했습니다.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNickname(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Updates Existing Device", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewDeviceService(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "devices" SET "nickname"=\$1 WHERE device_id = \$2`).
			WithArgs("Bob", "abc").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		w, c := postJSON(t, http.MethodPut, "/api/v1/devices/nickname", UpdateNicknameRequest{Nickname: "Bob"}, "abc")
		service.UpdateNickname(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Device", func(t *testing.T) {
		db, mock := newMockDB(t)
		service := NewDeviceService(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "devices" SET "nickname"=\$1 WHERE device_id = \$2`).
			WithArgs("Bob", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		w, c := postJSON(t, http.MethodPut, "/api/v1/devices/nickname", UpdateNicknameRequest{Nickname: "Bob"}, "ghost")
		service.UpdateNickname(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
