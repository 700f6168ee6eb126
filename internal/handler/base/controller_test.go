package base

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/testutil"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	"github.com/gang678/studentdocument/internal/service/crud"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRoleRouter(t *testing.T) (*gin.Engine, *crud.Service[model.Role, uint]) {
	db := testutil.OpenDB(t, &model.Permission{}, &model.Role{}, &model.User{})
	svc := crud.NewService[model.Role, uint](mysql.NewRoleRepository(db), "role")
	ctrl := NewBaseController[model.Role, uint, *model.Role](svc, "role")

	r := gin.New()
	g := r.Group("/api/role")
	g.GET("", ctrl.FindAll)
	g.GET("/:id", ctrl.FindByID)
	g.POST("", ctrl.Save)
	g.PUT("", ctrl.Update)
	g.DELETE("/:id", ctrl.Delete)
	return r, svc
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBaseControllerLifecycle(t *testing.T) {
	r, svc := newRoleRouter(t)

	w := do(r, http.MethodPost, "/api/role", map[string]any{"id": 42, "name": "医生", "status": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, uint(42), created.ID, "client supplied id is ignored")

	w = do(r, http.MethodPut, "/api/role", map[string]any{"id": created.ID, "name": "主任医生", "status": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := svc.SelectByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "主任医生", got.Name)

	w = do(r, http.MethodGet, "/api/role/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/role", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	w = do(r, http.MethodDelete, "/api/role/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "true", w.Body.String())

	w = do(r, http.MethodGet, "/api/role/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBaseControllerUpdateKeepsOmittedFields(t *testing.T) {
	r, svc := newRoleRouter(t)
	ctx := context.Background()

	w := do(r, http.MethodPost, "/api/role", map[string]any{"name": "医生", "description": "校医"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, model.RoleStatusEnabled, created.Status)

	w = do(r, http.MethodPut, "/api/role", map[string]any{"id": created.ID, "name": "校医生"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := svc.SelectByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "校医生", got.Name)
	assert.Equal(t, "校医", got.Description)
	assert.Equal(t, model.RoleStatusEnabled, got.Status)

	// 显式传入零值仍然生效
	w = do(r, http.MethodPut, "/api/role", map[string]any{"id": created.ID, "status": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got, err = svc.SelectByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "校医生", got.Name)
	assert.Equal(t, model.RoleStatusDisabled, got.Status)

	w = do(r, http.MethodPut, "/api/role", map[string]any{"id": created.ID, "name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBaseControllerBadRequests(t *testing.T) {
	r, _ := newRoleRouter(t)

	w := do(r, http.MethodPut, "/api/role", map[string]any{"name": "医生"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/role", map[string]any{"description": "缺少名称"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/api/role/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "id", resp.Errors[0].Field)

	w = do(r, http.MethodPut, "/api/role", map[string]any{"id": 999, "name": "医生"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseID(t *testing.T) {
	id, err := ParseID[uint]("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	_, err = ParseID[uint]("0")
	assert.True(t, system.IsValidationError(err))

	_, err = ParseID[int32]("4294967296")
	assert.Error(t, err)

	_, err = ParseID[int64]("9223372036854775808")
	assert.Error(t, err)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{system.NewValidationError("id", "bad"), http.StatusBadRequest},
		{system.ErrUnauthorized, http.StatusUnauthorized},
		{system.ErrTokenRevoked, http.StatusUnauthorized},
		{system.ErrPermissionDenied, http.StatusForbidden},
		{system.ErrNotFound, http.StatusNotFound},
		{system.ErrCheckInfoExists, http.StatusConflict},
		{errors.Join(system.ErrDataAccess, errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), tt.err.Error())
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
