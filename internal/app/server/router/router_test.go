package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/model"
	authPkg "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/testutil"
	"github.com/gang678/studentdocument/internal/repo/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	t      *testing.T
	db     *gorm.DB
	router *Router
	ctx    context.Context
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{
				Secret:             "0123456789abcdef0123456789abcdef",
				AccessTokenExpire:  time.Hour,
				RefreshTokenExpire: 24 * time.Hour,
			},
		},
		Session: config.SessionConfig{Store: "memory"},
		Monitor: config.MonitorConfig{Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"}},
		App:     config.AppConfig{Version: "test", RoleListKeywords: config.DefaultRoleListKeywords},
	}
}

func newEnv(t *testing.T) *env {
	db := testutil.OpenDB(t, &model.Permission{}, &model.Role{}, &model.User{}, &model.CheckInfo{})
	r := NewRouter(Dependencies{
		DB:     db,
		Config: testConfig(),
		PasswordManager: authPkg.NewPasswordManager(&authPkg.PasswordConfig{
			Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
		}),
	})
	r.SetupRoutes()
	t.Cleanup(func() { _ = r.Close() })
	return &env{t: t, db: db, router: r, ctx: context.Background()}
}

// userWith 创建用户并授予一个持有给定权限的角色，返回访问令牌
func (e *env) userWith(username string, perms ...string) string {
	t := e.t
	permRepo := mysql.NewPermissionRepository(e.db)
	ids := make([]uint, 0, len(perms))
	for _, name := range perms {
		found, err := permRepo.SelectByNames(e.ctx, []string{name})
		require.NoError(t, err)
		if len(found) > 0 {
			ids = append(ids, found[0].ID)
			continue
		}
		p := &model.Permission{Name: name, Status: model.PermissionStatusEnabled}
		require.NoError(t, permRepo.Insert(e.ctx, p))
		ids = append(ids, p.ID)
	}

	role, err := e.router.systemModule.RoleService.Insert(e.ctx, &model.Role{Name: username + "-role", Status: model.RoleStatusEnabled})
	require.NoError(t, err)
	_, err = e.router.systemModule.RoleService.AssignPermissions(e.ctx, role.ID, ids)
	require.NoError(t, err)

	_, err = e.router.systemModule.UserService.CreateUser(e.ctx, &model.CreateUserRequest{
		Username: username,
		Password: "secret123",
		RoleIDs:  []uint{role.ID},
	})
	require.NoError(t, err)

	w := e.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.GetEngine().ServeHTTP(w, req)
	return w
}

func (e *env) roleNames() []string {
	var names []string
	require.NoError(e.t, e.db.Model(&model.Role{}).Order("id").Pluck("name", &names).Error)
	return names
}

func TestRoleWritesWithoutPermissionLeaveStorageUnchanged(t *testing.T) {
	e := newEnv(t)
	admin := e.userWith("admin", model.PermAll)
	viewer := e.userWith("viewer")

	w := e.do(http.MethodPost, "/api/role", admin, map[string]any{"name": "医生", "status": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var doctor model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctor))

	before := e.roleNames()

	w = e.do(http.MethodPost, "/api/role", viewer, map[string]any{"name": "用户"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPut, "/api/role", viewer, map[string]any{"id": doctor.ID, "name": "改名"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodDelete, "/api/role/"+strconv.FormatUint(uint64(doctor.ID), 10), viewer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Equal(t, before, e.roleNames())

	w = e.do(http.MethodPost, "/api/role", "", map[string]any{"name": "用户"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, before, e.roleNames())
}

func TestRoleWritesWithPermissionSucceed(t *testing.T) {
	e := newEnv(t)
	editor := e.userWith("editor", model.PermRoleAdd, model.PermRoleUpdate, model.PermRoleDelete)

	w := e.do(http.MethodPost, "/api/role", editor, map[string]any{"name": "医生", "status": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Contains(t, e.roleNames(), "医生")

	w = e.do(http.MethodPut, "/api/role", editor, map[string]any{"id": created.ID, "name": "校医生", "status": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, e.roleNames(), "校医生")
	assert.NotContains(t, e.roleNames(), "医生")

	w = e.do(http.MethodDelete, "/api/role/"+strconv.FormatUint(uint64(created.ID), 10), editor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, e.roleNames(), "校医生")
}

func TestRoleRenameWithoutStatusKeepsRoleEnabled(t *testing.T) {
	e := newEnv(t)
	editor := e.userWith("editor", model.PermRoleAdd, model.PermRoleUpdate)

	w := e.do(http.MethodPost, "/api/role", editor, map[string]any{"name": "医生"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = e.do(http.MethodPut, "/api/role", editor, map[string]any{"id": created.ID, "name": "校医生"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var renamed model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &renamed))
	assert.Equal(t, "校医生", renamed.Name)
	assert.Equal(t, model.RoleStatusEnabled, renamed.Status)

	// 编辑者重命名自己的角色后仍保留权限
	var own model.Role
	require.NoError(t, e.db.Where("name = ?", "editor-role").First(&own).Error)
	w = e.do(http.MethodPut, "/api/role", editor, map[string]any{"id": own.ID, "name": "editor-role-renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodPost, "/api/role", editor, map[string]any{"name": "用户"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRoleListIsPublicAndFiltered(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodGet, "/api/role/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	for _, name := range []string{"管理员", "医生", "学生用户"} {
		_, err := e.router.systemModule.RoleService.Insert(e.ctx, &model.Role{Name: name})
		require.NoError(t, err)
	}

	w = e.do(http.MethodGet, "/api/role/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roles []model.Role
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roles))
	require.Len(t, roles, 2)
	assert.Equal(t, "医生", roles[0].Name)
	assert.Equal(t, "学生用户", roles[1].Name)
}

func TestJudgeCheckIsExistEndpoint(t *testing.T) {
	e := newEnv(t)
	token := e.userWith("doctor01")

	w := e.do(http.MethodGet, "/api/checkInfo/judgeCheckIsExist?userId=5&checkYear=2024", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", strings.TrimSpace(w.Body.String()))

	w = e.do(http.MethodPost, "/api/checkInfo", token, map[string]any{"user_id": 5, "check_year": "2024"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodGet, "/api/checkInfo/judgeCheckIsExist?userId=5&checkYear=2024", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", strings.TrimSpace(w.Body.String()))

	w = e.do(http.MethodGet, "/api/checkInfo/judgeCheckIsExist", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", strings.TrimSpace(w.Body.String()))

	w = e.do(http.MethodGet, "/api/checkInfo/judgeCheckIsExist?userId=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/checkInfo", token, map[string]any{"user_id": 5, "check_year": "2024"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckInfoDeleteRequiresPermission(t *testing.T) {
	e := newEnv(t)
	doctor := e.userWith("doctor01")
	admin := e.userWith("admin", model.PermCheckInfoDelete)

	w := e.do(http.MethodPost, "/api/checkInfo", doctor, map[string]any{"user_id": 5, "check_year": "2024"})
	require.Equal(t, http.StatusOK, w.Code)
	var info model.CheckInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	path := "/api/checkInfo/" + strconv.FormatUint(uint64(info.ID), 10)

	assert.Equal(t, http.StatusForbidden, e.do(http.MethodDelete, path, doctor, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, path, doctor, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodDelete, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, path, doctor, nil).Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newEnv(t)
	token := e.userWith("doctor01")

	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/role", token, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodPost, "/api/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(http.MethodGet, "/api/role", token, nil).Code)
}

func TestUserManagementRoutes(t *testing.T) {
	e := newEnv(t)
	admin := e.userWith("admin", model.PermUserAdd, model.PermUserUpdate)

	w := e.do(http.MethodPost, "/api/user", admin, map[string]any{"username": "student01", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret123")
	var user model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	w = e.do(http.MethodPost, "/api/user", admin, map[string]any{"username": "student01", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	role, err := e.router.systemModule.RoleService.Insert(e.ctx, &model.Role{Name: "用户"})
	require.NoError(t, err)
	w = e.do(http.MethodPut, "/api/user/"+strconv.FormatUint(uint64(user.ID), 10)+"/roles", admin, map[string]any{"ids": []uint{role.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, []string{"用户"}, user.RoleNames())
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, e.do(http.MethodGet, "/api/ready", "", nil).Code)

	w := e.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "studentdoc_http_requests_total")
}
