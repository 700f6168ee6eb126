package server

import (
	"context"
	"testing"

	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/model"
	authPkg "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/testutil"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	"github.com/gang678/studentdocument/internal/service/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	cfg := &config.Config{App: config.AppConfig{RoleListKeywords: config.DefaultRoleListKeywords}}
	opts := SeedOptions{
		AdminPassword: "admin123",
		PasswordManager: authPkg.NewPasswordManager(&authPkg.PasswordConfig{
			Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
		}),
	}

	require.NoError(t, Migrate(db, false))
	require.NoError(t, Seed(ctx, db, cfg, opts))
	// 重复执行不产生重复数据
	require.NoError(t, Seed(ctx, db, cfg, opts))

	var roleCount, permCount, userCount int64
	require.NoError(t, db.Model(&model.Role{}).Count(&roleCount).Error)
	require.NoError(t, db.Model(&model.Permission{}).Count(&permCount).Error)
	require.NoError(t, db.Model(&model.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 3, roleCount)
	assert.EqualValues(t, len(model.BuiltinPermissions), permCount)
	assert.EqualValues(t, 1, userCount)

	admin, err := mysql.NewUserRepository(db).SelectByUsername(ctx, DefaultAdminUsername)
	require.NoError(t, err)
	require.NotNil(t, admin)

	rbac := auth.NewRBACService(mysql.NewUserRepository(db))
	for _, perm := range model.BuiltinPermissions {
		ok, err := rbac.HasPermission(ctx, admin.ID, perm)
		require.NoError(t, err)
		assert.True(t, ok, perm)
	}

	roles := auth.NewRoleService(mysql.NewRoleRepository(db), cfg.App.RoleListKeywords)
	listed, err := roles.ListForEndUsers(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(listed))
	for _, r := range listed {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{RoleDoctor, RoleUser}, names)
}

func TestMigrateDrop(t *testing.T) {
	db := testutil.OpenDB(t)
	require.NoError(t, Migrate(db, false))
	require.NoError(t, db.Create(&model.CheckInfo{UserID: 1, CheckYear: "2024"}).Error)

	require.NoError(t, Migrate(db, true))

	var count int64
	require.NoError(t, db.Model(&model.CheckInfo{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedRequiresAdminPassword(t *testing.T) {
	db := testutil.OpenDB(t)
	require.NoError(t, Migrate(db, false))
	err := Seed(context.Background(), db, &config.Config{}, SeedOptions{})
	assert.Error(t, err)
}
