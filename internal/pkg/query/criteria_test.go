package query

import (
	"testing"

	"github.com/gang678/studentdocument/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrderedEquality(t *testing.T) {
	where, args, err := NewCriteria().
		AndEqualTo("user_id", uint(7)).
		AndEqualTo("check_year", "2024").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "user_id = ? AND check_year = ?", where)
	assert.Equal(t, []any{uint(7), "2024"}, args)
}

func TestBuildEmpty(t *testing.T) {
	where, args, err := NewCriteria().Build()
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)

	var nilCriteria *Criteria
	assert.True(t, nilCriteria.IsEmpty())
}

func TestBuildNullValues(t *testing.T) {
	var year *string
	userID := uint(3)

	where, args, err := NewCriteria().
		AndEqualTo("user_id", &userID).
		AndEqualTo("check_year", year).
		AndEqualTo("doctor", nil).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "user_id = ? AND check_year IS NULL AND doctor IS NULL", where)
	assert.Equal(t, []any{uint(3)}, args)
}

func TestBuildRejectsInjectedColumn(t *testing.T) {
	_, _, err := NewCriteria().AndEqualTo("user_id = 1 OR 1", 1).Build()
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, _, err = NewCriteria().AndEqualTo("check_info.user_id", 1).Build()
	assert.NoError(t, err)
}

func TestConditionsReturnsCopy(t *testing.T) {
	c := NewCriteria().AndEqualTo("a", 1)
	conds := c.Conditions()
	conds[0].Column = "b"
	assert.Equal(t, "a", c.Conditions()[0].Column)
}

type row struct {
	ID   uint `gorm:"primaryKey"`
	Kind string
	Year *string
}

func TestApplyAgainstDatabase(t *testing.T) {
	db := testutil.OpenDB(t, &row{})

	y2024 := "2024"
	require.NoError(t, db.Create(&[]row{
		{Kind: "a", Year: &y2024},
		{Kind: "a"},
		{Kind: "b", Year: &y2024},
	}).Error)

	tx, err := NewCriteria().AndEqualTo("kind", "a").AndEqualTo("year", "2024").Apply(db.Model(&row{}))
	require.NoError(t, err)
	var matched []row
	require.NoError(t, tx.Find(&matched).Error)
	require.Len(t, matched, 1)
	assert.Equal(t, uint(1), matched[0].ID)

	tx, err = NewCriteria().AndEqualTo("year", nil).Apply(db.Model(&row{}))
	require.NoError(t, err)
	require.NoError(t, tx.Find(&matched).Error)
	require.Len(t, matched, 1)
	assert.Equal(t, uint(2), matched[0].ID)

	tx, err = NewCriteria().Apply(db.Model(&row{}))
	require.NoError(t, err)
	var count int64
	require.NoError(t, tx.Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
