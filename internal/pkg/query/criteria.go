// Package query 等值查询条件构造
package query

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidColumn 列名不是合法标识符
var ErrInvalidColumn = errors.New("invalid column name")

var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Condition 单个等值条件
type Condition struct {
	Column string
	Value  any
}

// Criteria 按添加顺序保存的等值条件，条件之间为 AND
type Criteria struct {
	conditions []Condition
}

// NewCriteria 创建空条件，空条件匹配所有记录
func NewCriteria() *Criteria {
	return &Criteria{}
}

// AndEqualTo 追加 column = value 条件
// value 为 nil(含 nil 指针)时生成 column IS NULL
func (c *Criteria) AndEqualTo(column string, value any) *Criteria {
	c.conditions = append(c.conditions, Condition{Column: column, Value: value})
	return c
}

// Conditions 返回条件副本
func (c *Criteria) Conditions() []Condition {
	if c == nil {
		return nil
	}
	out := make([]Condition, len(c.conditions))
	copy(out, c.conditions)
	return out
}

// IsEmpty 是否没有任何条件
func (c *Criteria) IsEmpty() bool {
	return c == nil || len(c.conditions) == 0
}

// Build 生成参数化 WHERE 片段及参数
func (c *Criteria) Build() (string, []any, error) {
	if c.IsEmpty() {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(c.conditions))
	args := make([]any, 0, len(c.conditions))
	for _, cond := range c.conditions {
		if !columnPattern.MatchString(cond.Column) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidColumn, cond.Column)
		}
		value, isNull := deref(cond.Value)
		if isNull {
			clauses = append(clauses, cond.Column+" IS NULL")
			continue
		}
		clauses = append(clauses, cond.Column+" = ?")
		args = append(args, value)
	}
	return strings.Join(clauses, " AND "), args, nil
}

// Apply 把条件应用到查询上
func (c *Criteria) Apply(db *gorm.DB) (*gorm.DB, error) {
	where, args, err := c.Build()
	if err != nil {
		return nil, err
	}
	if where == "" {
		return db, nil
	}
	return db.Where(where, args...), nil
}

// deref 解引用指针，返回实际值以及是否为空
func deref(value any) (any, bool) {
	if value == nil {
		return nil, true
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	return rv.Interface(), false
}
