// Package apperr 错误分类：建表、拉取、格式、入库、查询五类，供各层按类别决定日志与响应
package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind string

const (
	KindDDL       Kind = "ddl"       // 建表失败，启动终止
	KindFetch     Kind = "fetch"     // 第三方接口调用失败或响应缺少 items
	KindFormat    Kind = "format"    // items 不是数组
	KindIngestion Kind = "ingestion" // 入库事务失败，整批回滚
	KindQuery     Kind = "query"     // 读接口数据库错误
)

// Error 带类别与操作名的错误，Err 为底层原因
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New 构造分类错误
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf 构造分类错误，原因由格式化字符串生成（支持 %w）
func Errorf(kind Kind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf 返回错误链上第一个分类；未分类返回空串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is 判断错误链上是否存在指定类别
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
