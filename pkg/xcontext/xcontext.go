package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/wechest/backend/config"
	"github.com/wechest/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	dbTxKey        struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	startTimeKey   struct{}
	outcomeKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		panic("no logger in context")
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current transaction if one is open, otherwise the root
// connection.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && holder.tx != nil {
		return holder.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type txHolder struct {
	tx *gorm.DB
}

// WithDBTransaction begins a transaction and returns a context whose DB()
// resolves to it. Commit or rollback through the returned context.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &txHolder{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the current transaction. The returned
// context resolves DB() to the root connection again.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	holder, ok := ctx.Value(dbTxKey{}).(*txHolder)
	if ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the current transaction if it has not
// been committed yet. Safe to defer unconditionally.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	holder, ok := ctx.Value(dbTxKey{}).(*txHolder)
	if ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		panic("no http request in context")
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	if !ok {
		panic("no http writer in context")
	}

	return w
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

type outcomeHolder struct {
	err  error
	resp any
}

// WithRequestOutcome prepares a mutable slot the router uses to record the
// handler result, so closers can observe it after the response is written.
func WithRequestOutcome(ctx context.Context) context.Context {
	return context.WithValue(ctx, outcomeKey{}, &outcomeHolder{})
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(outcomeKey{}).(*outcomeHolder); ok {
		holder.err = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(outcomeKey{}).(*outcomeHolder); ok {
		return holder.err
	}

	return nil
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(outcomeKey{}).(*outcomeHolder); ok {
		holder.resp = resp
	}
}

func Response(ctx context.Context) any {
	if holder, ok := ctx.Value(outcomeKey{}).(*outcomeHolder); ok {
		return holder.resp
	}

	return nil
}
