package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/qrleads/internal/entity"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

// mapError translates driver errors into entity errors. onUnique is returned
// for unique violations.
func mapError(err error, onUnique error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return onUnique
		case pgForeignKeyViolation:
			// na inserção aponta para um registro inexistente; na exclusão, ainda referenciado
			if isDeleteViolation(pgErr) {
				return fmt.Errorf("%w: %s", entity.ErrInUse, pgErr.TableName)
			}
			return fmt.Errorf("%w: %s", entity.ErrNotFound, pgErr.ConstraintName)
		case pgInvalidText:
			return entity.ErrNotFound
		}
	}
	return err
}

// On delete Postgres reports "... is still referenced from table ...".
func isDeleteViolation(pgErr *pgconn.PgError) bool {
	return strings.Contains(strings.ToLower(pgErr.Detail), "is still referenced")
}

// rowsAffected turns "nothing updated" into ErrNotFound.
func rowsAffected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type scanner interface {
	Scan(dest ...any) error
}
