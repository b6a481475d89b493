// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-admin-auth/models"
)

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func scanRole(row rowScanner) (models.Role, error) {
	var r models.Role
	err := row.Scan(&r.RoleID, &r.Name, &r.Description, &r.IsActive)
	return r, err
}

func scanPermission(row rowScanner) (models.Permission, error) {
	var p models.Permission
	err := row.Scan(&p.PermissionID, &p.Name, &p.Description, &p.IsActive)
	return p, err
}

func scanRefreshToken(row rowScanner) (models.RefreshToken, error) {
	var (
		t          models.RefreshToken
		revokedAt  sql.NullTime
		replacedBy sql.NullString
	)

	err := row.Scan(&t.TokenID, &t.UserID, &t.Token, &t.ExpiresAt, &revokedAt, &t.IsRevoked, &replacedBy, &t.CreatedAt)
	if err != nil {
		return models.RefreshToken{}, err
	}

	if revokedAt.Valid {
		at := revokedAt.Time
		t.RevokedAt = &at
	}
	if replacedBy.Valid {
		s := replacedBy.String
		t.ReplacedByToken = &s
	}

	return t, nil
}

// collect drains rows through scan. ErrScanningRow/ErrScanningRows wrap the
// failure.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	results := make([]T, 0, 16)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}
