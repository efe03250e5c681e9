package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vault_store.go -package=mocks orgindex/internal/storage VaultStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// VaultStore defines the interface for vault storage operations.
type VaultStore interface {
	// GetOrCreateByName gets an existing vault by name, or creates it if it doesn't exist.
	GetOrCreateByName(ctx context.Context, name, rootPath string) (VaultRecord, error)
	// ListAll returns all vaults ordered by name.
	ListAll(ctx context.Context) ([]VaultRecord, error)
}

// VaultRepo provides methods for vault operations.
// It implements the VaultStore interface.
type VaultRepo struct {
	db *sql.DB
}

// NewVaultRepo creates a new VaultRepo.
func NewVaultRepo(db *sql.DB) *VaultRepo {
	return &VaultRepo{db: db}
}

// GetOrCreateByName gets an existing vault by name, or creates it if it doesn't exist.
// An existing vault keeps its ID; its root path is updated when it moved.
func (r *VaultRepo) GetOrCreateByName(ctx context.Context, name, rootPath string) (VaultRecord, error) {
	vault, err := r.getByName(ctx, name)
	if err == nil {
		if vault.RootPath != rootPath {
			if _, err := r.db.ExecContext(ctx, "UPDATE vaults SET root_path = ? WHERE id = ?", rootPath, vault.ID); err != nil {
				return VaultRecord{}, fmt.Errorf("failed to update vault root: %w", err)
			}
			vault.RootPath = rootPath
		}
		return vault, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return VaultRecord{}, err
	}

	// Vault doesn't exist, create it
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO vaults (name, root_path) VALUES (?, ?)",
		name, rootPath,
	); err != nil {
		return VaultRecord{}, fmt.Errorf("failed to insert vault: %w", err)
	}

	return r.getByName(ctx, name)
}

func (r *VaultRepo) getByName(ctx context.Context, name string) (VaultRecord, error) {
	var vault VaultRecord
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, root_path, created_at FROM vaults WHERE name = ?",
		name,
	).Scan(&vault.ID, &vault.Name, &vault.RootPath, &createdAtStr)

	if err == sql.ErrNoRows {
		return VaultRecord{}, ErrNotFound
	}
	if err != nil {
		return VaultRecord{}, fmt.Errorf("failed to query vault: %w", err)
	}

	vault.CreatedAt, err = parseDBTime(createdAtStr)
	if err != nil {
		return VaultRecord{}, err
	}
	return vault, nil
}

// ListAll returns all vaults ordered by name.
func (r *VaultRepo) ListAll(ctx context.Context) ([]VaultRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, root_path, created_at FROM vaults ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query vaults: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var vaults []VaultRecord
	for rows.Next() {
		var vault VaultRecord
		var createdAtStr string
		if err := rows.Scan(&vault.ID, &vault.Name, &vault.RootPath, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan vault: %w", err)
		}

		vault.CreatedAt, err = parseDBTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		vaults = append(vaults, vault)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return vaults, nil
}
