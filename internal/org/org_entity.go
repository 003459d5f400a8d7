package org

import (
	"context"
	"fmt"
	"time"

	orgerrors "go-peoplehub/internal/org/errors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Organization adalah tenant itu sendiri: unit isolasi data.
// Tidak memakai tenant store karena tidak mungkin scoped ke dirinya sendiri.
type Organization struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Slug   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Domain string    `gorm:"type:varchar(255);index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// GenerateSlug menurunkan slug URL-safe dari nama organisasi.
func GenerateSlug(name string) string {
	return slug.Make(name)
}

// UniqueSlug menambahkan suffix numerik ketika slug dasar sudah terpakai.
// Dipakai oleh semua jalur onboarding (password maupun OAuth).
func UniqueSlug(ctx context.Context, repo Repository, name string) (string, error) {
	base := GenerateSlug(name)
	if base == "" {
		return "", orgerrors.ErrInvalidOrganizationName
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := repo.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
