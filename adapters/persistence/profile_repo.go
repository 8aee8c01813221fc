package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/domain/profile"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

type ProfileRepoOptions struct {
	// SwallowListErrors makes List log a failed read and return an empty
	// slice instead of an error.
	SwallowListErrors bool
}

type postgresProfileRepo struct {
	db     DBTX
	logger logger.Logger
	opts   ProfileRepoOptions
}

func NewPostgresProfileRepo(db DBTX, logger logger.Logger, opts ProfileRepoOptions) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger, opts: opts}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"id", "owner_id", "name", "bio", "photo_url", "skills", "socials", "projects", "created_at", "updated_at",
}

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var socialsBytes, projectsBytes []byte

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.Bio,
		&p.PhotoURL,
		&p.Skills,
		&socialsBytes,
		&projectsBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", "")
		}
		return nil, storeError("failed to scan profile row", err)
	}

	if p.Skills == nil {
		p.Skills = []string{}
	}
	p.Socials = profile.Socials{}
	if len(socialsBytes) > 0 {
		if err := json.Unmarshal(socialsBytes, &p.Socials); err != nil {
			l.Warn("Failed to unmarshal socials", zap.String("profile_id", p.ID.String()), zap.Error(err))
			p.Socials = profile.Socials{}
		}
	}
	p.Projects = []profile.Project{}
	if len(projectsBytes) > 0 {
		if err := json.Unmarshal(projectsBytes, &p.Projects); err != nil {
			l.Warn("Failed to unmarshal projects", zap.String("profile_id", p.ID.String()), zap.Error(err))
			p.Projects = []profile.Project{}
		}
	}

	return p, nil
}

func scanProfiles(rows pgx.Rows, l logger.Logger) ([]*profile.Profile, error) {
	defer rows.Close()
	profiles := make([]*profile.Profile, 0)

	for rows.Next() {
		p, err := scanProfile(rows, l)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("error iterating profile rows", err)
	}
	return profiles, nil
}

func marshalDraft(d profile.Draft) (socials, projects []byte, err error) {
	d = d.Clone()
	socials, err = json.Marshal(d.Socials)
	if err != nil {
		return nil, nil, apperror.NewInternal("failed to marshal socials", err)
	}
	projects, err = json.Marshal(d.Projects)
	if err != nil {
		return nil, nil, apperror.NewInternal("failed to marshal projects", err)
	}
	return socials, projects, nil
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	profiles, err := r.list(ctx)
	if err != nil {
		if r.opts.SwallowListErrors {
			r.logger.Error("Error fetching profiles, returning empty list", err)
			return []*profile.Profile{}, nil
		}
		return nil, err
	}
	return profiles, nil
}

func (r *postgresProfileRepo) list(ctx context.Context) ([]*profile.Profile, error) {
	sql, args, err := psqlProfile.Select(profileColumns...).
		From("profiles").
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}

	var profiles []*profile.Profile
	err = readAs(ctx, r.db, func(q querier) error {
		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		profiles, err = scanProfiles(rows, r.logger)
		return err
	})
	if err != nil {
		return nil, storeError("failed to query profiles", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	sql, args, err := psqlProfile.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find profile query", err)
	}

	var p *profile.Profile
	err = readAs(ctx, r.db, func(q querier) error {
		found, err := scanProfile(q.QueryRow(ctx, sql, args...), r.logger)
		p = found
		return err
	})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	if err != nil {
		return nil, storeError("failed to find profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, d profile.Draft, ownerID uuid.UUID) (*profile.Profile, error) {
	socialsBytes, projectsBytes, err := marshalDraft(d)
	if err != nil {
		return nil, err
	}
	skills := d.Clone().Skills

	sql, args, err := psqlProfile.Insert("profiles").
		Columns("owner_id", "name", "bio", "photo_url", "skills", "socials", "projects").
		Values(ownerID, d.Name, d.Bio, d.PhotoURL, skills, socialsBytes, projectsBytes).
		Suffix("RETURNING " + strings.Join(profileColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build insert profile query", err)
	}

	var created *profile.Profile
	err = withViewer(ctx, r.db, func(tx pgx.Tx) error {
		p, err := scanProfile(tx.QueryRow(ctx, sql, args...), r.logger)
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, storeError("failed to insert profile", err)
	}
	return created, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, id uuid.UUID, d profile.Draft) (*profile.Profile, error) {
	socialsBytes, projectsBytes, err := marshalDraft(d)
	if err != nil {
		return nil, err
	}

	sql, args, err := psqlProfile.Update("profiles").
		SetMap(map[string]any{
			"name":       d.Name,
			"bio":        d.Bio,
			"photo_url":  d.PhotoURL,
			"skills":     d.Clone().Skills,
			"socials":    socialsBytes,
			"projects":   projectsBytes,
			"updated_at": sq.Expr("NOW()"),
		}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(profileColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build update profile query", err)
	}

	var updated *profile.Profile
	err = withViewer(ctx, r.db, func(tx pgx.Tx) error {
		p, err := scanProfile(tx.QueryRow(ctx, sql, args...), r.logger)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("profile", id.String())
	}
	if err != nil {
		return nil, storeError("failed to update profile", err)
	}
	return updated, nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := withViewer(ctx, r.db, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperror.NewNotFound("profile", id.String())
		}
		return nil
	})
	if err != nil {
		return storeError("failed to delete profile", err)
	}
	return nil
}
