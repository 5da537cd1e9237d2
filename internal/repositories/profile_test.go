package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_FindByUserID(t *testing.T) {
	t.Run("returns the stored profile", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "full_name", "email", "revision"}).
			AddRow(uuid.New(), userID, "Ada Lovelace", "ada@example.com", 3)
		mock.ExpectQuery(`SELECT \* FROM "user_profiles" WHERE user_id = \$1`).
			WillReturnRows(rows)

		profile, err := repo.FindByUserID(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, "Ada Lovelace", profile.FullName)
		assert.Equal(t, int64(3), profile.Revision)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a missing row to ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "user_profiles" WHERE user_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		profile, err := repo.FindByUserID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, profile)
	})
}

func TestProfileRepository_UpdatePersonalInfo(t *testing.T) {
	t.Run("no columns is a no-op", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)

		err := repo.UpdatePersonalInfo(context.Background(), uuid.New(), nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates the given columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectExec(`UPDATE "user_profiles" SET .*"phone"=.* WHERE user_id = \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePersonalInfo(context.Background(), uuid.New(), map[string]interface{}{"phone": "+1 555"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectExec(`UPDATE "user_profiles"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePersonalInfo(context.Background(), uuid.New(), map[string]interface{}{"phone": "1"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProfileRepository_BumpRevision(t *testing.T) {
	t.Run("increments and returns the new revision", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectExec(`UPDATE "user_profiles" SET "revision"=revision \+ 1`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .revision. FROM "user_profiles"`).
			WillReturnRows(sqlmock.NewRows([]string{"revision"}).AddRow(5))

		revision, err := repo.BumpRevision(context.Background(), uuid.New(), nil)

		require.NoError(t, err)
		assert.Equal(t, int64(5), revision)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale expected revision is a conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)
		userID := uuid.New()
		expected := int64(2)

		mock.ExpectExec(`UPDATE "user_profiles" SET .* AND revision = \$\d`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "user_profiles" WHERE user_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "revision"}).AddRow(uuid.New(), userID, 3))

		_, err := repo.BumpRevision(context.Background(), userID, &expected)

		assert.ErrorIs(t, err, ErrRevisionConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unconditional bump on a missing profile", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)

		mock.ExpectExec(`UPDATE "user_profiles"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.BumpRevision(context.Background(), uuid.New(), nil)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProfileRepository_LoadSections(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "user_education" WHERE user_id = \$1 ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "institution", "degree", "created_at"}).
			AddRow(uuid.New(), userID, "MIT", "BSc", now))
	mock.ExpectQuery(`SELECT \* FROM "user_experience"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "company", "position", "technologies"}).
			AddRow(uuid.New(), userID, "Acme", "Engineer", "{Go,SQL}"))
	mock.ExpectQuery(`SELECT \* FROM "user_projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "user_skills"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).AddRow(uuid.New(), userID, "Go"))
	mock.ExpectQuery(`SELECT \* FROM "user_certifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	sections, err := repo.LoadSections(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, sections.Education, 1)
	assert.Equal(t, "MIT", sections.Education[0].Institution)
	require.Len(t, sections.Experience, 1)
	assert.Equal(t, []string{"Go", "SQL"}, []string(sections.Experience[0].Technologies))
	assert.Empty(t, sections.Projects)
	assert.Len(t, sections.Skills, 1)
	assert.False(t, sections.IsEmpty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ReplaceSkills_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`DELETE FROM "user_skills" WHERE user_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	err := repo.ReplaceSkills(context.Background(), uuid.New(), nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Transaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "user_education"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx ProfileRepository) error {
		if err := tx.ReplaceEducation(context.Background(), uuid.New(), nil); err != nil {
			return err
		}
		return ErrRevisionConflict
	})

	assert.ErrorIs(t, err, ErrRevisionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
