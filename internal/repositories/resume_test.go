package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

func TestResumeRepository_FindByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "filename", "file_path", "skill_gaps", "parsed_data"}).
		AddRow(uuid.New(), userID, "cv.pdf", "user-uploads/abc.pdf", "{Kubernetes}", []byte(`{"name":"Ada"}`))
	mock.ExpectQuery(`SELECT \* FROM "user_resumes" WHERE user_id = \$1`).
		WillReturnRows(rows)

	resume, err := repo.FindByUserID(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", resume.Filename)
	assert.Equal(t, []string{"Kubernetes"}, []string(resume.SkillGaps))
	assert.JSONEq(t, `{"name":"Ada"}`, string(resume.ParsedData))
}

func TestResumeRepository_FindByUserID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user_resumes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUserID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResumeRepository_DeleteByUserID(t *testing.T) {
	t.Run("deletes the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewResumeRepository(db)

		mock.ExpectExec(`DELETE FROM "user_resumes" WHERE user_id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteByUserID(context.Background(), uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to delete", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewResumeRepository(db)

		mock.ExpectExec(`DELETE FROM "user_resumes"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteByUserID(context.Background(), uuid.New()), ErrNotFound)
	})
}

func TestResumeRepository_ResolvePendingExtractions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectExec(`UPDATE "resume_extractions" SET "applied_at"=\$1,"applied_by"=\$2,"status"=\$3,"updated_at"=\$4 WHERE user_id = \$5 AND status = \$6`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.ResolvePendingExtractions(context.Background(), uuid.New(), models.ExtractionApplied)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeRepository_UpdateExtractionStatus_Declined(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectExec(`UPDATE "resume_extractions" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND user_id = \$4`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateExtractionStatus(context.Background(), uuid.New(), uuid.New(), models.ExtractionDeclined)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResumeRepository_UpdateAnalysis_NoResume(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectExec(`UPDATE "user_resumes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAnalysis(context.Background(), uuid.New(), []byte(`{}`), []string{"Go"}, nil)

	assert.ErrorIs(t, err, ErrNotFound)
}
