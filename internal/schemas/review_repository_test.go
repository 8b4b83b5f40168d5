package schemas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamereview/internal/validators"
)

const testDateText = "2019-02-14 10:30:00.123456"

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%Xbox%", containsPattern("Xbox"))
	assert.Equal(t, `%50\%\_x%`, containsPattern("50%_x"))
	assert.Equal(t, `%C:\\games%`, containsPattern(`C:\games`))
}

func TestReviewInsertThenLookupByReviewer(t *testing.T) {
	poolMock := newTestPool(t)
	review := newTestReview(t)

	poolMock.ExpectExec("INSERT INTO review").
		WithArgs(testReviewId[:], testReviewerId[:], "Xbox", testDateText, 8, "Great game").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewReviewerId (.+) ORDER BY reviewDate DESC").
		WithArgs(testReviewerId[:]).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 8, "Great game"))

	ctx := context.Background()
	require.NoError(t, review.Insert(ctx, poolMock))

	reviews, err := GetReviewByReviewerId(ctx, poolMock, testReviewerId.String())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assertReviewEqual(t, review, reviews[0])

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestReviewInsertWithUnknownReviewer(t *testing.T) {
	poolMock := newTestPool(t)
	review := newTestReview(t)

	poolMock.ExpectExec("INSERT INTO review").
		WithArgs(testReviewId[:], testReviewerId[:], "Xbox", testDateText, 8, "Great game").
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"review\" violates foreign key constraint"})

	err := review.Insert(context.Background(), poolMock)
	assert.True(t, errors.Is(err, validators.ErrStorage))

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestReviewUpdate(t *testing.T) {
	poolMock := newTestPool(t)
	review := newTestReview(t)

	require.NoError(t, review.SetReviewRating(9))
	require.NoError(t, review.SetReviewContent("Even better on replay"))

	poolMock.ExpectExec("UPDATE review SET").
		WithArgs(testReviewerId[:], "Xbox", testDateText, 9, "Even better on replay", testReviewId[:]).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, review.Update(context.Background(), poolMock))
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestReviewDeleteThenLookup(t *testing.T) {
	poolMock := newTestPool(t)
	review := newTestReview(t)

	poolMock.ExpectExec("DELETE FROM review").
		WithArgs(testReviewId[:]).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewId").
		WithArgs(testReviewId[:]).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames))

	ctx := context.Background()
	require.NoError(t, review.Delete(ctx, poolMock))

	loaded, err := GetReviewByReviewId(ctx, poolMock, testReviewId)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestGetReviewByReviewId(t *testing.T) {
	poolMock := newTestPool(t)

	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewId").
		WithArgs(testReviewId[:]).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 8, "Great game"))

	review, err := GetReviewByReviewId(context.Background(), poolMock, testReviewId[:])
	require.NoError(t, err)
	assertReviewEqual(t, newTestReview(t), review)

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestGetReviewByReviewConsole(t *testing.T) {
	poolMock := newTestPool(t)
	olderId := uuid.MustParse("3c9e8d7f-1a2b-4c5d-9e8f-7a6b5c4d3e2f")
	older := testDate.Add(-48 * time.Hour)

	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewConsole LIKE (.+) ORDER BY reviewDate DESC").
		WithArgs("%Xbox%").
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).
			AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 8, "Great game").
			AddRow(olderId[:], testReviewerId[:], "Xbox One", older, 5, "Average"))

	reviews, err := GetReviewByReviewConsole(context.Background(), poolMock, " Xbox ")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, testReviewId, reviews[0].ReviewId())
	assert.Equal(t, olderId, reviews[1].ReviewId())
	assert.Equal(t, "Xbox One", reviews[1].ReviewConsole())
	assert.True(t, older.Equal(reviews[1].ReviewDate()))

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestGetReviewByReviewContentEscapesWildcards(t *testing.T) {
	poolMock := newTestPool(t)

	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewContent LIKE").
		WithArgs(`%50\%\_x%`).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames))

	reviews, err := GetReviewByReviewContent(context.Background(), poolMock, "50%_x")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestGetReviewByReviewRating(t *testing.T) {
	poolMock := newTestPool(t)

	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewRating").
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 8, "Great game"))

	reviews, err := GetReviewByReviewRating(context.Background(), poolMock, 8)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 8, reviews[0].ReviewRating())

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestGetAllReviews(t *testing.T) {
	poolMock := newTestPool(t)

	poolMock.ExpectQuery("SELECT (.+) FROM review ORDER BY reviewDate DESC").
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 8, "Great game"))

	reviews, err := GetAllReviews(context.Background(), poolMock)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assertReviewEqual(t, newTestReview(t), reviews[0])

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestReviewLookupsRejectInvalidInput(t *testing.T) {
	poolMock := newTestPool(t)
	ctx := context.Background()

	_, err := GetReviewByReviewId(ctx, poolMock, 42)
	assert.True(t, errors.Is(err, validators.ErrTypeMismatch))

	_, err = GetReviewByReviewerId(ctx, poolMock, "not-a-uuid")
	assert.True(t, errors.Is(err, validators.ErrInvalidArgument))

	_, err = GetReviewByReviewConsole(ctx, poolMock, "   ")
	assert.True(t, errors.Is(err, validators.ErrInvalidArgument))

	_, err = GetReviewByReviewContent(ctx, poolMock, "<b></b>")
	assert.True(t, errors.Is(err, validators.ErrInvalidArgument))

	_, err = GetReviewByReviewRating(ctx, poolMock, 11)
	assert.True(t, errors.Is(err, validators.ErrRange))
	assert.False(t, errors.Is(err, validators.ErrStorage))

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestReviewLookupRejectsCorruptRow(t *testing.T) {
	poolMock := newTestPool(t)

	poolMock.ExpectQuery("SELECT (.+) FROM review WHERE reviewRating").
		WithArgs(8).
		WillReturnRows(pgxmock.NewRows(reviewColumnNames).
			AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 8, "Great game").
			AddRow(testReviewId[:], testReviewerId[:], "Xbox", testDate, 42, "Great game"))

	reviews, err := GetReviewByReviewRating(context.Background(), poolMock, 8)
	assert.Nil(t, reviews)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validators.ErrStorage))
	assert.True(t, errors.Is(err, validators.ErrRange))

	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestReviewLookupQueryError(t *testing.T) {
	poolMock := newTestPool(t)

	poolMock.ExpectQuery("SELECT (.+) FROM review").
		WillReturnError(errors.New("relation \"review\" does not exist"))

	reviews, err := GetAllReviews(context.Background(), poolMock)
	assert.Nil(t, reviews)
	assert.True(t, errors.Is(err, validators.ErrStorage))

	assert.NoError(t, poolMock.ExpectationsWereMet())
}
