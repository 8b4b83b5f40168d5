package schemas

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHash has the shape of a PHC encoded argon2i hash: 31 characters of parameters, a 22 character salt and a
// 43 character key.
var testHash = "$argon2i$v=19$m=1024,t=384,p=2$" + strings.Repeat("c", 22) + "$" + strings.Repeat("k", 43)

var (
	testReviewerId = uuid.MustParse("0b7c62e2-4f7c-4c8e-8f3a-2d9a6e9b1c11")
	testReviewId   = uuid.MustParse("7e1f0c4a-93b2-4d55-a0e6-5c2f8d4b3a77")
	testToken      = "0123456789abcdef0123456789abcdef"
	testDate       = time.Date(2019, 2, 14, 10, 30, 0, 123456000, time.UTC)
)

var reviewerColumnNames = []string{"reviewerid", "revieweractivationtoken", "reviewernickname", "revieweremail", "reviewerhash"}

var reviewColumnNames = []string{"reviewid", "reviewreviewerid", "reviewconsole", "reviewdate", "reviewrating", "reviewcontent"}

func fixedClock() time.Time {
	return testDate
}

func stringPtr(s string) *string {
	return &s
}

func newTestPool(t *testing.T) pgxmock.PgxPoolIface {
	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(poolMock.Close)
	return poolMock
}

func newTestReviewer(t *testing.T) *Reviewer {
	reviewer, err := NewReviewer(testReviewerId, nil, "tonyr", "tony@example.com", testHash)
	require.NoError(t, err)
	return reviewer
}

func newTestReview(t *testing.T) *Review {
	review, err := NewReviewWithClock(fixedClock, testReviewId, testReviewerId, "Xbox", nil, 8, "Great game")
	require.NoError(t, err)
	return review
}

func assertReviewEqual(t *testing.T, expected, actual *Review) {
	t.Helper()
	require.NotNil(t, actual)
	assert.Equal(t, expected.ReviewId(), actual.ReviewId())
	assert.Equal(t, expected.ReviewReviewerId(), actual.ReviewReviewerId())
	assert.Equal(t, expected.ReviewConsole(), actual.ReviewConsole())
	assert.True(t, expected.ReviewDate().Equal(actual.ReviewDate()), "dates differ: %v / %v", expected.ReviewDate(), actual.ReviewDate())
	assert.Equal(t, expected.ReviewRating(), actual.ReviewRating())
	assert.Equal(t, expected.ReviewContent(), actual.ReviewContent())
}
