package schemas

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"gamereview/internal/interfaces"
	"gamereview/internal/utils"
	"gamereview/internal/validators"
)

const reviewColumns = "reviewId, reviewReviewerId, reviewConsole, reviewDate, reviewRating, reviewContent"

// Newest first: the reviews of a console are read as a feed.
const reviewOrder = " ORDER BY reviewDate DESC, reviewId"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps s in a LIKE pattern matching any value that contains it literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Insert writes the review as a new row. The date is sent in validators.DateTimeLayout form.
func (r *Review) Insert(ctx context.Context, db interfaces.Querier) error {
	utils.LogMessageWithFields(ctx, "debug", "Inserting review "+r.reviewId.String())

	queryString := "INSERT INTO review (" + reviewColumns + ") VALUES ($1, $2, $3, $4, $5, $6)"
	if _, err := db.Exec(ctx, queryString, r.reviewId[:], r.reviewReviewerId[:], r.reviewConsole,
		r.reviewDate.Format(validators.DateTimeLayout), r.reviewRating, r.reviewContent); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error inserting review", err)
		return validators.NewStorageError("insert review", err)
	}
	return nil
}

// Update re-validates every field and rewrites the row with the review's id. Updating a missing row is a no-op.
func (r *Review) Update(ctx context.Context, db interfaces.Querier) error {
	if err := r.validate(); err != nil {
		return err
	}

	utils.LogMessageWithFields(ctx, "debug", "Updating review "+r.reviewId.String())

	queryString := "UPDATE review SET reviewReviewerId = $1, reviewConsole = $2, reviewDate = $3, reviewRating = $4, reviewContent = $5 WHERE reviewId = $6"
	if _, err := db.Exec(ctx, queryString, r.reviewReviewerId[:], r.reviewConsole, r.reviewDate.Format(validators.DateTimeLayout),
		r.reviewRating, r.reviewContent, r.reviewId[:]); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error updating review", err)
		return validators.NewStorageError("update review", err)
	}
	return nil
}

// Delete removes the row with the review's id. Deleting a missing row is a no-op.
func (r *Review) Delete(ctx context.Context, db interfaces.Querier) error {
	utils.LogMessageWithFields(ctx, "debug", "Deleting review "+r.reviewId.String())

	queryString := "DELETE FROM review WHERE reviewId = $1"
	if _, err := db.Exec(ctx, queryString, r.reviewId[:]); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error deleting review", err)
		return validators.NewStorageError("delete review", err)
	}
	return nil
}

// GetReviewByReviewId returns the review with the given id, or nil if there is none.
func GetReviewByReviewId(ctx context.Context, db interfaces.Querier, reviewId interface{}) (*Review, error) {
	id, err := validators.ValidateUUID(reviewId)
	if err != nil {
		return nil, err
	}

	queryString := "SELECT " + reviewColumns + " FROM review WHERE reviewId = $1"
	reviews, err := queryReviews(ctx, db, queryString, id[:])
	if err != nil || len(reviews) == 0 {
		return nil, err
	}
	return reviews[0], nil
}

// GetReviewByReviewerId returns every review written by the given reviewer.
func GetReviewByReviewerId(ctx context.Context, db interfaces.Querier, reviewerId interface{}) ([]*Review, error) {
	id, err := validators.ValidateUUID(reviewerId)
	if err != nil {
		return nil, err
	}

	queryString := "SELECT " + reviewColumns + " FROM review WHERE reviewReviewerId = $1" + reviewOrder
	return queryReviews(ctx, db, queryString, id[:])
}

// GetReviewByReviewConsole returns every review whose console contains the given text.
func GetReviewByReviewConsole(ctx context.Context, db interfaces.Querier, console string) ([]*Review, error) {
	console = validators.SanitizeString(console)
	if console == "" {
		return nil, validators.InvalidArgument("review console is invalid")
	}

	queryString := "SELECT " + reviewColumns + " FROM review WHERE reviewConsole LIKE $1" + reviewOrder
	return queryReviews(ctx, db, queryString, containsPattern(console))
}

// GetReviewByReviewContent returns every review whose content contains the given text.
func GetReviewByReviewContent(ctx context.Context, db interfaces.Querier, content string) ([]*Review, error) {
	content = validators.SanitizeString(content)
	if content == "" {
		return nil, validators.InvalidArgument("review content is invalid")
	}

	queryString := "SELECT " + reviewColumns + " FROM review WHERE reviewContent LIKE $1" + reviewOrder
	return queryReviews(ctx, db, queryString, containsPattern(content))
}

// GetReviewByReviewRating returns every review with exactly the given rating.
func GetReviewByReviewRating(ctx context.Context, db interfaces.Querier, rating int) ([]*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	queryString := "SELECT " + reviewColumns + " FROM review WHERE reviewRating = $1" + reviewOrder
	return queryReviews(ctx, db, queryString, rating)
}

// GetAllReviews returns every review.
func GetAllReviews(ctx context.Context, db interfaces.Querier) ([]*Review, error) {
	queryString := "SELECT " + reviewColumns + " FROM review" + reviewOrder
	return queryReviews(ctx, db, queryString)
}

func queryReviews(ctx context.Context, db interfaces.Querier, queryString string, args ...interface{}) ([]*Review, error) {
	rows, err := db.Query(ctx, queryString, args...)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error querying reviews", err)
		return nil, validators.NewStorageError("query reviews", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			utils.LogMessageWithFieldsAndError(ctx, "error", "Error loading review", err)
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, validators.NewStorageError("query reviews", err)
	}

	return reviews, nil
}

// scanReview rebuilds a Review through NewReview, so stored data is validated on every load.
func scanReview(rows pgx.Rows) (*Review, error) {
	var (
		reviewId         []byte
		reviewReviewerId []byte
		console          string
		date             time.Time
		rating           int
		content          string
	)

	if err := rows.Scan(&reviewId, &reviewReviewerId, &console, &date, &rating, &content); err != nil {
		return nil, validators.NewStorageError("scan review", err)
	}

	review, err := NewReview(reviewId, reviewReviewerId, console, date, rating, content)
	if err != nil {
		return nil, validators.NewStorageError("load review", err)
	}
	return review, nil
}
