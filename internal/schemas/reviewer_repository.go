package schemas

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"gamereview/internal/interfaces"
	"gamereview/internal/utils"
	"gamereview/internal/validators"
)

const reviewerColumns = "reviewerId, reviewerActivationToken, reviewerNickName, reviewerEmail, reviewerHash"

// Insert writes the reviewer as a new row. A duplicate id or email comes back as a storage error wrapping the
// driver's constraint violation.
func (r *Reviewer) Insert(ctx context.Context, db interfaces.Querier) error {
	utils.LogMessageWithFields(ctx, "debug", "Inserting reviewer "+r.reviewerId.String())

	queryString := "INSERT INTO reviewer (" + reviewerColumns + ") VALUES ($1, $2, $3, $4, $5)"
	if _, err := db.Exec(ctx, queryString, r.reviewerId[:], r.activationTokenParam(), r.reviewerNickName, r.reviewerEmail, r.reviewerHash); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error inserting reviewer", err)
		return validators.NewStorageError("insert reviewer", err)
	}
	return nil
}

// Update re-validates every field and rewrites the row with the reviewer's id. Updating a missing row is a no-op.
func (r *Reviewer) Update(ctx context.Context, db interfaces.Querier) error {
	if err := r.validate(); err != nil {
		return err
	}

	utils.LogMessageWithFields(ctx, "debug", "Updating reviewer "+r.reviewerId.String())

	queryString := "UPDATE reviewer SET reviewerActivationToken = $1, reviewerNickName = $2, reviewerEmail = $3, reviewerHash = $4 WHERE reviewerId = $5"
	if _, err := db.Exec(ctx, queryString, r.activationTokenParam(), r.reviewerNickName, r.reviewerEmail, r.reviewerHash, r.reviewerId[:]); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error updating reviewer", err)
		return validators.NewStorageError("update reviewer", err)
	}
	return nil
}

// Delete removes the row with the reviewer's id. Deleting a missing row is a no-op.
func (r *Reviewer) Delete(ctx context.Context, db interfaces.Querier) error {
	utils.LogMessageWithFields(ctx, "debug", "Deleting reviewer "+r.reviewerId.String())

	queryString := "DELETE FROM reviewer WHERE reviewerId = $1"
	if _, err := db.Exec(ctx, queryString, r.reviewerId[:]); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error deleting reviewer", err)
		return validators.NewStorageError("delete reviewer", err)
	}
	return nil
}

// activationTokenParam maps an absent token to SQL NULL.
func (r *Reviewer) activationTokenParam() interface{} {
	if r.reviewerActivationToken == nil {
		return nil
	}
	return *r.reviewerActivationToken
}

// GetReviewerByReviewerId returns the reviewer with the given id, or nil if there is none.
func GetReviewerByReviewerId(ctx context.Context, db interfaces.Querier, reviewerId interface{}) (*Reviewer, error) {
	id, err := validators.ValidateUUID(reviewerId)
	if err != nil {
		return nil, err
	}

	queryString := "SELECT " + reviewerColumns + " FROM reviewer WHERE reviewerId = $1"
	return queryReviewer(ctx, db, queryString, id[:])
}

// GetReviewerByReviewerEmail returns the reviewer with the given email, or nil if there is none.
func GetReviewerByReviewerEmail(ctx context.Context, db interfaces.Querier, email string) (*Reviewer, error) {
	email, err := validators.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	queryString := "SELECT " + reviewerColumns + " FROM reviewer WHERE reviewerEmail = $1"
	return queryReviewer(ctx, db, queryString, email)
}

// GetReviewerByReviewerNickName returns every reviewer with the given nick name, ordered by email.
func GetReviewerByReviewerNickName(ctx context.Context, db interfaces.Querier, nickName string) ([]*Reviewer, error) {
	nickName = validators.SanitizeString(nickName)
	if nickName == "" {
		return nil, validators.InvalidArgument("not a valid nick name")
	}

	queryString := "SELECT " + reviewerColumns + " FROM reviewer WHERE reviewerNickName = $1 ORDER BY reviewerEmail"
	return queryReviewers(ctx, db, queryString, nickName)
}

// GetReviewerByReviewerActivationToken returns the reviewer holding the given activation token, or nil.
func GetReviewerByReviewerActivationToken(ctx context.Context, db interfaces.Querier, token string) (*Reviewer, error) {
	token, err := validateActivationToken(token)
	if err != nil {
		return nil, err
	}

	queryString := "SELECT " + reviewerColumns + " FROM reviewer WHERE reviewerActivationToken = $1"
	return queryReviewer(ctx, db, queryString, token)
}

func queryReviewer(ctx context.Context, db interfaces.Querier, queryString string, args ...interface{}) (*Reviewer, error) {
	reviewers, err := queryReviewers(ctx, db, queryString, args...)
	if err != nil || len(reviewers) == 0 {
		return nil, err
	}
	return reviewers[0], nil
}

func queryReviewers(ctx context.Context, db interfaces.Querier, queryString string, args ...interface{}) ([]*Reviewer, error) {
	rows, err := db.Query(ctx, queryString, args...)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error querying reviewers", err)
		return nil, validators.NewStorageError("query reviewers", err)
	}
	defer rows.Close()

	reviewers := make([]*Reviewer, 0)
	for rows.Next() {
		reviewer, err := scanReviewer(rows)
		if err != nil {
			utils.LogMessageWithFieldsAndError(ctx, "error", "Error loading reviewer", err)
			return nil, err
		}
		reviewers = append(reviewers, reviewer)
	}
	if err := rows.Err(); err != nil {
		return nil, validators.NewStorageError("query reviewers", err)
	}

	utils.LogMessageWithFields(ctx, "debug", "Loaded reviewers")
	return reviewers, nil
}

// scanReviewer rebuilds a Reviewer through NewReviewer, so stored data is validated on every load.
func scanReviewer(rows pgx.Rows) (*Reviewer, error) {
	var (
		reviewerId []byte
		token      pgtype.Text
		nickName   string
		email      string
		hash       string
	)

	if err := rows.Scan(&reviewerId, &token, &nickName, &email, &hash); err != nil {
		return nil, validators.NewStorageError("scan reviewer", err)
	}

	var activationToken *string
	if token.Valid {
		activationToken = &token.String
	}

	reviewer, err := NewReviewer(reviewerId, activationToken, nickName, email, hash)
	if err != nil {
		return nil, validators.NewStorageError("load reviewer", err)
	}
	return reviewer, nil
}
