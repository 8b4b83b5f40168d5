// Package schemas defines the reviewer and review entities and the SQL that persists them.
package schemas

import (
	"context"

	"gamereview/internal/interfaces"
	"gamereview/internal/utils"
	"gamereview/internal/validators"
)

// Schema creates the reviewer and review tables. Identifiers are stored in their raw 16 byte form.
// Deleting a reviewer does not cascade to its reviews; the foreign key makes such a delete fail instead.
const Schema = `
CREATE TABLE IF NOT EXISTS reviewer (
	reviewerId BYTEA NOT NULL PRIMARY KEY,
	reviewerActivationToken CHAR(32),
	reviewerNickName VARCHAR(32) NOT NULL,
	reviewerEmail VARCHAR(128) NOT NULL UNIQUE,
	reviewerHash CHAR(97) NOT NULL
);
CREATE INDEX IF NOT EXISTS reviewer_nickname_idx ON reviewer (reviewerNickName);
CREATE UNIQUE INDEX IF NOT EXISTS reviewer_activation_token_idx ON reviewer (reviewerActivationToken);

CREATE TABLE IF NOT EXISTS review (
	reviewId BYTEA NOT NULL PRIMARY KEY,
	reviewReviewerId BYTEA NOT NULL REFERENCES reviewer (reviewerId),
	reviewConsole VARCHAR(16) NOT NULL,
	reviewDate TIMESTAMP(6) NOT NULL,
	reviewRating SMALLINT NOT NULL CHECK (reviewRating BETWEEN 0 AND 10),
	reviewContent VARCHAR(10000) NOT NULL
);
CREATE INDEX IF NOT EXISTS review_reviewer_idx ON review (reviewReviewerId);
CREATE INDEX IF NOT EXISTS review_console_idx ON review (reviewConsole);
`

// ApplySchema creates any missing table or index. It is safe to run repeatedly.
func ApplySchema(ctx context.Context, db interfaces.Querier) error {
	utils.LogMessageWithFields(ctx, "info", "Applying database schema")

	if _, err := db.Exec(ctx, Schema); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error applying database schema", err)
		return validators.NewStorageError("apply schema", err)
	}
	return nil
}
